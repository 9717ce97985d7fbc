package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/punkajrapr/timegrid/internal/domain"
	apptRepo "github.com/punkajrapr/timegrid/internal/infra/storage/appointment"
	directoryClient "github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - пользователь может видеть только свою запись
// или если он является владельцем бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserAppointments: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d", len(appointments), req.UserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetBusinessAppointments получает записи бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных записей
// Доступно только владельцу бизнеса
func (s *Service) GetBusinessAppointments(ctx context.Context, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetBusinessAppointments: fetching appointments for business=%d, user=%d", req.BusinessID, req.UserID)

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: successfully fetched %d appointments for business=%d", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Пользователь может отменить только свою запись (cancelled_by_user)
// Владелец бизнеса может отменить любую запись бизнеса (cancelled_by_business)
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", appointmentID, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от прав доступа
	var cancelStatus domain.AppointmentStatus

	// Проверяем, является ли пользователь владельцем записи
	if appointment.UserID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	} else {
		// Проверяем, является ли пользователь владельцем бизнеса
		if err := s.checkOwnerAccess(ctx, appointment.BusinessID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel appointment id=%d", req.UserID, appointmentID)
			return ErrAccessDenied
		}
		cancelStatus = domain.StatusCancelledByBusiness
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи
// Доступно только владельцу бизнеса
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только владелец бизнеса)
	if err := s.checkOwnerAccess(ctx, appointment.BusinessID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Пользователь может видеть свою запись или если он владелец бизнеса
func (s *Service) checkUserAccess(ctx context.Context, appointment *domain.Appointment, userID int64) error {
	// Если пользователь владелец записи - доступ разрешён
	if appointment.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь владельцем бизнеса
	if err := s.checkOwnerAccess(ctx, appointment.BusinessID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) error {
	// Получаем бизнес через DirectoryService
	business, err := s.directoryClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if business.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of business id=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
