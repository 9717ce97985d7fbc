package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/punkajrapr/timegrid/internal/domain"
	apptRepo "github.com/punkajrapr/timegrid/internal/infra/storage/appointment"
	sheetRepo "github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	directoryClient "github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/vacancy"
	"github.com/punkajrapr/timegrid/pkg/ptr"
)

// Длина кода подтверждения, который получает клиент вместе с записью
const confirmationCodeLength = 6

// Число повторов вставки при коллизии кода подтверждения
const maxCodeAttempts = 3

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	sheetRepo       VacancySheetRepository
	directoryClient DirectoryServiceClient
	sheetCache      SheetCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	sheetRepo VacancySheetRepository,
	directoryClient DirectoryServiceClient,
	sheetCache SheetCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		sheetRepo:       sheetRepo,
		directoryClient: directoryClient,
		sheetCache:      sheetCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка пересечений и вставка выполняются атомарно, поэтому из двух
// конкурентных запросов на один слот успешным будет ровно один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, business=%d, service=%d, date=%s, time=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем бизнес
	business, err := uc.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.directoryClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем настройки сетки
	if business.TimeslotStepMinutes <= 0 {
		return nil, fmt.Errorf("%w: timeslot step %d", ErrInvalidConfiguration, business.TimeslotStepMinutes)
	}
	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration %d", ErrInvalidConfiguration, service.DurationMinutes)
	}

	startMinute, err := req.StartTime.MinuteOfDay()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Загружаем лист доступности
		sheet, err := uc.loadSheet(txCtx, req.BusinessID)
		if err != nil {
			if errors.Is(err, sheetRepo.ErrSheetNotFound) {
				uc.logger.Warn("CreateAppointment: business id=%d has no published availability", req.BusinessID)
				return ErrInvalidTimeSlot
			}
			return err
		}

		// 6.2. Проверяем, что запрошенное время лежит на сетке доступности
		ranges := vacancy.Expand(sheet, service.Slug, req.Date)
		if !isAdmissibleStart(ranges, startMinute, business.TimeslotStepMinutes, service.DurationMinutes) {
			uc.logger.Warn("CreateAppointment: time %s is not within availability for business=%d, service=%d, date=%s",
				req.StartTime, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		}

		// 6.3. Получаем все записи на эту дату с блокировкой (FOR UPDATE)
		appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(txCtx, domain.BusinessAppointmentsFilter{
			BusinessID: req.BusinessID,
			StartDate:  ptr.Ptr(req.Date),
			EndDate:    ptr.Ptr(req.Date),
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 6.4. Проверяем пересечение с существующими записями
		if hasOverlappingAppointment(startMinute, service.DurationMinutes, appointments, uc.logger) {
			uc.logger.Warn("CreateAppointment: slot %s on %s is already taken",
				req.StartTime, req.Date.Format(domain.DateFormat))
			return ErrSlotTaken
		}

		// 6.5. Сохраняем запись с денормализацией данных услуги
		appointment := &domain.Appointment{
			UserID:          req.UserID,
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			Comments:        req.Comments,
		}

		created, err := uc.createWithCode(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d, code=%s", result.ID, result.Code)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Code:            result.Code,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		Comments:        result.Comments,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// createWithCode сохраняет запись, генерируя код подтверждения заново
// при коллизии с уже существующим кодом
func (uc *UseCase) createWithCode(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	var lastErr error

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		appointment.Code = generateConfirmationCode()

		created, err := uc.appointmentRepo.Create(ctx, appointment)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, apptRepo.ErrDuplicateCode) {
			return nil, err
		}

		uc.logger.Warn("CreateAppointment: confirmation code collision, retrying")
		lastErr = err
	}

	return nil, lastErr
}

// loadSheet достаёт разобранный лист из кэша либо разбирает сохранённый
// текст заново
func (uc *UseCase) loadSheet(ctx context.Context, businessID int64) (*domain.VacancySheet, error) {
	record, err := uc.sheetRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: failed to get sheet for business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get sheet: %v", ErrInternal, err)
	}

	if sheet, ok := uc.sheetCache.Get(businessID, record.UpdatedAt); ok {
		return sheet, nil
	}

	sheet, err := vacancy.Parse(record.RawText)
	if err != nil {
		uc.logger.Error("CreateAppointment: stored sheet for business id=%d is corrupt: %v", businessID, err)
		return nil, fmt.Errorf("%w: business %d: %v", ErrCorruptSheet, businessID, err)
	}

	uc.sheetCache.Put(businessID, sheet, record.UpdatedAt)

	return sheet, nil
}

// generateConfirmationCode возвращает короткий код подтверждения,
// который клиент называет при визите
func generateConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:confirmationCodeLength])
}
