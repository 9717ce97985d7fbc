package get_available_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/punkajrapr/timegrid/internal/domain"
	sheetRepo "github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	directoryClient "github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/vacancy"
	"github.com/punkajrapr/timegrid/pkg/ptr"
	"github.com/punkajrapr/timegrid/pkg/types"
)

// UseCase use case для получения доступных времён начала записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	sheetRepo       VacancySheetRepository
	directoryClient DirectoryServiceClient
	sheetCache      SheetCache
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	sheetRepo VacancySheetRepository,
	directoryClient DirectoryServiceClient,
	sheetCache SheetCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		sheetRepo:       sheetRepo,
		directoryClient: directoryClient,
		sheetCache:      sheetCache,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных времён
// Результат детерминирован: зависит только от листа доступности,
// настроек бизнеса и существующих записей, не от текущего времени.
// Пустой список — корректный ответ, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableTimes: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.directoryClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTimes: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем настройки сетки
	if business.TimeslotStepMinutes <= 0 {
		return nil, fmt.Errorf("%w: timeslot step %d", ErrInvalidConfiguration, business.TimeslotStepMinutes)
	}
	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration %d", ErrInvalidConfiguration, service.DurationMinutes)
	}

	// 5. Загружаем лист доступности
	sheet, err := uc.loadSheet(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			// Бизнес ещё не публиковал доступность: ничего не доступно
			return emptyResponse(req), nil
		}
		return nil, err
	}

	// 6. Разворачиваем лист в рабочие интервалы дня
	ranges := vacancy.Expand(sheet, service.Slug, req.Date)
	if len(ranges) == 0 {
		return emptyResponse(req), nil
	}

	// 7. Строим сетку кандидатов
	candidates := generateSlots(ranges, business.TimeslotStepMinutes, service.DurationMinutes)
	if len(candidates) == 0 {
		return emptyResponse(req), nil
	}

	// 8. Получаем записи на эту дату
	appointments, err := uc.appointmentRepo.GetByBusinessWithFilter(ctx, domain.BusinessAppointmentsFilter{
		BusinessID: req.BusinessID,
		StartDate:  ptr.Ptr(req.Date),
		EndDate:    ptr.Ptr(req.Date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get appointments for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Убираем кандидатов, пересекающихся с активными записями
	available := filterConflicts(candidates, service.DurationMinutes, appointments, uc.logger)

	times := make([]types.TimeString, 0, len(available))
	for _, slot := range available {
		ts, err := types.NewTimeStringFromMinutes(slot.StartMinute)
		if err != nil {
			uc.logger.Error("GetAvailableTimes: slot minute %d out of range: %v", slot.StartMinute, err)
			return nil, fmt.Errorf("%w: failed to format slot: %v", ErrInternal, err)
		}
		times = append(times, ts)
	}

	uc.logger.Info("GetAvailableTimes: business=%d, service=%d, date=%s: %d of %d slots available",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), len(times), len(candidates))

	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Times:      times,
	}, nil
}

// loadSheet достаёт разобранный лист из кэша либо разбирает сохранённый
// текст заново. Кэш сверяется по updated_at, поэтому обновление листа
// немедленно видно всем последующим запросам
func (uc *UseCase) loadSheet(ctx context.Context, businessID int64) (*domain.VacancySheet, error) {
	record, err := uc.sheetRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			return nil, err
		}
		uc.logger.Error("GetAvailableTimes: failed to get sheet for business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get sheet: %v", ErrInternal, err)
	}

	if sheet, ok := uc.sheetCache.Get(businessID, record.UpdatedAt); ok {
		return sheet, nil
	}

	sheet, err := vacancy.Parse(record.RawText)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: stored sheet for business id=%d is corrupt: %v", businessID, err)
		return nil, fmt.Errorf("%w: business %d: %v", ErrCorruptSheet, businessID, err)
	}

	uc.sheetCache.Put(businessID, sheet, record.UpdatedAt)

	return sheet, nil
}

func emptyResponse(req *Request) *Response {
	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Times:      []types.TimeString{},
	}
}
