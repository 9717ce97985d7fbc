package vacancies

import (
	"context"
	"errors"
	"fmt"

	sheetRepo "github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	directoryClient "github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
	"github.com/punkajrapr/timegrid/internal/vacancy"
)

// Service сервис для работы с листами доступности
type Service struct {
	sheetRepo       VacancySheetRepository
	directoryClient DirectoryServiceClient
	sheetCache      SheetCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса листов доступности
func NewService(
	sheetRepo VacancySheetRepository,
	directoryClient DirectoryServiceClient,
	sheetCache SheetCache,
	logger Logger,
) *Service {
	return &Service{
		sheetRepo:       sheetRepo,
		directoryClient: directoryClient,
		sheetCache:      sheetCache,
		logger:          logger,
	}
}

// UpdateSheet публикует лист доступности бизнеса
// Текст разбирается и валидируется целиком до сохранения: некорректный
// лист отклоняется атомарно, предыдущий лист остаётся в силе.
// Доступно только владельцу бизнеса
func (s *Service) UpdateSheet(ctx context.Context, req *models.UpdateSheetRequest) (*models.SheetResponse, error) {
	s.logger.Info("UpdateSheet: publishing sheet for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Разбираем лист до сохранения
	sheet, err := vacancy.Parse(req.RawText)
	if err != nil {
		s.logger.Warn("UpdateSheet: sheet for business=%d rejected: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSheet, err)
	}

	// Сохраняем каноническую форму: повторный разбор даёт тот же лист
	canonical := vacancy.Serialize(sheet)

	record, err := s.sheetRepo.Upsert(ctx, req.BusinessID, canonical)
	if err != nil {
		s.logger.Error("UpdateSheet: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: UpdateSheet - repository error: %v", ErrInternal, err)
	}

	// Прогреваем кэш новой версией листа
	s.sheetCache.Put(req.BusinessID, sheet, record.UpdatedAt)

	s.logger.Info("UpdateSheet: successfully published sheet for business=%d, %d rules", req.BusinessID, len(sheet.Rules))

	return &models.SheetResponse{
		BusinessID: record.BusinessID,
		RawText:    record.RawText,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}

// GetSheet получает текущий лист доступности бизнеса
// Доступно только владельцу бизнеса
func (s *Service) GetSheet(ctx context.Context, businessID int64, userID int64) (*models.SheetResponse, error) {
	s.logger.Info("GetSheet: fetching sheet for business=%d by user=%d", businessID, userID)

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, businessID, userID); err != nil {
		return nil, err
	}

	record, err := s.sheetRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			s.logger.Warn("GetSheet: business=%d has no published sheet", businessID)
			return nil, ErrSheetNotFound
		}
		s.logger.Error("GetSheet: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetSheet - repository error: %v", ErrInternal, err)
	}

	return &models.SheetResponse{
		BusinessID: record.BusinessID,
		RawText:    record.RawText,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}

// DeleteSheet удаляет лист доступности бизнеса
// После удаления ни один слот бизнеса не доступен для записи
// Доступно только владельцу бизнеса
func (s *Service) DeleteSheet(ctx context.Context, businessID int64, userID int64) error {
	s.logger.Info("DeleteSheet: deleting sheet for business=%d by user=%d", businessID, userID)

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, businessID, userID); err != nil {
		return err
	}

	if err := s.sheetRepo.Delete(ctx, businessID); err != nil {
		if errors.Is(err, sheetRepo.ErrSheetNotFound) {
			s.logger.Warn("DeleteSheet: business=%d has no published sheet", businessID)
			return ErrSheetNotFound
		}
		s.logger.Error("DeleteSheet: repository error for business=%d: %v", businessID, err)
		return fmt.Errorf("%w: DeleteSheet - repository error: %v", ErrInternal, err)
	}

	s.sheetCache.Invalidate(businessID)

	s.logger.Info("DeleteSheet: successfully deleted sheet for business=%d", businessID)
	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) error {
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
