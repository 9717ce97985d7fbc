package vacancies

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	"github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/service/vacancies/models"
	"github.com/punkajrapr/timegrid/internal/vacancy"
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// memSheetRepo репозиторий листов в памяти
type memSheetRepo struct {
	records map[int64]*vacancysheet.Record
}

func newMemSheetRepo() *memSheetRepo {
	return &memSheetRepo{records: make(map[int64]*vacancysheet.Record)}
}

func (r *memSheetRepo) GetByBusinessID(ctx context.Context, businessID int64) (*vacancysheet.Record, error) {
	record, ok := r.records[businessID]
	if !ok {
		return nil, vacancysheet.ErrSheetNotFound
	}
	return record, nil
}

func (r *memSheetRepo) Upsert(ctx context.Context, businessID int64, rawText string) (*vacancysheet.Record, error) {
	record := &vacancysheet.Record{
		BusinessID: businessID,
		RawText:    rawText,
		UpdatedAt:  time.Now(),
	}
	r.records[businessID] = record
	return record, nil
}

func (r *memSheetRepo) Delete(ctx context.Context, businessID int64) error {
	if _, ok := r.records[businessID]; !ok {
		return vacancysheet.ErrSheetNotFound
	}
	delete(r.records, businessID)
	return nil
}

type fakeDirectoryClient struct {
	business *directoryservice.Business
	err      error
}

func (f *fakeDirectoryClient) GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

func newTestService(repo VacancySheetRepository) (*Service, *vacancy.Cache) {
	cache := vacancy.NewCache()
	directory := &fakeDirectoryClient{
		business: &directoryservice.Business{ID: 1, Name: "Downtown Spa", OwnerID: 99},
	}
	return NewService(repo, directory, cache, noopLogger{}), cache
}

func TestUpdateSheet_StoresCanonicalForm(t *testing.T) {
	repo := newMemSheetRepo()
	svc, cache := newTestService(repo)

	resp, err := svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     99,
		BusinessID: 1,
		RawText:    "massage:10\n tue, mon\n  14-18\n  9-13\n",
	})
	require.NoError(t, err)

	// Дни и диапазоны приведены к каноническому порядку
	assert.Equal(t, "massage:10\n mon, tue\n  9-13\n  14-18\n", resp.RawText)

	// Кэш прогрет новой версией
	_, ok := cache.Get(1, resp.UpdatedAt)
	assert.True(t, ok)
}

func TestUpdateSheet_RejectsInvalidSheetAtomically(t *testing.T) {
	repo := newMemSheetRepo()
	svc, _ := newTestService(repo)

	first, err := svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     99,
		BusinessID: 1,
		RawText:    "massage:10\n mon\n  9-18\n",
	})
	require.NoError(t, err)

	// Некорректный лист отклоняется, предыдущий остаётся в силе
	_, err = svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     99,
		BusinessID: 1,
		RawText:    "massage:10\n mon\n  18-9\n",
	})
	require.ErrorIs(t, err, ErrInvalidSheet)
	assert.Contains(t, err.Error(), "line 3")

	stored, err := repo.GetByBusinessID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first.RawText, stored.RawText)
}

func TestUpdateSheet_DeniesNonOwner(t *testing.T) {
	svc, _ := newTestService(newMemSheetRepo())

	_, err := svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     7,
		BusinessID: 1,
		RawText:    "massage:10\n mon\n  9-18\n",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSheet(t *testing.T) {
	repo := newMemSheetRepo()
	svc, _ := newTestService(repo)

	_, err := svc.GetSheet(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     99,
		BusinessID: 1,
		RawText:    "massage:10\n mon\n  9-18\n",
	})
	require.NoError(t, err)

	resp, err := svc.GetSheet(context.Background(), 1, 99)
	require.NoError(t, err)
	assert.Equal(t, "massage:10\n mon\n  9-18\n", resp.RawText)
}

func TestDeleteSheet_InvalidatesCache(t *testing.T) {
	repo := newMemSheetRepo()
	svc, cache := newTestService(repo)

	resp, err := svc.UpdateSheet(context.Background(), &models.UpdateSheetRequest{
		UserID:     99,
		BusinessID: 1,
		RawText:    "massage:10\n mon\n  9-18\n",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSheet(context.Background(), 1, 99))

	_, ok := cache.Get(1, resp.UpdatedAt)
	assert.False(t, ok)

	_, err = repo.GetByBusinessID(context.Background(), 1)
	assert.ErrorIs(t, err, vacancysheet.ErrSheetNotFound)
}

func TestDeleteSheet_NotFound(t *testing.T) {
	svc, _ := newTestService(newMemSheetRepo())

	err := svc.DeleteSheet(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
