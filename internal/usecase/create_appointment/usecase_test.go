package create_appointment

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punkajrapr/timegrid/internal/domain"
	"github.com/punkajrapr/timegrid/internal/infra/storage/vacancysheet"
	"github.com/punkajrapr/timegrid/internal/integrations/directoryservice"
	"github.com/punkajrapr/timegrid/internal/vacancy"
	"github.com/punkajrapr/timegrid/pkg/types"
)

// 2026-09-07 - понедельник; "текущее время" тестов - неделей раньше
var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// memAppointmentRepo потокобезопасный репозиторий в памяти
type memAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func (r *memAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := *appt
	created.ID = r.nextID
	created.CreatedAt = testNow
	created.UpdatedAt = testNow
	r.appointments = append(r.appointments, &created)
	return &created, nil
}

func (r *memAppointmentRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Appointment
	for _, appt := range r.appointments {
		if appt.BusinessID != filter.BusinessID {
			continue
		}
		if filter.StartDate != nil && appt.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(*filter.EndDate) {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeSheetRepo struct {
	record *vacancysheet.Record
	err    error
}

func (f *fakeSheetRepo) GetByBusinessID(ctx context.Context, businessID int64) (*vacancysheet.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type fakeDirectoryClient struct {
	business *directoryservice.Business
	service  *directoryservice.Service
}

func (f *fakeDirectoryClient) GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error) {
	return f.business, nil
}

func (f *fakeDirectoryClient) GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error) {
	return f.service, nil
}

// serialTxManager выполняет транзакции по одной, имитируя
// сериализуемую изоляцию
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func defaultDirectory() *fakeDirectoryClient {
	return &fakeDirectoryClient{
		business: &directoryservice.Business{
			ID:                  1,
			Name:                "Downtown Spa",
			OwnerID:             99,
			TimeslotStepMinutes: 30,
		},
		service: &directoryservice.Service{
			ID:              2,
			BusinessID:      1,
			Slug:            "massage",
			Name:            "Massage",
			DurationMinutes: 60,
		},
	}
}

func newTestUseCase(apptRepo AppointmentRepository, sheetRepo VacancySheetRepository, directory DirectoryServiceClient) *UseCase {
	uc := NewUseCase(apptRepo, sheetRepo, directory, vacancy.NewCache(), &serialTxManager{}, noopLogger{})
	uc.timeProvider = &fakeClock{now: testNow}
	return uc
}

func sheetRecord(raw string) *vacancysheet.Record {
	return &vacancysheet.Record{
		BusinessID: 1,
		RawText:    raw,
		UpdatedAt:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func validRequest() *Request {
	return &Request{
		UserID:     42,
		BusinessID: 1,
		ServiceID:  2,
		Date:       testMonday,
		StartTime:  "11:30",
	}
}

func TestExecute_CreatesAppointment(t *testing.T) {
	repo := &memAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, types.TimeString("11:30"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Massage", resp.ServiceName)

	// Код подтверждения: короткий, в верхнем регистре
	assert.Len(t, resp.Code, confirmationCodeLength)
	assert.Equal(t, strings.ToUpper(resp.Code), resp.Code)
}

func TestExecute_RejectsOverlappingAppointment(t *testing.T) {
	repo := &memAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Та же услуга, пересекающееся время
	second := validRequest()
	second.UserID = 43
	second.StartTime = "12:00"

	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_TouchingAppointmentsBothSucceed(t *testing.T) {
	repo := &memAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Запись встык: [12:30, 13:30) после [11:30, 12:30)
	second := validRequest()
	second.StartTime = "12:30"

	_, err = uc.Execute(context.Background(), second)
	assert.NoError(t, err)
}

func TestExecute_RejectsTimeOffGrid(t *testing.T) {
	uc := newTestUseCase(&memAppointmentRepo{}, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	req := validRequest()
	req.StartTime = "11:45" // шаг сетки 30 минут

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectsTimeOutsideAvailability(t *testing.T) {
	uc := newTestUseCase(&memAppointmentRepo{}, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-12\n")}, defaultDirectory())

	req := validRequest()
	req.StartTime = "14:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectsWhenNoSheetPublished(t *testing.T) {
	uc := newTestUseCase(&memAppointmentRepo{}, &fakeSheetRepo{err: vacancysheet.ErrSheetNotFound}, defaultDirectory())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	uc := newTestUseCase(&memAppointmentRepo{}, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RejectsTooLongComments(t *testing.T) {
	uc := newTestUseCase(&memAppointmentRepo{}, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	comments := strings.Repeat("a", domain.MaxCommentsLength+1)
	req := validRequest()
	req.Comments = &comments

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentRequestsForSameSlot(t *testing.T) {
	repo := &memAppointmentRepo{}
	uc := newTestUseCase(repo, &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}, defaultDirectory())

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.UserID = int64(100 + i)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	// Ровно один запрос выигрывает слот, остальные получают конфликт
	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotTaken)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, repo.appointments, 1)
}
