package get_available_times

import (
	"context"
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

// 2026-09-07 - понедельник
var testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessAppointmentsFilter) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type fakeSheetRepo struct {
	record *vacancysheet.Record
	err    error
	calls  int
}

func (f *fakeSheetRepo) GetByBusinessID(ctx context.Context, businessID int64) (*vacancysheet.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

type fakeDirectoryClient struct {
	business    *directoryservice.Business
	service     *directoryservice.Service
	businessErr error
	serviceErr  error
}

func (f *fakeDirectoryClient) GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error) {
	if f.businessErr != nil {
		return nil, f.businessErr
	}
	return f.business, nil
}

func (f *fakeDirectoryClient) GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func newTestUseCase(apptRepo *fakeAppointmentRepo, sheetRepo *fakeSheetRepo, directory *fakeDirectoryClient) *UseCase {
	return NewUseCase(apptRepo, sheetRepo, directory, vacancy.NewCache(), noopLogger{})
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
			DurationMinutes: 240,
		},
	}
}

func sheetRecord(raw string) *vacancysheet.Record {
	return &vacancysheet.Record{
		BusinessID: 1,
		RawText:    raw,
		UpdatedAt:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestExecute_ReturnsGridTimes(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")},
		defaultDirectory(),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	require.NoError(t, err)

	// 9-18, шаг 30, услуга 240 минут: 11 стартов от 09:00 до 14:00
	require.Len(t, resp.Times, 11)
	assert.Equal(t, types.TimeString("09:00"), resp.Times[0])
	assert.Equal(t, types.TimeString("14:00"), resp.Times[10])
}

func TestExecute_ExcludesBookedSlots(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{{
			ID:              7,
			StartTime:       "11:30",
			DurationMinutes: 240,
			Status:          domain.StatusConfirmed,
		}}},
		&fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")},
		defaultDirectory(),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestExecute_NoSheetMeansNoTimesNotError(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeSheetRepo{err: vacancysheet.ErrSheetNotFound},
		defaultDirectory(),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestExecute_NoMatchingWeekdayMeansNoTimes(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeSheetRepo{record: sheetRecord("massage:10\n tue\n  9-18\n")},
		defaultDirectory(),
	)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeSheetRepo{},
		&fakeDirectoryClient{businessErr: directoryservice.ErrBusinessNotFound},
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	directory := defaultDirectory()
	directory.serviceErr = directoryservice.ErrServiceNotFound

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeSheetRepo{}, directory)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeSheetRepo{}, defaultDirectory())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, ServiceID: 2, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InvalidConfiguration(t *testing.T) {
	directory := defaultDirectory()
	directory.business.TimeslotStepMinutes = 0

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeSheetRepo{}, directory)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestExecute_CorruptStoredSheet(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakeSheetRepo{record: sheetRecord("not a sheet at all\n")},
		defaultDirectory(),
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: 2, Date: testMonday})
	assert.ErrorIs(t, err, ErrCorruptSheet)
}

func TestExecute_SheetParsedOnceWhileUnchanged(t *testing.T) {
	sheetRepo := &fakeSheetRepo{record: sheetRecord("massage:10\n mon\n  9-18\n")}
	uc := newTestUseCase(&fakeAppointmentRepo{}, sheetRepo, defaultDirectory())

	req := &Request{BusinessID: 1, ServiceID: 2, Date: testMonday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Результат детерминирован, а кэш сверяется по updated_at
	assert.Equal(t, first.Times, second.Times)
	assert.Equal(t, 2, sheetRepo.calls)
}
