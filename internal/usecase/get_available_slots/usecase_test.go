package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

const (
	professionalID int64 = 7
	serviceID      int64 = 3
)

type fakeReservations struct {
	items      []*domain.Reservation
	err        error
	lastFilter domain.ProfessionalReservationsFilter
}

func (f *fakeReservations) GetByProfessionalWithFilter(_ context.Context, filter domain.ProfessionalReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	return f.items, f.err
}

type fakeSchedule struct {
	week domain.WeeklySchedule
	err  error
}

func (f *fakeSchedule) GetSchedule(_ context.Context, _ int64) (domain.WeeklySchedule, error) {
	return f.week, f.err
}

type fakeCatalog struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalog) GetService(_ context.Context, _ int64) (*catalogservice.Service, error) {
	return f.service, f.err
}

type fakeMetrics struct{ observed []int }

func (m *fakeMetrics) ObserveSlotsResolved(count int) { m.observed = append(m.observed, count) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-06-03 это понедельник
var monday = time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	reservations *fakeReservations
	schedule     *fakeSchedule
	catalog      *fakeCatalog
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(t *testing.T, now time.Time, opts Options) *fixture {
	t.Helper()

	if opts.Location == nil {
		opts.Location = time.UTC
	}

	week, err := domain.NewWeeklySchedule([]domain.DayAvailability{
		{Day: domain.Monday, Enabled: true, Slots: []domain.TimeRange{{Start: "09:00", End: "12:00"}}},
	})
	require.NoError(t, err)

	f := &fixture{
		reservations: &fakeReservations{},
		schedule:     &fakeSchedule{week: week},
		catalog: &fakeCatalog{service: &catalogservice.Service{
			ID: serviceID, ProfessionalID: professionalID, Name: "Стрижка", DurationMinutes: 60, Price: 1200, IsActive: true,
		}},
		metrics: &fakeMetrics{},
	}
	f.uc = NewUseCase(f.reservations, f.schedule, f.catalog, f.metrics, opts, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func request(date time.Time) *Request {
	return &Request{ProfessionalID: professionalID, ServiceID: serviceID, Date: date}
}

func TestExecute_ResolvesSlots(t *testing.T) {
	f := newFixture(t, monday.AddDate(0, 0, -1), Options{StepMinutes: 30})
	f.reservations.items = []*domain.Reservation{
		{ProfessionalID: professionalID, Date: monday, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusAccepted},
	}

	resp, err := f.uc.Execute(context.Background(), request(monday))
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "10:30", "11:00"}, resp.Slots)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []int{3}, f.metrics.observed)

	require.NotNil(t, f.reservations.lastFilter.StartDate)
	assert.True(t, f.reservations.lastFilter.IsSingleDay())
	assert.False(t, f.reservations.lastFilter.IncludeInactive)
}

func TestExecute_TodayDropsPastSlots(t *testing.T) {
	f := newFixture(t, monday.Add(10*time.Hour), Options{})

	resp, err := f.uc.Execute(context.Background(), request(monday))
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, resp.Slots)
}

func TestExecute_TodayUsesSalonTimezone(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	// 10:05 по Москве, сервер живёт в UTC
	now := time.Date(2024, time.June, 3, 10, 5, 0, 0, msk).UTC()
	f := newFixture(t, now, Options{Location: msk})

	date, err := time.Parse(domain.DateFormat, "2024-06-03")
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), request(date))
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:30", "11:00"}, resp.Slots)
	assert.Equal(t, msk, resp.Date.Location())
}

func TestExecute_PastDateNearMidnightInSalonTimezone(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	// 00:30 3 июня по Москве, в UTC ещё 2 июня
	now := time.Date(2024, time.June, 3, 0, 30, 0, 0, msk)
	f := newFixture(t, now, Options{Location: msk})

	_, err := f.uc.Execute(context.Background(), request(monday.AddDate(0, 0, -1)))
	assert.ErrorIs(t, err, ErrInvalidDate)

	resp, err := f.uc.Execute(context.Background(), request(monday))
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, resp.Slots)
}

func TestExecute_ClosedDayIsEmptyNotNil(t *testing.T) {
	f := newFixture(t, monday, Options{})

	resp, err := f.uc.Execute(context.Background(), request(monday.AddDate(0, 0, 1)))
	require.NoError(t, err)

	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		req     *Request
		wantErr error
	}{
		{
			name:    "invalid professional",
			req:     &Request{ServiceID: serviceID, Date: monday},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing date",
			req:     &Request{ProfessionalID: professionalID, ServiceID: serviceID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "service not found",
			prepare: func(f *fixture) { f.catalog.err = catalogservice.ErrServiceNotFound },
			req:     request(monday),
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "catalog failure",
			prepare: func(f *fixture) { f.catalog.err = catalogservice.ErrInternal },
			req:     request(monday),
			wantErr: ErrInternal,
		},
		{
			name:    "service of another professional",
			prepare: func(f *fixture) { f.catalog.service.ProfessionalID = 99 },
			req:     request(monday),
			wantErr: ErrServiceNotOffered,
		},
		{
			name:    "inactive service",
			prepare: func(f *fixture) { f.catalog.service.IsActive = false },
			req:     request(monday),
			wantErr: ErrServiceNotOffered,
		},
		{
			name:    "date in past",
			req:     request(monday.AddDate(0, 0, -1)),
			wantErr: ErrInvalidDate,
		},
		{
			name:    "date beyond horizon",
			req:     request(monday.AddDate(0, 0, 11)),
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "schedule failure",
			prepare: func(f *fixture) { f.schedule.err = errors.New("db down") },
			req:     request(monday),
			wantErr: ErrInternal,
		},
		{
			name:    "reservations failure",
			prepare: func(f *fixture) { f.reservations.err = errors.New("db down") },
			req:     request(monday),
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, monday.Add(8*time.Hour), Options{AdvanceBookingDays: 10})
			if tt.prepare != nil {
				tt.prepare(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.metrics.observed)
		})
	}
}

func TestValidateDate_NoHorizon(t *testing.T) {
	now := monday
	assert.NoError(t, validateDate(monday.AddDate(2, 0, 0), now, 0))
	assert.NoError(t, validateDate(monday, now.Add(23*time.Hour), 0))
	assert.ErrorIs(t, validateDate(monday.AddDate(0, 0, -1), now, 0), ErrInvalidDate)
}
