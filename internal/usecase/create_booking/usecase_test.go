package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	bookingStorage "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/booking"
	vendorRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/ptr"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/txmanager"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

type fakeVendorRepo struct {
	schedule  *domain.VendorSchedule
	holiday   *domain.HolidayOverride
	closure   *domain.EarlyClosure
	offerings map[int64]*domain.ServiceOffering
}

func (f *fakeVendorRepo) GetSchedule(ctx context.Context, vendorID int64) (*domain.VendorSchedule, error) {
	if f.schedule == nil {
		return nil, vendorRepo.ErrVendorNotFound
	}
	return f.schedule, nil
}

func (f *fakeVendorRepo) GetHoliday(ctx context.Context, vendorID int64, date time.Time) (*domain.HolidayOverride, error) {
	if f.holiday == nil {
		return nil, vendorRepo.ErrHolidayNotFound
	}
	return f.holiday, nil
}

func (f *fakeVendorRepo) GetEarlyClosure(ctx context.Context, vendorID int64, date time.Time) (*domain.EarlyClosure, error) {
	if f.closure == nil {
		return nil, vendorRepo.ErrEarlyClosureNotFound
	}
	return f.closure, nil
}

func (f *fakeVendorRepo) GetOffering(ctx context.Context, vendorID, serviceID int64) (*domain.ServiceOffering, error) {
	offering, ok := f.offerings[serviceID]
	if !ok {
		return nil, vendorRepo.ErrOfferingNotFound
	}
	return offering, nil
}

type fakeBookingRepo struct {
	lines    []domain.BookingServiceLine
	linesErr error
	created  *domain.Booking
}

func (f *fakeBookingRepo) GetActiveLinesForDate(ctx context.Context, vendorID int64, date time.Time) ([]domain.BookingServiceLine, error) {
	if f.linesErr != nil {
		return nil, f.linesErr
	}
	return f.lines, nil
}

func (f *fakeBookingRepo) CreateWithLines(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = 101
	for i := range b.Lines {
		b.Lines[i].ID = int64(i + 1)
		b.Lines[i].BookingID = b.ID
	}
	f.created = b
	return b, nil
}

// fakeTxManager выполняет функцию без транзакции; при conflict = true
// имитирует конфликт сериализации
type fakeTxManager struct {
	conflict bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.conflict {
		return txmanager.ErrSerialization
	}
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func testSchedule() *domain.VendorSchedule {
	return &domain.VendorSchedule{
		VendorID:           1,
		OpenTime:           "09:00",
		CloseTime:          "18:00",
		SeatCount:          1,
		WorkerCount:        1,
		VerificationStatus: domain.VerificationApproved,
		Status:             domain.VendorActive,
	}
}

func testOfferings() map[int64]*domain.ServiceOffering {
	return map[int64]*domain.ServiceOffering{
		10: {ID: 1, VendorID: 1, ServiceID: 10, ServiceName: "Haircut", Price: 500, DurationMinutes: 30, IsAvailable: true},
		11: {ID: 2, VendorID: 1, ServiceID: 11, ServiceName: "Beard trim", Price: 200, DurationMinutes: 15, IsAvailable: true},
	}
}

func newTestUseCase(booking *fakeBookingRepo, vendors *fakeVendorRepo, tx *fakeTxManager) *UseCase {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return NewUseCase(booking, vendors, tx, &fixedTimeProvider{now: now}, noopLogger{})
}

func onlineRequest() Request {
	return Request{
		VendorID:      1,
		CustomerID:    ptr.Ptr(int64(42)),
		Date:          testDate(),
		Services:      []ServiceRequest{{ServiceID: 10, StartTime: "10:00"}},
		PaymentMethod: domain.PaymentMethodUPI,
		BookingType:   domain.BookingTypeOnline,
	}
}

func TestExecute_Success(t *testing.T) {
	booking := &fakeBookingRepo{}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), onlineRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.BookingID)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.PaymentCompleted, resp.PaymentStatus)
	assert.Equal(t, 500.0, resp.TotalAmount)

	require.Len(t, resp.Services, 1)
	line := resp.Services[0]
	assert.Equal(t, "Haircut", line.ServiceName)
	assert.Equal(t, "10:00", line.StartTime.String())
	assert.Equal(t, "10:30", line.EndTime.String())
}

func TestExecute_MultipleServicesSnapshotTotal(t *testing.T) {
	booking := &fakeBookingRepo{}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	req := onlineRequest()
	req.Services = []ServiceRequest{
		{ServiceID: 10, StartTime: "10:00"},
		{ServiceID: 11, StartTime: "10:30"},
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 700.0, resp.TotalAmount)
	require.Len(t, resp.Services, 2)
	// Длительность берется из каталога: 15 минут для второй услуги
	assert.Equal(t, "10:45", resp.Services[1].EndTime.String())
}

func TestExecute_CashOnlinePaymentPending(t *testing.T) {
	booking := &fakeBookingRepo{}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	req := onlineRequest()
	req.PaymentMethod = domain.PaymentMethodCash

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
}

func TestExecute_OfflineBookingPaymentCompleted(t *testing.T) {
	booking := &fakeBookingRepo{}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	req := Request{
		VendorID:      1,
		Date:          testDate(),
		Services:      []ServiceRequest{{ServiceID: 10, StartTime: "10:00"}},
		PaymentMethod: domain.PaymentMethodCash,
		BookingType:   domain.BookingTypeWalkIn,
		CustomerName:  ptr.Ptr("Ravi"),
		CustomerPhone: ptr.Ptr("+91-900000001"),
	}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Nil(t, resp.CustomerID)
	// Наличные на месте считаются оплаченными сразу
	assert.Equal(t, domain.PaymentCompleted, resp.PaymentStatus)
	require.NotNil(t, resp.Notes)
	assert.Contains(t, *resp.Notes, "Ravi")
	assert.Contains(t, *resp.Notes, "+91-900000001")
}

func TestExecute_SlotFullyBooked(t *testing.T) {
	// Вместимость 1, интервал занят другой строкой
	booking := &fakeBookingRepo{lines: []domain.BookingServiceLine{
		{StartTime: "10:00", EndTime: "10:30"},
	}}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, booking.created)
}

func TestExecute_TouchingBookingDoesNotConflict(t *testing.T) {
	// Бронирование, заканчивающееся ровно в начале запрошенного, не мешает
	booking := &fakeBookingRepo{lines: []domain.BookingServiceLine{
		{StartTime: "09:30", EndTime: "10:00"},
	}}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), onlineRequest())
	assert.NoError(t, err)
}

func TestExecute_DriverErrorSurvivesWrapping(t *testing.T) {
	// Ошибка драйвера с чтения внутри транзакции должна оставаться
	// в цепочке: по ней менеджер транзакций распознает конфликт 40001
	driverErr := &pq.Error{Code: "40001"}
	booking := &fakeBookingRepo{
		linesErr: fmt.Errorf("%w: GetActiveLinesForDate - execute query: %w", bookingStorage.ErrExecQuery, driverErr),
	}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), onlineRequest())
	require.Error(t, err)

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestExecute_SerializationConflict(t *testing.T) {
	booking := &fakeBookingRepo{}
	uc := newTestUseCase(booking, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{conflict: true})

	_, err := uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ServiceNotAvailable(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	req := onlineRequest()
	req.Services = []ServiceRequest{{ServiceID: 999, StartTime: "10:00"}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotAvailable)
}

func TestExecute_VendorClosedOnHoliday(t *testing.T) {
	vendors := &fakeVendorRepo{
		schedule:  testSchedule(),
		holiday:   &domain.HolidayOverride{VendorID: 1, Date: testDate()},
		offerings: testOfferings(),
	}
	uc := newTestUseCase(&fakeBookingRepo{}, vendors, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, ErrVendorClosed)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: testSchedule(), offerings: testOfferings()}, &fakeTxManager{})

	tests := []struct {
		name      string
		startTime string
	}{
		{name: "before opening", startTime: "08:30"},
		{name: "service runs past close", startTime: "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := onlineRequest()
			req.Services[0].StartTime = types.TimeString(tt.startTime)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
		})
	}
}

func TestExecute_ServiceCrossingMidnight(t *testing.T) {
	schedule := testSchedule()
	schedule.CloseTime = "23:45"

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: schedule, offerings: testOfferings()}, &fakeTxManager{})

	// 23:45 + 30 минут переходит через полночь, end_time стал бы меньше start_time
	req := onlineRequest()
	req.Services[0].StartTime = "23:45"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_EarlyClosureShrinksWindow(t *testing.T) {
	vendors := &fakeVendorRepo{
		schedule:  testSchedule(),
		closure:   &domain.EarlyClosure{VendorID: 1, Date: testDate(), EarlyCloseTime: "12:00"},
		offerings: testOfferings(),
	}
	uc := newTestUseCase(&fakeBookingRepo{}, vendors, &fakeTxManager{})

	// 11:45 + 30 минут выходит за раннее закрытие 12:00
	req := onlineRequest()
	req.Services[0].StartTime = "11:45"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_StartInBreakWindow(t *testing.T) {
	schedule := testSchedule()
	schedule.BreakStartTime = ptr.Ptr(types.TimeString("13:00"))
	schedule.BreakEndTime = ptr.Ptr(types.TimeString("14:00"))

	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: schedule, offerings: testOfferings()}, &fakeTxManager{})

	req := onlineRequest()
	req.Services[0].StartTime = "13:30"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestExecute_VendorNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeVendorRepo{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), onlineRequest())
	assert.ErrorIs(t, err, ErrVendorNotFound)
}
