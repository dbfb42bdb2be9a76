package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	vendorRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/ptr"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

type fakeVendorRepo struct {
	schedule *domain.VendorSchedule
	holiday  *domain.HolidayOverride
	closure  *domain.EarlyClosure
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

type fakeBookingRepo struct {
	lines []domain.BookingServiceLine
}

func (f *fakeBookingRepo) GetActiveLinesForDate(ctx context.Context, vendorID int64, date time.Time) ([]domain.BookingServiceLine, error) {
	return f.lines, nil
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
		CloseTime:          "12:00",
		SeatCount:          2,
		WorkerCount:        1,
		VerificationStatus: domain.VerificationApproved,
		Status:             domain.VendorActive,
	}
}

func TestExecute_FullDay(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: testSchedule()}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[5].StartTime)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
	assert.False(t, resp.IsHoliday)
	assert.Nil(t, resp.EarlyClosure)
}

func TestExecute_OccupiedSlot(t *testing.T) {
	// Вместимость min(2, 1) = 1: одно бронирование закрывает слот
	booking := &fakeBookingRepo{lines: []domain.BookingServiceLine{
		{StartTime: "10:00", EndTime: "10:30"},
	}}
	uc := NewUseCase(booking, &fakeVendorRepo{schedule: testSchedule()}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	for _, slot := range resp.Slots {
		if slot.StartTime == "10:00" {
			assert.False(t, slot.IsAvailable)
		} else {
			assert.True(t, slot.IsAvailable, "slot %s", slot.StartTime)
		}
	}
}

func TestExecute_EarlyClosure(t *testing.T) {
	vendors := &fakeVendorRepo{
		schedule: testSchedule(),
		closure: &domain.EarlyClosure{
			VendorID:       1,
			Date:           testDate(),
			EarlyCloseTime: "11:00",
			Reason:         ptr.Ptr("инвентаризация"),
		},
	}
	uc := NewUseCase(&fakeBookingRepo{}, vendors, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: testDate()})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, types.TimeString("10:30"), resp.Slots[3].StartTime)
	require.NotNil(t, resp.EarlyClosure)
	assert.Equal(t, types.TimeString("11:00"), resp.EarlyClosure.ClosesAt)
}

func TestExecute_Holiday(t *testing.T) {
	vendors := &fakeVendorRepo{
		schedule: testSchedule(),
		holiday: &domain.HolidayOverride{
			VendorID: 1,
			Date:     testDate(),
			Reason:   ptr.Ptr("праздник"),
		},
	}
	uc := NewUseCase(&fakeBookingRepo{}, vendors, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: testDate()})
	require.NoError(t, err)

	assert.True(t, resp.IsHoliday)
	require.NotNil(t, resp.HolidayReason)
	assert.Equal(t, "праздник", *resp.HolidayReason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_BreakWindow(t *testing.T) {
	schedule := testSchedule()
	schedule.CloseTime = "15:00"
	schedule.BreakStartTime = ptr.Ptr(types.TimeString("13:00"))
	schedule.BreakEndTime = ptr.Ptr(types.TimeString("14:00"))

	uc := NewUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: schedule}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VendorID: 1, Date: testDate()})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.NotEqual(t, types.TimeString("13:00"), slot.StartTime)
		assert.NotEqual(t, types.TimeString("13:30"), slot.StartTime)
	}
}

func TestExecute_VendorNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVendorRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VendorID: 99, Date: testDate()})
	assert.ErrorIs(t, err, ErrVendorNotFound)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVendorRepo{schedule: testSchedule()}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VendorID: 0, Date: testDate()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VendorID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
