package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	bookingRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/booking"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/bookings/models"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	cancelledID     int64
	cancelledReason *string
	cancelledBy     domain.ActorRole

	updatedID     int64
	updatedStatus domain.BookingStatus

	lastFilter domain.VendorBookingsFilter
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.CustomerID == nil || *b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByVendorWithFilter(ctx context.Context, filter domain.VendorBookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.VendorID == filter.VendorID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, reason *string, by domain.ActorRole) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.cancelledID = id
	f.cancelledReason = reason
	f.cancelledBy = by
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
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

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		VendorID:      10,
		CustomerID:    ptr.Ptr(int64(42)),
		BookingDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount:   500,
		PaymentMethod: domain.PaymentMethodUPI,
		PaymentStatus: domain.PaymentCompleted,
		Status:        domain.StatusConfirmed,
		Type:          domain.BookingTypeOnline,
		Lines: []domain.BookingServiceLine{
			{ServiceID: 100, ServiceName: "Haircut", ServicePrice: 500, StartTime: "14:00", EndTime: "14:30", DurationMinutes: 30},
		},
	}
}

func newTestService(repo *fakeBookingRepo, now time.Time) *Service {
	return NewService(repo, &fixedTimeProvider{now: now}, noopLogger{})
}

// За два часа до начала записи 15 сентября в 14:00
func wellBeforeStart() time.Time {
	return time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{name: "owner customer", actor: domain.Actor{Role: domain.RoleCustomer, ID: 42}},
		{name: "other customer", actor: domain.Actor{Role: domain.RoleCustomer, ID: 43}, wantErr: ErrAccessDenied},
		{name: "own vendor", actor: domain.Actor{Role: domain.RoleVendor, ID: 10}},
		{name: "other vendor", actor: domain.Actor{Role: domain.RoleVendor, ID: 11}, wantErr: ErrAccessDenied},
		{name: "admin", actor: domain.Actor{Role: domain.RoleAdmin, ID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.GetByID(context.Background(), 1, tt.actor)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), resp.ID)
			assert.Equal(t, "2026-09-15", resp.BookingDate)
			require.Len(t, resp.Services, 1)
			assert.Equal(t, "14:00", resp.Services[0].StartTime)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{bookings: map[int64]*domain.Booking{}}, wellBeforeStart())

	_, err := svc.GetByID(context.Background(), 999, domain.Actor{Role: domain.RoleAdmin, ID: 1})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	t.Run("customer sees own history", func(t *testing.T) {
		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:      domain.Actor{Role: domain.RoleCustomer, ID: 42},
			CustomerID: 42,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})

	t.Run("customer cannot see another customer", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:      domain.Actor{Role: domain.RoleCustomer, ID: 43},
			CustomerID: 42,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("vendor cannot list customer history", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:      domain.Actor{Role: domain.RoleVendor, ID: 10},
			CustomerID: 42,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:      domain.Actor{Role: domain.RoleAdmin, ID: 1},
			CustomerID: 42,
			Status:     ptr.Ptr("pending"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetVendorBookings(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	t.Run("vendor sees own bookings", func(t *testing.T) {
		resp, err := svc.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
			Actor:    domain.Actor{Role: domain.RoleVendor, ID: 10},
			VendorID: 10,
			Status:   ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		require.NotNil(t, repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *repo.lastFilter.Status)
	})

	t.Run("vendor cannot see another shop", func(t *testing.T) {
		_, err := svc.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
			Actor:    domain.Actor{Role: domain.RoleVendor, ID: 11},
			VendorID: 10,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("customer cannot list vendor bookings", func(t *testing.T) {
		_, err := svc.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
			Actor:    domain.Actor{Role: domain.RoleCustomer, ID: 42},
			VendorID: 10,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any shop", func(t *testing.T) {
		resp, err := svc.GetVendorBookings(context.Background(), &models.GetVendorBookingsRequest{
			Actor:    domain.Actor{Role: domain.RoleAdmin, ID: 1},
			VendorID: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
	})
}

func TestCancel_CustomerWithinWindow(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  domain.Actor{Role: domain.RoleCustomer, ID: 42},
		Reason: ptr.Ptr("plans changed"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.cancelledID)
	assert.Equal(t, domain.RoleCustomer, repo.cancelledBy)
	require.NotNil(t, repo.cancelledReason)
	assert.Equal(t, "plans changed", *repo.cancelledReason)
}

func TestCancel_CutoffAppliesToEveryRole(t *testing.T) {
	// 13:30, до начала в 14:00 меньше часа - отказ для любой роли
	tooLate := time.Date(2026, 9, 15, 13, 30, 0, 0, time.UTC)

	actors := []domain.Actor{
		{Role: domain.RoleCustomer, ID: 42},
		{Role: domain.RoleVendor, ID: 10},
		{Role: domain.RoleAdmin, ID: 1},
	}

	for _, actor := range actors {
		t.Run(string(actor.Role), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
			svc := newTestService(repo, tooLate)

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Actor: actor})
			assert.ErrorIs(t, err, ErrCancellationTooLate)
			assert.Zero(t, repo.cancelledID)
		})
	}
}

func TestCancel_VendorWithinWindow(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor: domain.Actor{Role: domain.RoleVendor, ID: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVendor, repo.cancelledBy)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := testBooking()
	b.Status = domain.StatusCancelled
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, wellBeforeStart())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor: domain.Actor{Role: domain.RoleAdmin, ID: 1},
	})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_CompletedBooking(t *testing.T) {
	b := testBooking()
	b.Status = domain.StatusCompleted
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
	svc := newTestService(repo, wellBeforeStart())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor: domain.Actor{Role: domain.RoleAdmin, ID: 1},
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_AccessDenied(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor: domain.Actor{Role: domain.RoleCustomer, ID: 43},
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.cancelledID)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
	svc := newTestService(repo, wellBeforeStart())

	long := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range long {
		long[i] = 'x'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		Actor:  domain.Actor{Role: domain.RoleAdmin, ID: 1},
		Reason: ptr.Ptr(string(long)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete(t *testing.T) {
	t.Run("vendor completes own booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 1, domain.Actor{Role: domain.RoleVendor, ID: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.updatedID)
		assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
	})

	t.Run("customer cannot complete", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 1, domain.Actor{Role: domain.RoleCustomer, ID: 42})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("vendor cannot complete another shop's booking", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 1, domain.Actor{Role: domain.RoleVendor, ID: 11})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin cannot complete", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: testBooking()}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 1, domain.Actor{Role: domain.RoleAdmin, ID: 1})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Zero(t, repo.updatedID)
	})

	t.Run("cancelled booking cannot be completed", func(t *testing.T) {
		b := testBooking()
		b.Status = domain.StatusCancelled
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: b}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 1, domain.Actor{Role: domain.RoleVendor, ID: 10})
		assert.ErrorIs(t, err, ErrCannotComplete)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
		svc := newTestService(repo, wellBeforeStart())

		err := svc.Complete(context.Background(), 999, domain.Actor{Role: domain.RoleVendor, ID: 10})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
