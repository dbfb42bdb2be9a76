package domain

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking.
// Valid transitions: confirmed -> cancelled, confirmed -> completed,
// confirmed -> no_show. All non-confirmed states are terminal.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// ValidPaymentMethod reports whether m is a known payment method
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodWallet:
		return true
	default:
		return false
	}
}

// BookingType distinguishes online bookings from vendor-created ones
type BookingType string

const (
	BookingTypeOnline  BookingType = "online"
	BookingTypeOffline BookingType = "offline"
	BookingTypeWalkIn  BookingType = "walk_in"
)

// ActorRole identifies who is acting on a booking.
// Resolved once at the HTTP boundary and passed as a typed value,
// never dispatched on raw strings inside the core.
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleVendor   ActorRole = "vendor"
	RoleAdmin    ActorRole = "admin"
)

// ValidActorRole reports whether r is a known actor role
func ValidActorRole(r ActorRole) bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

// Actor is a strongly-typed (role, id) pair acting on a booking
type Actor struct {
	Role ActorRole
	ID   int64
}

// Booking represents a confirmed appointment at a vendor's shop
type Booking struct {
	ID          int64
	VendorID    int64
	CustomerID  *int64 // nil для walk-in/offline бронирований
	BookingDate time.Time
	TotalAmount float64

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Status        BookingStatus
	Type          BookingType

	Notes *string

	CancellationReason *string
	CancelledBy        *ActorRole
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Lines строки услуг бронирования, неизменяемы после создания
	Lines []BookingServiceLine
}

// BookingServiceLine is one service within a booking. Name, price and
// duration are snapshotted at booking time: later catalog edits never
// change historical bookings.
type BookingServiceLine struct {
	ID              int64
	BookingID       int64
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// IsActive returns true if the booking occupies capacity
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// CanBeCancelled returns true if the booking is still cancellable by status
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can transition to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// EarliestStart returns the start time of the earliest service line
func (b *Booking) EarliestStart() (types.TimeString, bool) {
	if len(b.Lines) == 0 {
		return "", false
	}
	earliest := b.Lines[0].StartTime
	for _, line := range b.Lines[1:] {
		if line.StartTime.IsBefore(earliest) {
			earliest = line.StartTime
		}
	}
	return earliest, true
}

// StartDateTime returns the booking date combined with the earliest
// line's start time. Used for the cancellation cutoff check.
func (b *Booking) StartDateTime() (time.Time, bool) {
	start, ok := b.EarliestStart()
	if !ok {
		return time.Time{}, false
	}
	dt, err := start.OnDate(b.BookingDate)
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}

// VendorBookingsFilter фильтр для выборки бронирований салона
type VendorBookingsFilter struct {
	VendorID        int64
	Date            *time.Time     // Конкретная дата (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
