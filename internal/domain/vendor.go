package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	ErrInvalidSchedule = errors.New("domain: invalid vendor schedule")
)

// VendorStatus represents the lifecycle status of a vendor's shop
type VendorStatus string

const (
	VendorActive    VendorStatus = "active"
	VendorInactive  VendorStatus = "inactive"
	VendorSuspended VendorStatus = "suspended"
)

// VerificationStatus represents admin moderation state of a vendor
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// VendorSchedule describes a vendor's operating hours and capacity.
// Invariants: OpenTime < CloseTime; a configured break window lies
// strictly within [OpenTime, CloseTime); SeatCount and WorkerCount >= 1.
type VendorSchedule struct {
	VendorID  int64
	OpenTime  types.TimeString
	CloseTime types.TimeString

	// Перерыв, опционально. Либо оба поля заданы, либо оба пусты.
	BreakStartTime *types.TimeString
	BreakEndTime   *types.TimeString

	// WeeklyHoliday хранимый еженедельный выходной (например "sunday").
	// В генерации слотов не участвует: салоны отмечают выходные
	// датированными записями VendorHoliday.
	WeeklyHoliday *string

	SeatCount   int
	WorkerCount int

	VerificationStatus VerificationStatus
	Status             VendorStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MaxConcurrent returns the vendor's concurrent booking capacity:
// a booking needs both a seat and a worker, so the scarcer resource binds.
func (s *VendorSchedule) MaxConcurrent() int {
	if s.SeatCount < s.WorkerCount {
		return s.SeatCount
	}
	return s.WorkerCount
}

// HasBreak returns true if a break window is configured
func (s *VendorSchedule) HasBreak() bool {
	return s.BreakStartTime != nil && s.BreakEndTime != nil
}

// IsBookable returns true if the vendor is approved and active
func (s *VendorSchedule) IsBookable() bool {
	return s.VerificationStatus == VerificationApproved && s.Status == VendorActive
}

// Validate checks the schedule invariants
func (s *VendorSchedule) Validate() error {
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open_time: %v", ErrInvalidSchedule, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close_time: %v", ErrInvalidSchedule, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: open_time must be before close_time", ErrInvalidSchedule)
	}

	if (s.BreakStartTime == nil) != (s.BreakEndTime == nil) {
		return fmt.Errorf("%w: break window must set both start and end", ErrInvalidSchedule)
	}
	if s.HasBreak() {
		if !s.BreakStartTime.IsBefore(*s.BreakEndTime) {
			return fmt.Errorf("%w: break_start_time must be before break_end_time", ErrInvalidSchedule)
		}
		if s.BreakStartTime.IsBefore(s.OpenTime) || s.BreakEndTime.IsAfter(s.CloseTime) {
			return fmt.Errorf("%w: break window must lie within working hours", ErrInvalidSchedule)
		}
	}

	if s.SeatCount < 1 {
		return fmt.Errorf("%w: seat_count must be at least 1", ErrInvalidSchedule)
	}
	if s.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidSchedule)
	}

	return nil
}

// HolidayOverride is a full-day closure for a specific date,
// unique per (vendor, date)
type HolidayOverride struct {
	ID        int64
	VendorID  int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// EarlyClosure shortens the working day for a specific date.
// EarlyCloseTime must be strictly before the vendor's regular close time.
// Unique per (vendor, date); re-setting the same date updates it.
type EarlyClosure struct {
	ID             int64
	VendorID       int64
	Date           time.Time
	EarlyCloseTime types.TimeString
	Reason         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ServiceOffering is a vendor's priced service. Price comes from the
// offering, duration from the shared service catalog; both are
// snapshotted into booking lines at booking time.
type ServiceOffering struct {
	ID              int64
	VendorID        int64
	ServiceID       int64
	ServiceName     string
	Price           float64
	DurationMinutes int
	IsAvailable     bool
	Active          bool
}
