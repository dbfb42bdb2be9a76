package models

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// Request модели

// AddHolidayRequest запрос на объявление выходного дня
type AddHolidayRequest struct {
	Actor    domain.Actor
	VendorID int64
	Date     time.Time
	Reason   *string
}

// RemoveHolidayRequest запрос на снятие выходного дня
type RemoveHolidayRequest struct {
	Actor    domain.Actor
	VendorID int64
	Date     time.Time
}

// SetEarlyClosureRequest запрос на раннее закрытие в конкретную дату
type SetEarlyClosureRequest struct {
	Actor     domain.Actor
	VendorID  int64
	Date      time.Time
	CloseTime types.TimeString
	Reason    *string
}

// Response модели

// HolidayResponse объявленный выходной день
type HolidayResponse struct {
	ID        int64     `json:"id"`
	VendorID  int64     `json:"vendorId"`
	Date      string    `json:"date"` // "2026-09-15"
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EarlyClosureResponse раннее закрытие на дату
type EarlyClosureResponse struct {
	ID        int64     `json:"id"`
	VendorID  int64     `json:"vendorId"`
	Date      string    `json:"date"`      // "2026-09-15"
	CloseTime string    `json:"closeTime"` // "16:00"
	Reason    *string   `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainHoliday конвертирует domain.HolidayOverride в HolidayResponse
func FromDomainHoliday(h *domain.HolidayOverride) *HolidayResponse {
	return &HolidayResponse{
		ID:        h.ID,
		VendorID:  h.VendorID,
		Date:      h.Date.Format(domain.DateFormat),
		Reason:    h.Reason,
		CreatedAt: h.CreatedAt,
	}
}

// FromDomainEarlyClosure конвертирует domain.EarlyClosure в EarlyClosureResponse
func FromDomainEarlyClosure(c *domain.EarlyClosure) *EarlyClosureResponse {
	return &EarlyClosureResponse{
		ID:        c.ID,
		VendorID:  c.VendorID,
		Date:      c.Date.Format(domain.DateFormat),
		CloseTime: c.EarlyCloseTime.String(),
		Reason:    c.Reason,
		UpdatedAt: c.UpdatedAt,
	}
}
