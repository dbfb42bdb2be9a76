package get_available_slots

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	getAvailableSlots "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	VendorID      int64              `json:"vendorId"`
	Date          string             `json:"date"` // "2026-09-15"
	IsHoliday     bool               `json:"isHoliday"`
	HolidayReason *string            `json:"holidayReason,omitempty"`
	EarlyClosure  *EarlyClosureBlock `json:"earlyClosure,omitempty"`
	Slots         []SlotBlock        `json:"slots"`
}

// EarlyClosureBlock информация о раннем закрытии на дату
type EarlyClosureBlock struct {
	ClosesAt string  `json:"closesAt"` // "16:00"
	Reason   *string `json:"reason,omitempty"`
}

// SlotBlock один слот в сетке
type SlotBlock struct {
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "10:30"
	IsAvailable bool   `json:"isAvailable"`
}

// ToUseCaseRequest формирует запрос к use case с парсингом даты
func ToUseCaseRequest(vendorID int64, dateStr string) (getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return getAvailableSlots.Request{}, err
	}
	return getAvailableSlots.Request{
		VendorID: vendorID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		VendorID:      resp.VendorID,
		Date:          resp.Date.Format(domain.DateFormat),
		IsHoliday:     resp.IsHoliday,
		HolidayReason: resp.HolidayReason,
		Slots:         make([]SlotBlock, 0, len(resp.Slots)),
	}
	if resp.EarlyClosure != nil {
		out.EarlyClosure = &EarlyClosureBlock{
			ClosesAt: resp.EarlyClosure.ClosesAt.String(),
			Reason:   resp.EarlyClosure.Reason,
		}
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotBlock{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		})
	}
	return out
}
