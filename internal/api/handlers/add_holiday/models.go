package add_holiday

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

// AddHolidayRequest HTTP request model.
// VendorID обязателен только для админа; салон объявляет выходной себе.
type AddHolidayRequest struct {
	VendorID *int64  `json:"vendorId,omitempty"`
	Date     string  `json:"date"` // "2026-09-15"
	Reason   *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *AddHolidayRequest) ToServiceRequest(actor domain.Actor, vendorID int64) (*models.AddHolidayRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.AddHolidayRequest{
		Actor:    actor,
		VendorID: vendorID,
		Date:     date,
		Reason:   r.Reason,
	}, nil
}
