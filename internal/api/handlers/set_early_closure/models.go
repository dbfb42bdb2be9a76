package set_early_closure

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// SetEarlyClosureRequest HTTP request model.
// VendorID обязателен только для админа; салон закрывается раньше сам.
type SetEarlyClosureRequest struct {
	VendorID  *int64  `json:"vendorId,omitempty"`
	Date      string  `json:"date"`      // "2026-09-15"
	CloseTime string  `json:"closeTime"` // "16:00"
	Reason    *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetEarlyClosureRequest) ToServiceRequest(actor domain.Actor, vendorID int64) (*models.SetEarlyClosureRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &models.SetEarlyClosureRequest{
		Actor:     actor,
		VendorID:  vendorID,
		Date:      date,
		CloseTime: types.TimeString(r.CloseTime),
		Reason:    r.Reason,
	}, nil
}
