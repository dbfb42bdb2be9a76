package cancel_booking

import (
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actor domain.Actor) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Actor:  actor,
		Reason: r.Reason,
	}
}
