package create_booking

import (
	"fmt"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req Request) error {
	if req.VendorID <= 0 {
		return fmt.Errorf("%w: vendor_id must be positive", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: booking_date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.Date.Before(today) {
		return fmt.Errorf("%w: booking_date must not be in the past", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	for i, svc := range req.Services {
		if svc.ServiceID <= 0 {
			return fmt.Errorf("%w: services[%d].service_id must be positive", ErrInvalidInput, i)
		}
		if err := svc.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: services[%d].start_time: %v", ErrInvalidInput, i, err)
		}
	}

	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment_method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	switch req.BookingType {
	case domain.BookingTypeOnline:
		if req.CustomerID == nil {
			return fmt.Errorf("%w: customer_id is required for online booking", ErrInvalidInput)
		}
	case domain.BookingTypeOffline, domain.BookingTypeWalkIn:
		// офлайн-запись может не иметь зарегистрированного клиента
	default:
		return fmt.Errorf("%w: unknown booking_type %q", ErrInvalidInput, req.BookingType)
	}

	return nil
}
