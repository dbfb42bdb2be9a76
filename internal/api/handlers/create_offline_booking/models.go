package create_offline_booking

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	createBooking "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/create_booking"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// CreateOfflineBookingRequest HTTP request model.
// CustomerID указывается, если зарегистрированный клиент записался у стойки;
// для незарегистрированного walk-in клиента передаются имя и телефон.
type CreateOfflineBookingRequest struct {
	BookingDate   string           `json:"bookingDate"` // "2026-09-15"
	Services      []ServiceRequest `json:"services"`
	PaymentMethod string           `json:"paymentMethod"`
	CustomerID    *int64           `json:"customerId,omitempty"`
	CustomerName  *string          `json:"customerName,omitempty"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// ServiceRequest запрошенная услуга
type ServiceRequest struct {
	ServiceID int64  `json:"serviceId"`
	StartTime string `json:"startTime"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateOfflineBookingRequest) ToUseCaseRequest(vendorID int64) (createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return createBooking.Request{}, err
	}

	services := make([]createBooking.ServiceRequest, 0, len(r.Services))
	for _, svc := range r.Services {
		services = append(services, createBooking.ServiceRequest{
			ServiceID: svc.ServiceID,
			StartTime: types.TimeString(svc.StartTime),
		})
	}

	bookingType := domain.BookingTypeOffline
	if r.CustomerID == nil {
		bookingType = domain.BookingTypeWalkIn
	}

	return createBooking.Request{
		VendorID:      vendorID,
		CustomerID:    r.CustomerID,
		Date:          date,
		Services:      services,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		BookingType:   bookingType,
		Notes:         r.Notes,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}, nil
}
