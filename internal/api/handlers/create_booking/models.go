package create_booking

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	createBooking "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/create_booking"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VendorID      int64            `json:"vendorId"`
	BookingDate   string           `json:"bookingDate"` // "2026-09-15"
	Services      []ServiceRequest `json:"services"`
	PaymentMethod string           `json:"paymentMethod"`
	Notes         *string          `json:"notes,omitempty"`
}

// ServiceRequest запрошенная услуга
type ServiceRequest struct {
	ServiceID int64  `json:"serviceId"`
	StartTime string `json:"startTime"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     int64             `json:"bookingId"`
	VendorID      int64             `json:"vendorId"`
	CustomerID    *int64            `json:"customerId,omitempty"`
	BookingDate   string            `json:"bookingDate"`
	TotalAmount   float64           `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentStatus string            `json:"paymentStatus"`
	Status        string            `json:"status"`
	BookingType   string            `json:"bookingType"`
	Notes         *string           `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	Services      []ServiceResponse `json:"services"`
}

// ServiceResponse строка услуги в созданном бронировании
type ServiceResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (createBooking.Request, error) {
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

	return createBooking.Request{
		VendorID:      r.VendorID,
		CustomerID:    &customerID,
		Date:          date,
		Services:      services,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		BookingType:   domain.BookingTypeOnline,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		BookingID:     resp.BookingID,
		VendorID:      resp.VendorID,
		CustomerID:    resp.CustomerID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		TotalAmount:   resp.TotalAmount,
		PaymentMethod: string(resp.PaymentMethod),
		PaymentStatus: string(resp.PaymentStatus),
		Status:        string(resp.Status),
		BookingType:   string(resp.BookingType),
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt,
		Services:      make([]ServiceResponse, 0, len(resp.Services)),
	}
	for _, svc := range resp.Services {
		out.Services = append(out.Services, ServiceResponse{
			ServiceID:       svc.ServiceID,
			ServiceName:     svc.ServiceName,
			ServicePrice:    svc.ServicePrice,
			StartTime:       svc.StartTime.String(),
			EndTime:         svc.EndTime.String(),
			DurationMinutes: svc.DurationMinutes,
		})
	}
	return out
}
