package models

import (
	"errors"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.Actor
	Reason *string
}

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	Actor      domain.Actor
	CustomerID int64
	Status     *string
}

// GetVendorBookingsRequest запрос на получение бронирований салона
type GetVendorBookingsRequest struct {
	Actor           domain.Actor
	VendorID        int64
	Date            *time.Time // Конкретная дата (опционально)
	Status          *string    // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetVendorBookingsRequest) ToDomainFilter() (domain.VendorBookingsFilter, error) {
	filter := domain.VendorBookingsFilter{
		VendorID:        r.VendorID,
		Date:            r.Date,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64                 `json:"id"`
	VendorID           int64                 `json:"vendorId"`
	CustomerID         *int64                `json:"customerId,omitempty"`
	BookingDate        string                `json:"bookingDate"` // "2026-09-15"
	TotalAmount        float64               `json:"totalAmount"`
	PaymentMethod      string                `json:"paymentMethod"`
	PaymentStatus      string                `json:"paymentStatus"`
	Status             string                `json:"status"`
	BookingType        string                `json:"bookingType"`
	Notes              *string               `json:"notes,omitempty"`
	CancellationReason *string               `json:"cancellationReason,omitempty"`
	CancelledBy        *string               `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time            `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	Services           []ServiceLineResponse `json:"services"`
}

// ServiceLineResponse строка услуги бронирования
type ServiceLineResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "10:30"
	DurationMinutes int     `json:"durationMinutes"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Конвертация domain -> response

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		VendorID:           b.VendorID,
		CustomerID:         b.CustomerID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		TotalAmount:        b.TotalAmount,
		PaymentMethod:      string(b.PaymentMethod),
		PaymentStatus:      string(b.PaymentStatus),
		Status:             string(b.Status),
		BookingType:        string(b.Type),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		Services:           make([]ServiceLineResponse, 0, len(b.Lines)),
	}
	if b.CancelledBy != nil {
		cancelledBy := string(*b.CancelledBy)
		resp.CancelledBy = &cancelledBy
	}
	for _, line := range b.Lines {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			ServicePrice:    line.ServicePrice,
			StartTime:       line.StartTime.String(),
			EndTime:         line.EndTime.String(),
			DurationMinutes: line.DurationMinutes,
		})
	}
	return resp
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
