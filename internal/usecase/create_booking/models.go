package create_booking

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// Request запрос на создание бронирования.
// CustomerID == nil означает офлайн-запись (walk-in), оформленную салоном.
type Request struct {
	VendorID      int64
	CustomerID    *int64
	Date          time.Time
	Services      []ServiceRequest
	PaymentMethod domain.PaymentMethod
	BookingType   domain.BookingType
	Notes         *string
	// Данные клиента для офлайн-записи (попадают в заметки)
	CustomerName  *string
	CustomerPhone *string
}

// ServiceRequest запрошенная услуга с желаемым временем начала
type ServiceRequest struct {
	ServiceID int64
	StartTime types.TimeString
}

// Response созданное бронирование
type Response struct {
	BookingID     int64
	VendorID      int64
	CustomerID    *int64
	BookingDate   time.Time
	TotalAmount   float64
	PaymentMethod domain.PaymentMethod
	PaymentStatus domain.PaymentStatus
	Status        domain.BookingStatus
	BookingType   domain.BookingType
	Notes         *string
	CreatedAt     time.Time
	Services      []ServiceLine
}

// ServiceLine строка услуги в созданном бронировании
type ServiceLine struct {
	ServiceID       int64
	ServiceName     string
	ServicePrice    float64
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
