package create_booking

import (
	"context"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CreateWithLines атомарно создает бронирование со строками услуг
	CreateWithLines(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// GetActiveLinesForDate получает строки услуг активных бронирований салона на дату
	GetActiveLinesForDate(ctx context.Context, vendorID int64, date time.Time) ([]domain.BookingServiceLine, error)
}

// VendorRepository интерфейс репозитория расписаний салонов
type VendorRepository interface {
	GetSchedule(ctx context.Context, vendorID int64) (*domain.VendorSchedule, error)
	GetHoliday(ctx context.Context, vendorID int64, date time.Time) (*domain.HolidayOverride, error)
	GetEarlyClosure(ctx context.Context, vendorID int64, date time.Time) (*domain.EarlyClosure, error)
	GetOffering(ctx context.Context, vendorID, serviceID int64) (*domain.ServiceOffering, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
