package get_available_slots

import (
	"context"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveLinesForDate получает строки услуг активных бронирований салона на дату
	GetActiveLinesForDate(ctx context.Context, vendorID int64, date time.Time) ([]domain.BookingServiceLine, error)
}

// VendorRepository интерфейс репозитория расписаний салонов
type VendorRepository interface {
	GetSchedule(ctx context.Context, vendorID int64) (*domain.VendorSchedule, error)
	GetHoliday(ctx context.Context, vendorID int64, date time.Time) (*domain.HolidayOverride, error)
	GetEarlyClosure(ctx context.Context, vendorID int64, date time.Time) (*domain.EarlyClosure, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
