package schedule

import (
	"context"
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

// VendorRepository интерфейс репозитория расписаний салонов
type VendorRepository interface {
	GetSchedule(ctx context.Context, vendorID int64) (*domain.VendorSchedule, error)
	CreateHoliday(ctx context.Context, holiday *domain.HolidayOverride) (*domain.HolidayOverride, error)
	DeleteHoliday(ctx context.Context, vendorID int64, date time.Time) error
	UpsertEarlyClosure(ctx context.Context, closure *domain.EarlyClosure) (*domain.EarlyClosure, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
