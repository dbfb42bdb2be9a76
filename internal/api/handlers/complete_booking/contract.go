package complete_booking

import (
	"context"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
)

type BookingService interface {
	Complete(ctx context.Context, bookingID int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
