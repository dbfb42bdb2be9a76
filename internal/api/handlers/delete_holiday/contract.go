package delete_holiday

import (
	"context"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

type ScheduleService interface {
	RemoveHoliday(ctx context.Context, req *models.RemoveHolidayRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
