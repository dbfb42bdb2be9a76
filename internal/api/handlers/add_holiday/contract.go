package add_holiday

import (
	"context"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

type ScheduleService interface {
	AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
