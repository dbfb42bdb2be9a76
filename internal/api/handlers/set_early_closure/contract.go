package set_early_closure

import (
	"context"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

type ScheduleService interface {
	SetEarlyClosure(ctx context.Context, req *models.SetEarlyClosureRequest) (*models.EarlyClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
