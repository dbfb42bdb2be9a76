package delete_holiday

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/middleware"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidVendorID = "некорректный ID салона"
	msgMissingVendorID = "не указан ID салона"
	msgUnauthorized    = "требуется аутентификация"
	msgForbidden       = "доступ запрещен"
	msgNotFound        = "выходной на эту дату не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/vendors/holidays/{date}
// Query params: vendorId (только для админа)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /vendors/holidays/{date} - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем дату из URL
	vars := mux.Vars(r)
	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("DELETE /vendors/holidays/{date} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Салон снимает выходной себе, админ - любому салону через query
	vendorID := actor.ID
	if actor.Role == domain.RoleAdmin {
		vendorIDStr := r.URL.Query().Get("vendorId")
		if vendorIDStr == "" {
			h.logger.Warn("DELETE /vendors/holidays/{date} - Admin did not specify vendor ID")
			handlers.RespondBadRequest(w, msgMissingVendorID)
			return
		}
		vendorID, err = strconv.ParseInt(vendorIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /vendors/holidays/{date} - Invalid vendor ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVendorID)
			return
		}
	}

	req := &models.RemoveHolidayRequest{
		Actor:    actor,
		VendorID: vendorID,
		Date:     date,
	}

	err = h.service.RemoveHoliday(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrHolidayNotFound):
			h.logger.Warn("DELETE /vendors/holidays/{date} - Holiday not found: vendor_id=%d, date=%s",
				vendorID, vars["date"])
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /vendors/holidays/{date} - Access denied: vendor_id=%d, %s=%d",
				vendorID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("DELETE /vendors/holidays/{date} - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("DELETE /vendors/holidays/{date} - Failed to remove holiday: vendor_id=%d, error=%v",
				vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vendors/holidays/{date} - Holiday removed: vendor_id=%d, date=%s", vendorID, vars["date"])
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
