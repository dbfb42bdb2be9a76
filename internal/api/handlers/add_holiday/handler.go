package add_holiday

import (
	"errors"
	"net/http"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/middleware"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingVendorID    = "не указан ID салона"
	msgUnauthorized       = "требуется аутентификация"
	msgForbidden          = "доступ запрещен"
	msgVendorNotFound     = "салон не найден"
	msgAlreadyExists      = "выходной на эту дату уже объявлен"
	msgInvalidInput       = "некорректные данные выходного"
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

// Handle POST /api/v1/vendors/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /vendors/holidays - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req AddHolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Салон объявляет выходной себе, админ - любому салону
	vendorID := actor.ID
	if actor.Role == domain.RoleAdmin {
		if req.VendorID == nil {
			h.logger.Warn("POST /vendors/holidays - Admin did not specify vendor ID")
			handlers.RespondBadRequest(w, msgMissingVendorID)
			return
		}
		vendorID = *req.VendorID
	}

	serviceReq, err := req.ToServiceRequest(actor, vendorID)
	if err != nil {
		h.logger.Warn("POST /vendors/holidays - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AddHoliday(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrVendorNotFound):
			h.logger.Warn("POST /vendors/holidays - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /vendors/holidays - Access denied: vendor_id=%d, %s=%d", vendorID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrHolidayAlreadyExists):
			h.logger.Warn("POST /vendors/holidays - Holiday already exists: vendor_id=%d, date=%s", vendorID, req.Date)
			handlers.RespondConflict(w, msgAlreadyExists)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /vendors/holidays - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /vendors/holidays - Failed to add holiday: vendor_id=%d, error=%v", vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors/holidays - Holiday created: id=%d, vendor_id=%d, date=%s",
		result.ID, result.VendorID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
