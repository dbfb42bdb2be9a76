package set_early_closure

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
	msgInvalidCloseTime   = "раннее закрытие должно быть раньше обычного времени закрытия"
	msgInvalidInput       = "некорректные данные раннего закрытия"
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

// Handle POST /api/v1/vendors/early-closure
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /vendors/early-closure - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req SetEarlyClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors/early-closure - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Салон закрывается раньше сам, админ - любой салон
	vendorID := actor.ID
	if actor.Role == domain.RoleAdmin {
		if req.VendorID == nil {
			h.logger.Warn("POST /vendors/early-closure - Admin did not specify vendor ID")
			handlers.RespondBadRequest(w, msgMissingVendorID)
			return
		}
		vendorID = *req.VendorID
	}

	serviceReq, err := req.ToServiceRequest(actor, vendorID)
	if err != nil {
		h.logger.Warn("POST /vendors/early-closure - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SetEarlyClosure(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrVendorNotFound):
			h.logger.Warn("POST /vendors/early-closure - Vendor not found: vendor_id=%d", vendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("POST /vendors/early-closure - Access denied: vendor_id=%d, %s=%d",
				vendorID, actor.Role, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidCloseTime):
			h.logger.Warn("POST /vendors/early-closure - Invalid close time: vendor_id=%d, close_time=%s",
				vendorID, req.CloseTime)
			handlers.RespondBadRequest(w, msgInvalidCloseTime)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /vendors/early-closure - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /vendors/early-closure - Failed to set early closure: vendor_id=%d, error=%v",
				vendorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors/early-closure - Early closure set: id=%d, vendor_id=%d, date=%s, close_time=%s",
		result.ID, result.VendorID, result.Date, result.CloseTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
