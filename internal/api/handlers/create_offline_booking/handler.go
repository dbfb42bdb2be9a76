package create_offline_booking

import (
	"errors"
	"net/http"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers"
	createBookingHandler "github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers/create_booking"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/middleware"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	createBooking "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "требуется аутентификация"
	msgVendorOnly         = "офлайн-запись доступна только салону"
	msgVendorNotFound     = "салон не найден"
	msgVendorClosed       = "салон закрыт в выбранную дату"
	msgServiceNotFound    = "услуга недоступна у салона"
	msgOutsideHours       = "запрошенное время вне рабочих часов"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidInput       = "некорректные данные записи"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/vendors/bookings/offline
// Салон оформляет запись клиента, пришедшего без онлайн-бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /vendors/bookings/offline - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if actor.Role != domain.RoleVendor {
		h.logger.Warn("POST /vendors/bookings/offline - Non-vendor attempt: %s=%d", actor.Role, actor.ID)
		handlers.RespondForbidden(w, msgVendorOnly)
		return
	}

	// Декодируем body
	var req CreateOfflineBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendors/bookings/offline - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case: салон бронирует у себя
	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /vendors/bookings/offline - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Создаем запись
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /vendors/bookings/offline - Vendor not found: vendor_id=%d", actor.ID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrVendorClosed):
			h.logger.Warn("POST /vendors/bookings/offline - Vendor closed: vendor_id=%d, date=%s", actor.ID, req.BookingDate)
			handlers.RespondConflict(w, msgVendorClosed)

		case errors.Is(err, createBooking.ErrServiceNotAvailable):
			h.logger.Warn("POST /vendors/bookings/offline - Service not available: vendor_id=%d, error=%v", actor.ID, err)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /vendors/bookings/offline - Outside working hours: vendor_id=%d, error=%v", actor.ID, err)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /vendors/bookings/offline - Slot not available: vendor_id=%d, error=%v", actor.ID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /vendors/bookings/offline - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /vendors/bookings/offline - Failed to create booking: vendor_id=%d, error=%v",
				actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /vendors/bookings/offline - Booking created: booking_id=%d, vendor_id=%d, type=%s",
		result.BookingID, result.VendorID, result.BookingType)
	handlers.RespondJSON(w, http.StatusCreated, createBookingHandler.FromUseCaseResponse(result))
}
