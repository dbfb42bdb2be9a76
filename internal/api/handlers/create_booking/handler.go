package create_booking

import (
	"errors"
	"net/http"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/handlers"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/api/middleware"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	createBooking "github.com/Sangharshdeveloper/saloon-booking-management/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnauthorized       = "требуется аутентификация"
	msgCustomerOnly       = "онлайн-бронирование доступно только клиентам"
	msgVendorNotFound     = "салон не найден"
	msgVendorClosed       = "салон закрыт в выбранную дату"
	msgServiceNotFound    = "услуга недоступна у салона"
	msgOutsideHours       = "запрошенное время вне рабочих часов"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidInput       = "некорректные данные бронирования"
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Актор проставлен middleware аутентификации
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing actor in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if actor.Role != domain.RoleCustomer {
		h.logger.Warn("POST /bookings - Non-customer booking attempt: %s=%d", actor.Role, actor.ID)
		handlers.RespondForbidden(w, msgCustomerOnly)
		return
	}

	// Декодируем body
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в запрос use case
	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Создаем бронирование
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrVendorNotFound):
			h.logger.Warn("POST /bookings - Vendor not found: vendor_id=%d", req.VendorID)
			handlers.RespondNotFound(w, msgVendorNotFound)

		case errors.Is(err, createBooking.ErrVendorClosed):
			h.logger.Warn("POST /bookings - Vendor closed: vendor_id=%d, date=%s", req.VendorID, req.BookingDate)
			handlers.RespondConflict(w, msgVendorClosed)

		case errors.Is(err, createBooking.ErrServiceNotAvailable):
			h.logger.Warn("POST /bookings - Service not available: vendor_id=%d, error=%v", req.VendorID, err)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: vendor_id=%d, error=%v", req.VendorID, err)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: vendor_id=%d, error=%v", req.VendorID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: vendor_id=%d, customer_id=%d, error=%v",
				req.VendorID, actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, vendor_id=%d, customer_id=%d",
		result.BookingID, result.VendorID, actor.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
