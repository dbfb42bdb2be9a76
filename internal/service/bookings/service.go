package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	bookingRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/booking"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/bookings/models"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только своё бронирование, салон - бронирования своего салона,
// админ - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s=%d", id, actor.Role, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for %s=%d to booking id=%d", actor.Role, actor.ID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	// Клиент видит только свою историю, админ - любую
	if req.Actor.Role == domain.RoleCustomer && req.Actor.ID != req.CustomerID {
		s.logger.Warn("GetUserBookings: customer=%d requested history of customer=%d", req.Actor.ID, req.CustomerID)
		return nil, ErrAccessDenied
	}
	if req.Actor.Role == domain.RoleVendor {
		s.logger.Warn("GetUserBookings: vendor=%d cannot list customer history", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomer(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVendorBookings получает бронирования салона с фильтрацией
// Поддерживает фильтрацию по дате, статусу и включению неактивных бронирований
// Доступно салону (только свои бронирования) и админу
func (s *Service) GetVendorBookings(ctx context.Context, req *models.GetVendorBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVendorBookings: fetching bookings for vendor=%d by %s=%d", req.VendorID, req.Actor.Role, req.Actor.ID)

	// Салон видит только свои бронирования, админ - любые
	switch req.Actor.Role {
	case domain.RoleVendor:
		if req.Actor.ID != req.VendorID {
			s.logger.Warn("GetVendorBookings: vendor=%d requested bookings of vendor=%d", req.Actor.ID, req.VendorID)
			return nil, ErrAccessDenied
		}
	case domain.RoleAdmin:
		// доступ ко всем салонам
	default:
		s.logger.Warn("GetVendorBookings: %s=%d cannot list vendor bookings", req.Actor.Role, req.Actor.ID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVendorBookings: invalid filter for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVendorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVendorBookings: repository error for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: GetVendorBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVendorBookings: successfully fetched %d bookings for vendor=%d", len(bookings), req.VendorID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент отменяет своё бронирование, салон - бронирования своего салона,
// админ - любые. Отмена возможна не позже, чем за час до начала
// независимо от роли.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by %s=%d", bookingID, req.Actor.Role, req.Actor.ID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(booking, req.Actor); err != nil {
		s.logger.Warn("Cancel: access denied for %s=%d to booking id=%d", req.Actor.Role, req.Actor.ID, bookingID)
		return err
	}

	// Повторная отмена и терминальные статусы
	if booking.Status == domain.StatusCancelled {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Отменить можно не позже, чем за час до начала первой услуги,
	// независимо от роли
	start, ok := booking.StartDateTime()
	if !ok {
		s.logger.Error("Cancel: booking id=%d has no service lines", bookingID)
		return fmt.Errorf("%w: Cancel - booking has no service lines", ErrInternal)
	}
	if s.timeProvider.Now().After(start.Add(-domain.MinCancellationNotice)) {
		s.logger.Warn("Cancel: cancellation window passed for booking id=%d, starts at %s", bookingID, start)
		return ErrCancellationTooLate
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason, req.Actor.Role); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d by %s", bookingID, req.Actor.Role)
	return nil
}

// Complete переводит бронирование в статус completed
// Доступно только салону для своих подтвержденных бронирований
func (s *Service) Complete(ctx context.Context, bookingID int64, actor domain.Actor) error {
	s.logger.Info("Complete: completing booking id=%d by %s=%d", bookingID, actor.Role, actor.ID)

	if actor.Role != domain.RoleVendor {
		s.logger.Warn("Complete: %s=%d cannot complete bookings", actor.Role, actor.ID)
		return ErrAccessDenied
	}

	// Получаем бронирование
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	// Салон может завершить только свои бронирования
	if booking.VendorID != actor.ID {
		s.logger.Warn("Complete: vendor=%d has no access to booking id=%d", actor.ID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCompleted() {
		s.logger.Warn("Complete: booking id=%d cannot be completed, status=%s", bookingID, booking.Status)
		return ErrCannotComplete
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Complete: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// checkBookingAccess проверяет, что актор имеет доступ к бронированию:
// клиент - владелец, салон - свой салон, админ - любое
func (s *Service) checkBookingAccess(booking *domain.Booking, actor domain.Actor) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleVendor:
		if booking.VendorID == actor.ID {
			return nil
		}
	case domain.RoleCustomer:
		if booking.CustomerID != nil && *booking.CustomerID == actor.ID {
			return nil
		}
	}
	return ErrAccessDenied
}
