package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	vendorRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/service/schedule/models"
)

// Service сервис для управления исключениями расписания салона:
// датированными выходными и ранними закрытиями
type Service struct {
	vendorRepo VendorRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(vendorRepo VendorRepository, logger Logger) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		logger:     logger,
	}
}

// AddHoliday объявляет выходной день для салона на конкретную дату
// Доступно салону (только для себя) и админу
func (s *Service) AddHoliday(ctx context.Context, req *models.AddHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("AddHoliday: vendor=%d date=%s by %s=%d",
		req.VendorID, req.Date.Format(domain.DateFormat), req.Actor.Role, req.Actor.ID)

	// 1. Валидация входных данных
	if err := s.validateVendorAccess(req.Actor, req.VendorID); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxHolidayReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxHolidayReasonLength)
	}

	// 2. Проверяем, что салон существует и принимает бронирования
	if _, err := s.vendorRepo.GetSchedule(ctx, req.VendorID); err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("AddHoliday: vendor=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("AddHoliday: failed to get schedule for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: AddHoliday - repository error: %v", ErrInternal, err)
	}

	// 3. Создаем выходной; дубликат по (vendor, date) - конфликт
	holiday, err := s.vendorRepo.CreateHoliday(ctx, &domain.HolidayOverride{
		VendorID: req.VendorID,
		Date:     req.Date,
		Reason:   req.Reason,
	})
	if err != nil {
		if errors.Is(err, vendorRepo.ErrDuplicateHoliday) {
			s.logger.Warn("AddHoliday: holiday already exists for vendor=%d on %s", req.VendorID, req.Date.Format(domain.DateFormat))
			return nil, ErrHolidayAlreadyExists
		}
		s.logger.Error("AddHoliday: repository error for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: AddHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddHoliday: successfully created holiday id=%d for vendor=%d", holiday.ID, holiday.VendorID)
	return models.FromDomainHoliday(holiday), nil
}

// RemoveHoliday снимает объявленный выходной, салон снова открыт на эту дату
// Доступно салону (только для себя) и админу
func (s *Service) RemoveHoliday(ctx context.Context, req *models.RemoveHolidayRequest) error {
	s.logger.Info("RemoveHoliday: vendor=%d date=%s by %s=%d",
		req.VendorID, req.Date.Format(domain.DateFormat), req.Actor.Role, req.Actor.ID)

	if err := s.validateVendorAccess(req.Actor, req.VendorID); err != nil {
		return err
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.vendorRepo.DeleteHoliday(ctx, req.VendorID, req.Date); err != nil {
		if errors.Is(err, vendorRepo.ErrHolidayNotFound) {
			s.logger.Warn("RemoveHoliday: holiday not found for vendor=%d on %s", req.VendorID, req.Date.Format(domain.DateFormat))
			return ErrHolidayNotFound
		}
		s.logger.Error("RemoveHoliday: repository error for vendor=%d: %v", req.VendorID, err)
		return fmt.Errorf("%w: RemoveHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveHoliday: successfully removed holiday for vendor=%d on %s", req.VendorID, req.Date.Format(domain.DateFormat))
	return nil
}

// SetEarlyClosure устанавливает раннее закрытие салона на конкретную дату.
// Время закрытия должно быть строго раньше обычного времени закрытия.
// Повторная установка на ту же дату обновляет запись.
func (s *Service) SetEarlyClosure(ctx context.Context, req *models.SetEarlyClosureRequest) (*models.EarlyClosureResponse, error) {
	s.logger.Info("SetEarlyClosure: vendor=%d date=%s closeTime=%s by %s=%d",
		req.VendorID, req.Date.Format(domain.DateFormat), req.CloseTime, req.Actor.Role, req.Actor.ID)

	// 1. Валидация входных данных
	if err := s.validateVendorAccess(req.Actor, req.VendorID); err != nil {
		return nil, err
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.CloseTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: close_time: %v", ErrInvalidInput, err)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxHolidayReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxHolidayReasonLength)
	}

	// 2. Получаем расписание для проверки обычного времени закрытия
	sched, err := s.vendorRepo.GetSchedule(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("SetEarlyClosure: vendor=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("SetEarlyClosure: failed to get schedule for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: SetEarlyClosure - repository error: %v", ErrInternal, err)
	}

	// 3. Раннее закрытие обязано быть строго раньше обычного и не раньше открытия
	if !req.CloseTime.IsBefore(sched.CloseTime) {
		s.logger.Warn("SetEarlyClosure: close_time=%s is not before regular close=%s for vendor=%d",
			req.CloseTime, sched.CloseTime, req.VendorID)
		return nil, ErrInvalidCloseTime
	}
	if req.CloseTime.IsBefore(sched.OpenTime) {
		s.logger.Warn("SetEarlyClosure: close_time=%s is before open=%s for vendor=%d",
			req.CloseTime, sched.OpenTime, req.VendorID)
		return nil, fmt.Errorf("%w: close_time must not be before open_time", ErrInvalidInput)
	}

	// 4. Создаем или обновляем запись
	closure, err := s.vendorRepo.UpsertEarlyClosure(ctx, &domain.EarlyClosure{
		VendorID:       req.VendorID,
		Date:           req.Date,
		EarlyCloseTime: req.CloseTime,
		Reason:         req.Reason,
	})
	if err != nil {
		s.logger.Error("SetEarlyClosure: repository error for vendor=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: SetEarlyClosure - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetEarlyClosure: successfully set early closure id=%d for vendor=%d", closure.ID, closure.VendorID)
	return models.FromDomainEarlyClosure(closure), nil
}

// validateVendorAccess проверяет, что актор управляет расписанием салона:
// салон - только своим, админ - любым
func (s *Service) validateVendorAccess(actor domain.Actor, vendorID int64) error {
	if vendorID <= 0 {
		return fmt.Errorf("%w: vendor_id must be positive", ErrInvalidInput)
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleVendor:
		if actor.ID == vendorID {
			return nil
		}
		s.logger.Warn("validateVendorAccess: vendor=%d has no access to vendor=%d", actor.ID, vendorID)
		return ErrAccessDenied
	default:
		s.logger.Warn("validateVendorAccess: %s=%d cannot manage vendor schedule", actor.Role, actor.ID)
		return ErrAccessDenied
	}
}
