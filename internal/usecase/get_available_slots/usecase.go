package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	vendorRepo "github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
)

// UseCase use case получения слотов салона на дату
type UseCase struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
}

// Execute выполняет use case получения слотов.
// Результат рекомендательный: между просмотром слотов и созданием
// бронирования занятость может измениться, решающая проверка
// выполняется в транзакции создания бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: vendor=%d, date=%s", req.VendorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем расписание салона (неактивный салон = нет слотов)
	schedule, err := uc.vendorRepo.GetSchedule(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			uc.logger.Warn("GetAvailableSlots: vendor id=%d not found", req.VendorID)
			return nil, ErrVendorNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 3. Выходной день: слоты не генерируются вообще
	holiday, err := uc.vendorRepo.GetHoliday(ctx, req.VendorID, req.Date)
	if err != nil && !errors.Is(err, vendorRepo.ErrHolidayNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get holiday for vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get holiday: %v", ErrInternal, err)
	}
	if holiday != nil {
		uc.logger.Info("GetAvailableSlots: vendor=%d has holiday on %s", req.VendorID, req.Date.Format(domain.DateFormat))
		return &Response{
			VendorID:      req.VendorID,
			Date:          req.Date,
			IsHoliday:     true,
			HolidayReason: holiday.Reason,
			Slots:         []Slot{},
		}, nil
	}

	// 4. Эффективное время закрытия с учетом раннего закрытия
	effectiveClose := schedule.CloseTime
	var closureInfo *EarlyClosureInfo

	closure, err := uc.vendorRepo.GetEarlyClosure(ctx, req.VendorID, req.Date)
	if err != nil && !errors.Is(err, vendorRepo.ErrEarlyClosureNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get early closure for vendor id=%d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to get early closure: %v", ErrInternal, err)
	}
	if closure != nil {
		effectiveClose = closure.EarlyCloseTime
		closureInfo = &EarlyClosureInfo{
			ClosesAt: closure.EarlyCloseTime,
			Reason:   closure.Reason,
		}
		uc.logger.Info("GetAvailableSlots: vendor=%d closes early at %s on %s",
			req.VendorID, closure.EarlyCloseTime, req.Date.Format(domain.DateFormat))
	}

	// 5. Генерируем слоты рабочего дня
	ranges, err := generateTimeSlots(schedule, effectiveClose)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 6. Получаем строки услуг активных бронирований на дату
	lines, err := uc.bookingRepo.GetActiveLinesForDate(ctx, req.VendorID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booking lines: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking lines: %v", ErrInternal, err)
	}

	// 7. Помечаем доступность каждого слота по вместимости
	slots := annotateAvailability(ranges, lines, schedule.MaxConcurrent())

	uc.logger.Info("GetAvailableSlots: generated %d slots for vendor=%d, date=%s",
		len(slots), req.VendorID, req.Date.Format(domain.DateFormat))

	return &Response{
		VendorID:     req.VendorID,
		Date:         req.Date,
		EarlyClosure: closureInfo,
		Slots:        slots,
	}, nil
}
