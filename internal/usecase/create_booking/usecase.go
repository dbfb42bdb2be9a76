package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/infra/storage/vendor"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/txmanager"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// UseCase создание бронирования (онлайн и офлайн)
type UseCase struct {
	bookingRepo  BookingRepository
	vendorRepo   VendorRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр UseCase
func NewUseCase(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		vendorRepo:   vendorRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute создает бронирование с проверкой доступности запрошенных интервалов.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции,
// чтобы два конкурентных запроса не заняли последнее место одновременно.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Получаем расписание салона
	schedule, err := uc.vendorRepo.GetSchedule(ctx, req.VendorID)
	if err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			return nil, fmt.Errorf("%w: vendor %d", ErrVendorNotFound, req.VendorID)
		}
		uc.logger.Error("create_booking: Execute - failed to get schedule for vendor %d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 3. Проверяем, не выходной ли у салона в выбранную дату
	holiday, err := uc.vendorRepo.GetHoliday(ctx, req.VendorID, req.Date)
	if err != nil && !errors.Is(err, vendor.ErrHolidayNotFound) {
		uc.logger.Error("create_booking: Execute - failed to check holiday for vendor %d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if holiday != nil {
		return nil, fmt.Errorf("%w: vendor %d is closed on %s", ErrVendorClosed, req.VendorID, req.Date.Format(domain.DateFormat))
	}

	// 4. Учитываем раннее закрытие салона
	effectiveClose := schedule.CloseTime
	closure, err := uc.vendorRepo.GetEarlyClosure(ctx, req.VendorID, req.Date)
	if err != nil && !errors.Is(err, vendor.ErrEarlyClosureNotFound) {
		uc.logger.Error("create_booking: Execute - failed to check early closure for vendor %d: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if closure != nil {
		effectiveClose = closure.EarlyCloseTime
	}

	// 5. Разрешаем услуги и строим строки бронирования со снапшотом цены и длительности
	lines, total, err := uc.resolveLines(ctx, req, schedule, effectiveClose)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		VendorID:      req.VendorID,
		CustomerID:    req.CustomerID,
		BookingDate:   req.Date,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: paymentStatus(req),
		Status:        domain.StatusConfirmed,
		Type:          req.BookingType,
		Notes:         buildNotes(req),
		Lines:         lines,
	}

	// 6. Проверяем занятость и создаем бронирование в одной транзакции
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Ошибки репозитория внутри транзакции оборачиваются через %w:
		// менеджер транзакций распознает конфликт сериализации по цепочке
		// Строки активных бронирований читаются с блокировкой (FOR UPDATE)
		active, err := uc.bookingRepo.GetActiveLinesForDate(txCtx, req.VendorID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		maxConcurrent := schedule.MaxConcurrent()
		for _, line := range booking.Lines {
			occupied := domain.CountOverlapping(active, line.StartTime, line.EndTime)
			if occupied >= maxConcurrent {
				return fmt.Errorf("%w: %s-%s is fully booked", ErrSlotNotAvailable, line.StartTime, line.EndTime)
			}
		}

		created, err = uc.bookingRepo.CreateWithLines(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		// Конфликт сериализации означает гонку за один и тот же интервал
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("create_booking: Execute - serialization conflict for vendor %d on %s", req.VendorID, req.Date.Format(domain.DateFormat))
			return nil, fmt.Errorf("%w: concurrent booking detected", ErrSlotNotAvailable)
		}
		return nil, err
	}

	uc.logger.Info("create_booking: Execute - booking %d created for vendor %d on %s (%d services, total %.2f)",
		created.ID, created.VendorID, created.BookingDate.Format(domain.DateFormat), len(created.Lines), created.TotalAmount)

	return buildResponse(created), nil
}

// resolveLines разрешает запрошенные услуги в строки бронирования и считает итог
func (uc *UseCase) resolveLines(ctx context.Context, req Request, schedule *domain.VendorSchedule, effectiveClose types.TimeString) ([]domain.BookingServiceLine, float64, error) {
	lines := make([]domain.BookingServiceLine, 0, len(req.Services))
	var total float64

	for _, svc := range req.Services {
		offering, err := uc.vendorRepo.GetOffering(ctx, req.VendorID, svc.ServiceID)
		if err != nil {
			if errors.Is(err, vendor.ErrOfferingNotFound) {
				return nil, 0, fmt.Errorf("%w: service %d", ErrServiceNotAvailable, svc.ServiceID)
			}
			uc.logger.Error("create_booking: resolveLines - failed to get offering %d/%d: %v", req.VendorID, svc.ServiceID, err)
			return nil, 0, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		endTime, err := svc.StartTime.AddMinutes(offering.DurationMinutes)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: services: %v", ErrInvalidInput, err)
		}

		// Услуга, переходящая через полночь, не помещается в рабочий день
		if !endTime.IsAfter(svc.StartTime) {
			return nil, 0, fmt.Errorf("%w: %s + %d min crosses midnight", ErrOutsideWorkingHours, svc.StartTime, offering.DurationMinutes)
		}

		// Интервал услуги должен целиком помещаться в рабочие часы
		if svc.StartTime.IsBefore(schedule.OpenTime) || endTime.IsAfter(effectiveClose) {
			return nil, 0, fmt.Errorf("%w: %s-%s is outside %s-%s", ErrOutsideWorkingHours, svc.StartTime, endTime, schedule.OpenTime, effectiveClose)
		}

		// Начало услуги не должно попадать в перерыв
		if schedule.HasBreak() && !svc.StartTime.IsBefore(*schedule.BreakStartTime) && svc.StartTime.IsBefore(*schedule.BreakEndTime) {
			return nil, 0, fmt.Errorf("%w: %s falls within the break %s-%s", ErrOutsideWorkingHours, svc.StartTime, *schedule.BreakStartTime, *schedule.BreakEndTime)
		}

		lines = append(lines, domain.BookingServiceLine{
			ServiceID:       offering.ServiceID,
			ServiceName:     offering.ServiceName,
			ServicePrice:    offering.Price,
			StartTime:       svc.StartTime,
			EndTime:         endTime,
			DurationMinutes: offering.DurationMinutes,
		})
		total += offering.Price
	}

	return lines, total, nil
}

// paymentStatus определяет статус оплаты: онлайн наличными - ожидает оплаты
// на месте, все остальное считается оплаченным при создании.
func paymentStatus(req Request) domain.PaymentStatus {
	if req.BookingType == domain.BookingTypeOnline && req.PaymentMethod == domain.PaymentMethodCash {
		return domain.PaymentPending
	}
	return domain.PaymentCompleted
}

// buildNotes собирает заметки бронирования; для офлайн-записи данные
// незарегистрированного клиента сохраняются в заметках.
func buildNotes(req Request) *string {
	parts := make([]string, 0, 2)
	if req.CustomerID == nil && req.CustomerName != nil {
		contact := *req.CustomerName
		if req.CustomerPhone != nil {
			contact = fmt.Sprintf("%s (%s)", contact, *req.CustomerPhone)
		}
		parts = append(parts, "Walk-in: "+contact)
	}
	if req.Notes != nil && *req.Notes != "" {
		parts = append(parts, *req.Notes)
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " | ")
	return &joined
}

func buildResponse(b *domain.Booking) *Response {
	resp := &Response{
		BookingID:     b.ID,
		VendorID:      b.VendorID,
		CustomerID:    b.CustomerID,
		BookingDate:   b.BookingDate,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: b.PaymentMethod,
		PaymentStatus: b.PaymentStatus,
		Status:        b.Status,
		BookingType:   b.Type,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		Services:      make([]ServiceLine, 0, len(b.Lines)),
	}
	for _, line := range b.Lines {
		resp.Services = append(resp.Services, ServiceLine{
			ServiceID:       line.ServiceID,
			ServiceName:     line.ServiceName,
			ServicePrice:    line.ServicePrice,
			StartTime:       line.StartTime,
			EndTime:         line.EndTime,
			DurationMinutes: line.DurationMinutes,
		})
	}
	return resp
}
