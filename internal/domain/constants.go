package domain

import "time"

// Slot and booking policy constants
const (
	// SlotDurationMinutes фиксированная ширина отображаемого слота.
	// Длительность услуги от неё не зависит: услуга на 45 минут занимает
	// точный интервал, а не границы слотов.
	SlotDurationMinutes = 30

	// MinCancellationNotice минимальное время до начала записи,
	// после которого отмена запрещена
	MinCancellationNotice = time.Hour

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxHolidayReasonLength      = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающие вместимость салона.
// Используются при подсчёте пересечений слотов.
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses статусы, не занимающие вместимость
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
