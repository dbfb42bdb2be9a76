package create_booking

import "errors"

var (
	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("create_booking: invalid input")
	// ErrVendorNotFound - салон не найден или не принимает бронирования
	ErrVendorNotFound = errors.New("create_booking: vendor not found")
	// ErrVendorClosed - салон закрыт в выбранную дату (выходной)
	ErrVendorClosed = errors.New("create_booking: vendor closed on requested date")
	// ErrServiceNotAvailable - услуга недоступна у данного салона
	ErrServiceNotAvailable = errors.New("create_booking: service not available")
	// ErrOutsideWorkingHours - запрошенное время вне рабочих часов
	ErrOutsideWorkingHours = errors.New("create_booking: requested time outside working hours")
	// ErrSlotNotAvailable - запрошенный интервал полностью занят
	ErrSlotNotAvailable = errors.New("create_booking: slot not available")
	// ErrInternal - внутренняя ошибка
	ErrInternal = errors.New("create_booking: internal error")
)
