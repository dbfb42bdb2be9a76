package schedule

import "errors"

var (
	// ErrVendorNotFound возвращается, когда салон не найден
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrHolidayNotFound возвращается, когда выходной на дату не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrHolidayAlreadyExists возвращается при повторном объявлении выходного
	ErrHolidayAlreadyExists = errors.New("holiday already exists")

	// ErrAccessDenied возвращается, когда у актора нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidCloseTime возвращается, когда раннее закрытие не раньше обычного
	ErrInvalidCloseTime = errors.New("early close time must be before regular close time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
