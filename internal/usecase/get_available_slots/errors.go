package get_available_slots

import "errors"

var (
	// ErrVendorNotFound возвращается, когда салон не найден или недоступен для записи
	ErrVendorNotFound = errors.New("get_available_slots: vendor not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
