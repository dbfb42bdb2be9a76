package get_available_slots

import (
	"time"

	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// Request модель запроса на получение слотов салона
type Request struct {
	VendorID int64     // ID салона
	Date     time.Time // Дата (без времени)
}

// Response модель ответа со слотами на день
type Response struct {
	VendorID int64     // ID салона
	Date     time.Time // Дата, на которую запрашивались слоты

	// IsHoliday признак выходного дня: слоты не генерируются вообще
	IsHoliday     bool
	HolidayReason *string

	// EarlyClosure информация о раннем закрытии, если установлено
	EarlyClosure *EarlyClosureInfo

	Slots []Slot // Список слотов, пустой в выходной день
}

// EarlyClosureInfo информация о раннем закрытии салона
type EarlyClosureInfo struct {
	ClosesAt types.TimeString
	Reason   *string
}

// Slot временной слот с признаком доступности.
// Доступность носит рекомендательный характер: решающая проверка
// выполняется в транзакции при создании бронирования.
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
