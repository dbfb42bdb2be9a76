package get_available_slots

import (
	"github.com/Sangharshdeveloper/saloon-booking-management/internal/domain"
	"github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"
)

// timeRange интервал-кандидат [Start, End)
type timeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// generateTimeSlots генерирует последовательность слотов рабочего дня.
// Слоты идут от открытия с фиксированным шагом domain.SlotDurationMinutes
// до effectiveClose (раннее закрытие или обычное время закрытия).
//
// Правила:
//   - неполный последний слот отбрасывается (конец слота не может
//     выходить за effectiveClose);
//   - слот, начинающийся внутри перерыва [break_start, break_end),
//     пропускается целиком - он не возвращается даже как недоступный;
//   - результат отсортирован по возрастанию, без дубликатов.
//
// Последовательность пересчитывается заново при каждом вызове,
// состояние нигде не кэшируется.
func generateTimeSlots(schedule *domain.VendorSchedule, effectiveClose types.TimeString) ([]timeRange, error) {
	slots := make([]timeRange, 0)

	current := schedule.OpenTime
	for current.IsBefore(effectiveClose) {
		slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}

		// Конец слота перешел через полночь - день закончился
		if !slotEnd.IsAfter(current) {
			break
		}

		// Неполный слот в конце дня не возвращается
		if slotEnd.IsAfter(effectiveClose) {
			break
		}

		if !inBreakWindow(schedule, current) {
			slots = append(slots, timeRange{Start: current, End: slotEnd})
		}

		current = slotEnd
	}

	return slots, nil
}

// inBreakWindow проверяет, попадает ли начало слота в перерыв [start, end)
func inBreakWindow(schedule *domain.VendorSchedule, slotStart types.TimeString) bool {
	if !schedule.HasBreak() {
		return false
	}
	return !slotStart.IsBefore(*schedule.BreakStartTime) && slotStart.IsBefore(*schedule.BreakEndTime)
}

// annotateAvailability помечает каждый слот признаком доступности:
// слот доступен, пока количество пересекающихся строк услуг активных
// бронирований меньше вместимости салона
func annotateAvailability(ranges []timeRange, lines []domain.BookingServiceLine, maxConcurrent int) []Slot {
	result := make([]Slot, len(ranges))

	for i, r := range ranges {
		overlapping := domain.CountOverlapping(lines, r.Start, r.End)
		result[i] = Slot{
			StartTime:   r.Start,
			EndTime:     r.End,
			IsAvailable: overlapping < maxConcurrent,
		}
	}

	return result
}
