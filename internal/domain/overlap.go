package domain

import "github.com/Sangharshdeveloper/saloon-booking-management/pkg/types"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint
// do not overlap:
//
//	[11:00, 11:30) и [11:30, 12:00) → не пересекаются (граничат)
//	[11:20, 11:40) и [11:30, 12:00) → пересекаются (11:30–11:40)
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}

// CountOverlapping подсчитывает строки услуг, пересекающие интервал
// [start, end). Единственный источник истины "занято ли это время":
// используется и для отображения слотов, и для решающей проверки
// внутри транзакции создания бронирования. Строки неактивных
// бронирований фильтруются на уровне репозитория.
func CountOverlapping(lines []BookingServiceLine, start, end types.TimeString) int {
	count := 0
	for _, line := range lines {
		if Overlaps(line.StartTime, line.EndTime, start, end) {
			count++
		}
	}
	return count
}
