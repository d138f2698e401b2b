package get_free_slots

import (
	"sort"
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// buildBusyIntervals собирает занятые интервалы дня в минутах от локальной
// полуночи: блокирующие записи (с продлением конца на буфер) и исключения
// расписания. Каждый интервал обрезается по рабочему окну, пустые
// отбрасываются, результат отсортирован по началу.
//
// Список — консервативное надмножество реальной занятости: запись,
// пересекающая границу дня, дает обрезанный по окну интервал.
func buildBusyIntervals(
	day dayRange,
	window domain.MinuteInterval,
	appointments []*domain.Appointment,
	timeOff []*domain.TimeOff,
	bufferMinutes int,
) []domain.MinuteInterval {
	busy := make([]domain.MinuteInterval, 0, len(appointments)+len(timeOff))

	for _, appt := range appointments {
		interval := domain.MinuteInterval{
			Start: minutesFromMidnight(day, appt.StartAt),
			End:   minutesFromMidnight(day, appt.EndAt) + bufferMinutes,
		}
		interval = interval.Clip(window)
		if !interval.IsEmpty() {
			busy = append(busy, interval)
		}
	}

	for _, off := range timeOff {
		interval := off.Interval().Clip(window)
		if !interval.IsEmpty() {
			busy = append(busy, interval)
		}
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start < busy[j].Start
	})

	return busy
}

// minutesFromMidnight переводит UTC-инстант в минуты от локальной полуночи дня
func minutesFromMidnight(day dayRange, t time.Time) int {
	return int(t.Sub(day.Start) / time.Minute)
}
