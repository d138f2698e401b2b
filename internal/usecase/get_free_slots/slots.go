package get_free_slots

import (
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// generateSlots дискретизирует рабочее окно на кандидатов с шагом step
// и отбрасывает пересекающиеся с занятыми интервалами.
// Кандидат [t, t+duration) принимается, только если целиком помещается
// в окно. Занятые интервалы должны быть отсортированы по началу —
// фильтрация идет одним линейным проходом.
//
// Чистая функция своих аргументов: результат не кэшируется и всегда
// отражает переданное состояние занятости.
func generateSlots(
	day dayRange,
	window domain.MinuteInterval,
	durationMinutes, stepMinutes int,
	busy []domain.MinuteInterval,
) []Slot {
	slots := make([]Slot, 0)
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return slots
	}

	busyIdx := 0
	for start := window.Start; start+durationMinutes <= window.End; start += stepMinutes {
		candidate := domain.MinuteInterval{Start: start, End: start + durationMinutes}

		// Интервалы левее кандидата больше никого не исключат
		for busyIdx < len(busy) && busy[busyIdx].End <= candidate.Start {
			busyIdx++
		}

		conflict := false
		for i := busyIdx; i < len(busy) && busy[i].Start < candidate.End; i++ {
			if candidate.Overlaps(busy[i]) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, Slot{
				StartAt: day.Start.Add(time.Duration(candidate.Start) * time.Minute),
				EndAt:   day.Start.Add(time.Duration(candidate.End) * time.Minute),
			})
		}
	}

	return slots
}
