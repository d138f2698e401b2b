package get_free_slots

import (
	"time"

	"github.com/aknyshev/salon-booking-engine/internal/domain"
)

// dayRange границы локального календарного дня
type dayRange struct {
	// Start UTC-инстант локальной полуночи, End = Start + 24h
	Start time.Time
	End   time.Time
	// Date локальная дата с нулевым временем (ключ для time_off)
	Date time.Time
	// Weekday 0 = воскресенье ... 6 = суббота
	Weekday int
}

// resolveDayRange преобразует локальную дату и таймзону в UTC диапазон дня.
// Смещение зоны вычисляется один раз в кандидате UTC-полуночи; этого
// достаточно для перехода на летнее/зимнее время, так как сам переход
// никогда не попадает на полночь. Некорректная дата или таймзона дают
// ok == false: запрос доступности деградирует в пустой список.
func resolveDayRange(date, timezone string) (dayRange, bool) {
	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return dayRange{}, false
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return dayRange{}, false
	}

	year, month, day := parsed.Date()
	candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	_, offset := candidate.In(loc).Zone()

	start := candidate.Add(-time.Duration(offset) * time.Second)

	return dayRange{
		Start:   start,
		End:     start.Add(24 * time.Hour),
		Date:    candidate,
		Weekday: int(parsed.Weekday()),
	}, true
}
