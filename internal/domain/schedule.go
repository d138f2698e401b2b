package domain

import "time"

// WorkingHours график работы салона на день недели
// Weekday: 0 = воскресенье ... 6 = суббота
type WorkingHours struct {
	ID           int64
	Weekday      int
	IsClosed     bool
	StartMinutes int // минуты от локальной полуночи
	EndMinutes   int
}

// Window возвращает базовое рабочее окно дня, ограниченное сутками
func (w *WorkingHours) Window() MinuteInterval {
	start := w.StartMinutes
	end := w.EndMinutes
	if start < 0 {
		start = 0
	}
	if end > MinutesPerDay {
		end = MinutesPerDay
	}
	if end < start {
		end = start
	}
	return MinuteInterval{Start: start, End: end}
}

// MasterWorkingHours персональный график мастера на день недели.
// При наличии строки для (master, weekday) полностью заменяет общий график
// салона — без слияния.
type MasterWorkingHours struct {
	ID           int64
	MasterID     int64
	Weekday      int
	IsClosed     bool
	StartMinutes int
	EndMinutes   int
}

// Window возвращает базовое рабочее окно мастера, ограниченное сутками
func (w *MasterWorkingHours) Window() MinuteInterval {
	wh := WorkingHours{StartMinutes: w.StartMinutes, EndMinutes: w.EndMinutes}
	return wh.Window()
}

// TimeOff исключение внутри рабочего дня: перерыв, выходной, отгул.
// MasterID == nil означает общесалонное исключение.
type TimeOff struct {
	ID           int64
	MasterID     *int64
	Date         time.Time // дата без времени
	StartMinutes int
	EndMinutes   int
	Reason       *string
}

// Interval возвращает интервал исключения в минутах от полуночи
func (t *TimeOff) Interval() MinuteInterval {
	return MinuteInterval{Start: t.StartMinutes, End: t.EndMinutes}
}
