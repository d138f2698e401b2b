package domain

// MinuteInterval полуоткрытый интервал [Start, End) в минутах от локальной полуночи
type MinuteInterval struct {
	Start int
	End   int
}

// IsEmpty возвращает true для вырожденного интервала
func (i MinuteInterval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
func (i MinuteInterval) Overlaps(other MinuteInterval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Clip обрезает интервал по границам window.
// Результат может быть вырожденным, если интервал целиком вне окна.
func (i MinuteInterval) Clip(window MinuteInterval) MinuteInterval {
	out := i
	if out.Start < window.Start {
		out.Start = window.Start
	}
	if out.End > window.End {
		out.End = window.End
	}
	return out
}
