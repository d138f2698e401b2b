package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinuteInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     MinuteInterval
		overlaps bool
	}{
		{
			name:     "частичное пересечение",
			a:        MinuteInterval{Start: 590, End: 620},
			b:        MinuteInterval{Start: 600, End: 630},
			overlaps: true,
		},
		{
			name:     "вложенный интервал",
			a:        MinuteInterval{Start: 540, End: 1080},
			b:        MinuteInterval{Start: 600, End: 630},
			overlaps: true,
		},
		{
			name:     "граничащие интервалы не пересекаются",
			a:        MinuteInterval{Start: 540, End: 600},
			b:        MinuteInterval{Start: 600, End: 630},
			overlaps: false,
		},
		{
			name:     "граничащие интервалы в обратном порядке",
			a:        MinuteInterval{Start: 600, End: 630},
			b:        MinuteInterval{Start: 540, End: 600},
			overlaps: false,
		},
		{
			name:     "непересекающиеся интервалы",
			a:        MinuteInterval{Start: 540, End: 570},
			b:        MinuteInterval{Start: 600, End: 630},
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a), "пересечение симметрично")
		})
	}
}

func TestMinuteInterval_Clip(t *testing.T) {
	window := MinuteInterval{Start: 540, End: 1080}

	tests := []struct {
		name     string
		in       MinuteInterval
		expected MinuteInterval
		empty    bool
	}{
		{
			name:     "внутри окна",
			in:       MinuteInterval{Start: 600, End: 660},
			expected: MinuteInterval{Start: 600, End: 660},
		},
		{
			name:     "выступает слева",
			in:       MinuteInterval{Start: 480, End: 600},
			expected: MinuteInterval{Start: 540, End: 600},
		},
		{
			name:     "выступает справа",
			in:       MinuteInterval{Start: 1050, End: 1200},
			expected: MinuteInterval{Start: 1050, End: 1080},
		},
		{
			name:  "целиком вне окна",
			in:    MinuteInterval{Start: 0, End: 480},
			empty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clip(window)
			if tt.empty {
				assert.True(t, got.IsEmpty())
				return
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWorkingHours_Window(t *testing.T) {
	t.Run("окно обрезается по границам суток", func(t *testing.T) {
		wh := WorkingHours{StartMinutes: -30, EndMinutes: 2000}
		assert.Equal(t, MinuteInterval{Start: 0, End: MinutesPerDay}, wh.Window())
	})

	t.Run("перевернутое окно схлопывается в пустое", func(t *testing.T) {
		wh := WorkingHours{StartMinutes: 600, EndMinutes: 540}
		assert.True(t, wh.Window().IsEmpty())
	})
}
