package metrics

// Nop заглушка метрик для деплоя с выключенным Prometheus и для тестов
type Nop struct{}

// NewNop создает заглушку метрик
func NewNop() *Nop {
	return &Nop{}
}

func (*Nop) IncSlotsQuery()                {}
func (*Nop) IncDraftCreated(string)        {}
func (*Nop) IncAppointmentCreated()        {}
func (*Nop) IncSlotConflict()              {}
func (*Nop) IncOTPIssued(string)           {}
func (*Nop) IncOTPVerified(string, string) {}
