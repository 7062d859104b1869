package limiter

// Limiter admits or rejects flow against a per-subject net limit.
type Limiter interface {
	RecordOutflow(subject string, amount uint64) error
	RecordInflow(subject string, amount uint64) error
	SetLimit(subject string, newLimit uint64, actor string) error
	Limit(subject string) (uint64, error)
	Outflow(subject string) (uint64, error)
	Inflow(subject string) (uint64, error)
	Reset(subject string) error
}
