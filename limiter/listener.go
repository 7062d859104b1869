package limiter

// Listener receives a notification on every successful SetLimit call.
// Implementations decide what to do with it (audit log, metrics, nothing);
// the limiter itself stays silent.
type Listener interface {
	LimitUpdated(subject string, newLimit uint64, actor string)
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(subject string, newLimit uint64, actor string)

func (f ListenerFunc) LimitUpdated(subject string, newLimit uint64, actor string) {
	f(subject, newLimit, actor)
}
