// Package limiter bounds the net volume of flow in or out of a subject
// within fixed, time-aligned epochs.
//
// The enforced rule is a net cap, not a gross cap: within one epoch, inflow
// earns back outflow capacity and vice versa. With limit L the invariant is
//
//	|outflow - inflow| <= L
//
// for the current epoch's counters. Crossing an epoch boundary starts both
// counters at zero; unused capacity is not carried over. A limit of 0 means
// the subject is unmanaged and every call is admitted without accounting.
package limiter

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codetesla51/flowlimit/store"
)

type FlowLimiter struct {
	EpochLength time.Duration
	store       store.Store
	clock       clockwork.Clock
	listener    Listener

	// mu guards locks; each subject gets its own mutex so subjects never
	// contend with each other.
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

var _ Limiter = (*FlowLimiter)(nil)

type Option func(*FlowLimiter)

// WithClock replaces the wall clock, letting tests drive epoch transitions.
func WithClock(c clockwork.Clock) Option {
	return func(fl *FlowLimiter) { fl.clock = c }
}

// WithListener installs the limit-change notification hook.
func WithListener(l Listener) Option {
	return func(fl *FlowLimiter) { fl.listener = l }
}

func NewFlowLimiter(epochLength time.Duration, s store.Store, opts ...Option) *FlowLimiter {
	if epochLength <= 0 {
		panic("epochLength must be greater than 0")
	}
	fl := &FlowLimiter{
		EpochLength: epochLength,
		store:       s,
		clock:       clockwork.NewRealClock(),
		locks:       make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(fl)
	}
	return fl
}

// RecordOutflow admits amount of outbound flow for subject, or returns a
// *LimitExceededError without mutating anything. The check is against the
// net position: outflow may exceed the limit by however much inflow the
// epoch has already seen.
func (fl *FlowLimiter) RecordOutflow(subject string, amount uint64) error {
	mu := fl.lockFor(subject)
	mu.Lock()
	defer mu.Unlock()

	st, err := fl.load(subject)
	if err != nil {
		return err
	}
	if st.Limit == 0 {
		return nil
	}
	fl.rollEpoch(&st)

	allowance := saturatingAdd(st.Inflow, st.Limit)
	candidate, ok := checkedAdd(st.Outflow, amount)
	if !ok || candidate > allowance {
		return &LimitExceededError{
			Subject:   subject,
			Attempted: amount,
			Available: headroom(allowance, st.Outflow),
		}
	}

	st.Outflow = candidate
	return fl.store.Set(subject, st)
}

// RecordInflow is the mirror of RecordOutflow: inbound flow is admitted
// while it stays within outflow + limit.
func (fl *FlowLimiter) RecordInflow(subject string, amount uint64) error {
	mu := fl.lockFor(subject)
	mu.Lock()
	defer mu.Unlock()

	st, err := fl.load(subject)
	if err != nil {
		return err
	}
	if st.Limit == 0 {
		return nil
	}
	fl.rollEpoch(&st)

	allowance := saturatingAdd(st.Outflow, st.Limit)
	candidate, ok := checkedAdd(st.Inflow, amount)
	if !ok || candidate > allowance {
		return &LimitExceededError{
			Subject:   subject,
			Attempted: amount,
			Available: headroom(allowance, st.Inflow),
		}
	}

	st.Inflow = candidate
	return fl.store.Set(subject, st)
}

// SetLimit replaces the configured limit for subject, effective for the
// next admission check. Counters already recorded this epoch stay as they
// are. Authorization is the caller's job; actor is carried through to the
// listener for auditing.
func (fl *FlowLimiter) SetLimit(subject string, newLimit uint64, actor string) error {
	mu := fl.lockFor(subject)
	mu.Lock()
	defer mu.Unlock()

	st, err := fl.load(subject)
	if err != nil {
		return err
	}
	st.Limit = newLimit
	if err := fl.store.Set(subject, st); err != nil {
		return err
	}

	if fl.listener != nil {
		fl.listener.LimitUpdated(subject, newLimit, actor)
	}
	return nil
}

// Limit returns the configured limit for subject, 0 if never set.
func (fl *FlowLimiter) Limit(subject string) (uint64, error) {
	st, err := fl.load(subject)
	if err != nil {
		return 0, err
	}
	return st.Limit, nil
}

// Outflow returns the outflow recorded in the current epoch.
func (fl *FlowLimiter) Outflow(subject string) (uint64, error) {
	st, err := fl.load(subject)
	if err != nil {
		return 0, err
	}
	if st.Epoch != fl.currentEpoch() {
		return 0, nil
	}
	return st.Outflow, nil
}

// Inflow returns the inflow recorded in the current epoch.
func (fl *FlowLimiter) Inflow(subject string) (uint64, error) {
	st, err := fl.load(subject)
	if err != nil {
		return 0, err
	}
	if st.Epoch != fl.currentEpoch() {
		return 0, nil
	}
	return st.Inflow, nil
}

// Reset zeroes the subject's counters for the current epoch without
// touching the configured limit.
func (fl *FlowLimiter) Reset(subject string) error {
	mu := fl.lockFor(subject)
	mu.Lock()
	defer mu.Unlock()

	st, err := fl.store.Get(subject)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no flow state for subject %s", subject)
	}
	if err != nil {
		return err
	}
	st.Outflow = 0
	st.Inflow = 0
	return fl.store.Set(subject, st)
}

// currentEpoch derives the epoch index from wall-clock time. The division
// is in nanoseconds so any positive epoch length works, including
// sub-second ones. Indices only ever grow, so a stored record with a
// different index is always stale.
func (fl *FlowLimiter) currentEpoch() int64 {
	return fl.clock.Now().UnixNano() / int64(fl.EpochLength)
}

// rollEpoch resets counters in place when the stored epoch is stale. No
// rollover event exists; staleness is discovered on the next operation.
func (fl *FlowLimiter) rollEpoch(st *store.State) {
	e := fl.currentEpoch()
	if st.Epoch != e {
		st.Epoch = e
		st.Outflow = 0
		st.Inflow = 0
	}
}

// load treats an absent record as the zero state (limit 0, unmanaged).
func (fl *FlowLimiter) load(subject string) (store.State, error) {
	st, err := fl.store.Get(subject)
	if errors.Is(err, store.ErrNotFound) {
		return store.State{}, nil
	}
	return st, err
}

// lockFor hands out the per-subject mutex, creating it on first use.
func (fl *FlowLimiter) lockFor(subject string) *sync.Mutex {
	fl.mu.RLock()
	mu, ok := fl.locks[subject]
	fl.mu.RUnlock()

	if !ok {
		fl.mu.Lock()
		mu, ok = fl.locks[subject]
		if !ok {
			mu = &sync.Mutex{}
			fl.locks[subject] = mu
		}
		fl.mu.Unlock()
	}

	return mu
}

func checkedAdd(a, b uint64) (uint64, bool) {
	sum := a + b
	return sum, sum >= a
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

// headroom is allowance - used, clamped at zero: lowering a limit mid-epoch
// can leave used counters above the new allowance.
func headroom(allowance, used uint64) uint64 {
	if allowance <= used {
		return 0
	}
	return allowance - used
}
