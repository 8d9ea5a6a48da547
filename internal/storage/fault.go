package storage

import (
	"math/rand"
	"sync"
)

// Injector decides, per call, whether a simulated fault fires. It is a
// separate collaborator of the remote store so tests can replay exact failure
// sequences instead of depending on ambient randomness.
type Injector interface {
	Next(op string) *Error
}

type randomInjector struct {
	mu   sync.Mutex
	rng  *rand.Rand
	rate float64
}

// NewRandomInjector injects timeout failures at the given rate. The sequence
// is fully determined by the seed.
func NewRandomInjector(seed int64, rate float64) Injector {
	return &randomInjector{
		rng:  rand.New(rand.NewSource(seed)),
		rate: rate,
	}
}

func (i *randomInjector) Next(op string) *Error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.rate > 0 && i.rng.Float64() < i.rate {
		return newError(ErrKindTimeout, op, KindRemote, "", nil)
	}

	return nil
}

type scheduleInjector struct {
	mu     sync.Mutex
	faults []*Error
}

// NewScheduleInjector replays the given faults in order, one per call; nil
// entries mean the call succeeds. After the schedule is exhausted every call
// succeeds.
func NewScheduleInjector(faults ...*Error) Injector {
	return &scheduleInjector{faults: faults}
}

func (i *scheduleInjector) Next(op string) *Error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if len(i.faults) == 0 {
		return nil
	}

	fault := i.faults[0]
	i.faults = i.faults[1:]

	if fault == nil {
		return nil
	}

	injected := *fault
	injected.Op = op

	return &injected
}

// NoFaults never injects.
func NoFaults() Injector {
	return NewScheduleInjector()
}

// TimeoutFault builds a timeout error suitable for a schedule injector.
func TimeoutFault() *Error {
	return newError(ErrKindTimeout, "", KindRemote, "", nil)
}
