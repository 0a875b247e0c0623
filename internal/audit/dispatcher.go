package audit

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Event struct {
	TenantKey string
	Action    string
	Entity    string
	EntityID  string
	Metadata  any
}

// Auditor is what use cases depend on.
type Auditor interface {
	Dispatch(ev Event)
}

type sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	logger sink
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	return newDispatcher(logger, 100)
}

func newDispatcher(logger sink, size int) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			log.Error().Err(err).
				Str("contribuinte", ev.TenantKey).
				Str("action", ev.Action).
				Msg("audit write failed")
		}
	}
}

// Dispatch never blocks: with the queue full the event is dropped, audit
// must not break the API.
func (d *Dispatcher) Dispatch(ev Event) {
	defer func() {
		// Dispatch after Close
		if recover() != nil {
			log.Warn().Str("action", ev.Action).Msg("audit dispatcher closed, dropping event")
		}
	}()

	select {
	case d.queue <- ev:
	default:
		log.Warn().
			Str("contribuinte", ev.TenantKey).
			Str("action", ev.Action).
			Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until queued ones are written.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		close(d.queue)
	})
	<-d.done
}

// Nop discards events.
type Nop struct{}

func (Nop) Dispatch(Event) {}

var (
	_ Auditor = (*Dispatcher)(nil)
	_ Auditor = Nop{}
)
