package main

import "log"

// Event category
type EventKind int

const (
	EVENT_REGIME   EventKind = iota + 1 // regime transition (alpha crossed a boundary)
	EVENT_BUBBLE                        // bubble-formation phase transition
	EVENT_STALL                         // bubble phase exceeded its expected time bound
	EVENT_OVERRIDE                      // boundary-flow safety override engaged/released
	EVENT_DRIFT                         // ledger reconciliation warning or alarm
	EVENT_REBASE                        // one-shot ledger rebaseline executed
	EVENT_DEGRADED                      // solve failed to converge; state held
)

func (k EventKind) String() string {
	switch k {
	case EVENT_REGIME:
		return "regime"
	case EVENT_BUBBLE:
		return "bubble"
	case EVENT_STALL:
		return "stall"
	case EVENT_OVERRIDE:
		return "override"
	case EVENT_DRIFT:
		return "drift"
	case EVENT_REBASE:
		return "rebase"
	case EVENT_DEGRADED:
		return "degraded"
	default:
		panic("invalid event kind")
	}
}

type Event struct {
	Step    int       // timestep index at which the event fired
	Time_s  float64   // simulated time, s
	Kind    EventKind //
	Old     string    // prior value
	New     string    // new value
	Trigger string    // condition that fired the transition
}

// Collects events for external readers and mirrors them to the log.
type EventLog struct {
	events []Event
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (el *EventLog) emit(ev Event) {
	el.events = append(el.events, ev)
	log.Printf("[%s] step=%d t=%.1fs %s -> %s (%s)", ev.Kind, ev.Step, ev.Time_s, ev.Old, ev.New, ev.Trigger)
}

func (el *EventLog) all() []Event {
	return el.events
}

// Events of one kind, in emission order.
func (el *EventLog) of_kind(k EventKind) []Event {
	var out []Event
	for _, ev := range el.events {
		if ev.Kind == k {
			out = append(out, ev)
		}
	}
	return out
}
