package pipeline

import (
	"errors"
	"sync"
)

// State is the lifecycle position of one operation class.
type State string

const (
	StateIdle    State = "idle"
	StateBusy    State = "busy"
	StateSettled State = "settled"
	StateFailed  State = "failed"
)

// Class names an independently tracked operation.
type Class string

const (
	ClassGenerate Class = "generate"
	ClassPublish  Class = "publish"
)

// ErrBusy is returned by Begin while an invocation of the same class is in flight.
var ErrBusy = errors.New("operation already in progress")

// ErrNotBusy is returned when a progress or terminal transition is applied to an idle machine.
var ErrNotBusy = errors.New("operation is not in progress")

// Machine tracks one operation class. Settled and Failed are transient: the machine is
// back to Idle as soon as the transition returns, and only the last outcome is remembered.
type Machine struct {
	class Class

	mu          sync.Mutex
	state       State
	phase       string
	agentID     string
	lastOutcome State
	runs        int
}

func NewMachine(class Class) *Machine {
	return &Machine{class: class, state: StateIdle}
}

func (m *Machine) Class() Class {
	return m.class
}

// Begin moves Idle to Busy and records the initial phase label and active agent.
func (m *Machine) Begin(phase, agentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateBusy {
		return ErrBusy
	}
	m.state = StateBusy
	m.phase = phase
	m.agentID = agentID
	m.runs++
	return nil
}

// SetPhase updates the progress label of the in-flight invocation.
func (m *Machine) SetPhase(phase string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateBusy {
		return ErrNotBusy
	}
	m.phase = phase
	return nil
}

// Settle records a successful outcome and returns to Idle.
func (m *Machine) Settle() error {
	return m.finish(StateSettled)
}

// Fail records a failed outcome and returns to Idle.
func (m *Machine) Fail() error {
	return m.finish(StateFailed)
}

func (m *Machine) finish(outcome State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateBusy {
		return ErrNotBusy
	}
	m.lastOutcome = outcome
	m.state = StateIdle
	m.phase = ""
	m.agentID = ""
	return nil
}

// Status is a consistent copy of the machine's fields.
type Status struct {
	Class       Class
	State       State
	Phase       string
	AgentID     string
	LastOutcome State
	Runs        int
}

func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		Class:       m.class,
		State:       m.state,
		Phase:       m.phase,
		AgentID:     m.agentID,
		LastOutcome: m.lastOutcome,
		Runs:        m.runs,
	}
}

func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateBusy
}
