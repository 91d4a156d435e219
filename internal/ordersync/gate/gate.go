package gate

import "strings"

type State string

const (
	StateIdle                 State = "IDLE"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
)

type MutationKind string

const (
	KindCreate MutationKind = "CREATE"
	KindEdit   MutationKind = "EDIT"
)

// Mutation is the staged change awaiting operator confirmation. It exists
// only between the commit request and its confirmation or cancellation.
type Mutation struct {
	Kind          MutationKind
	TargetOrderID string
	Message       string
}

// Gate is the confirmation checkpoint between a staged local mutation and
// its durable persistence. It admits exactly one pending mutation at a time;
// commit requests arriving while one is pending are rejected (ignored), and
// the caller retries after the gate returns to idle. Not safe for concurrent
// use on its own: the synchronization controller is its single writer.
type Gate struct {
	state   State
	pending Mutation
}

func New() *Gate {
	return &Gate{state: StateIdle}
}

func (g *Gate) State() State {
	return g.state
}

func (g *Gate) Pending() (Mutation, bool) {
	if g.state != StateAwaitingConfirmation {
		return Mutation{}, false
	}
	return g.pending, true
}

// RequestEdit stages an edit commit for confirmation. A no-op edit (message
// unchanged from the hydrated value) still surfaces a confirmation; the gate
// does not compare against the remote value.
func (g *Gate) RequestEdit(orderID, message string) bool {
	if g.state != StateIdle {
		return false
	}
	g.pending = Mutation{Kind: KindEdit, TargetOrderID: orderID, Message: message}
	g.state = StateAwaitingConfirmation
	return true
}

// RequestCreate stages a create commit for confirmation. Empty or
// whitespace-only messages are rejected silently and the gate stays idle.
func (g *Gate) RequestCreate(message string) bool {
	if g.state != StateIdle {
		return false
	}
	if strings.TrimSpace(message) == "" {
		return false
	}
	g.pending = Mutation{Kind: KindCreate, Message: message}
	g.state = StateAwaitingConfirmation
	return true
}

// Confirm hands the pending mutation to the caller for dispatch and returns
// the gate to idle.
func (g *Gate) Confirm() (Mutation, bool) {
	if g.state != StateAwaitingConfirmation {
		return Mutation{}, false
	}
	m := g.pending
	g.reset()
	return m, true
}

// Cancel discards the pending mutation without any network effect.
func (g *Gate) Cancel() {
	g.reset()
}

func (g *Gate) reset() {
	g.pending = Mutation{}
	g.state = StateIdle
}
