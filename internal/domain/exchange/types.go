package exchange

// State is the lifecycle position of an exchange transaction. The only legal
// forward path is Requested → Accepted → MeetupScheduled →
// AwaitingMutualConfirmation → Completed; Cancelled is reachable from any
// non-terminal state.
type State string

const (
	StateRequested                 State = "requested"
	StateAccepted                  State = "accepted"
	StateMeetupScheduled           State = "meetup_scheduled"
	StateAwaitingMutualConfirmation State = "awaiting_mutual_confirmation"
	StateCompleted                 State = "completed"
	StateCancelled                 State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateRequested, StateAccepted, StateMeetupScheduled,
		StateAwaitingMutualConfirmation, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// ordinal orders the forward path so history checks can reject backward moves.
func (s State) ordinal() int {
	switch s {
	case StateRequested:
		return 0
	case StateAccepted:
		return 1
	case StateMeetupScheduled:
		return 2
	case StateAwaitingMutualConfirmation:
		return 3
	case StateCompleted:
		return 4
	default:
		return -1
	}
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSettled PaymentStatus = "settled"
	PaymentFailed  PaymentStatus = "failed"
)

func (p PaymentStatus) String() string {
	return string(p)
}
