package domain

// Phase is the lifecycle of a conversation session.
// Uninitialized -> AwaitingHistory -> Live, Live is terminal.
type Phase int

const (
	Uninitialized Phase = iota
	AwaitingHistory
	Live
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "UNINITIALIZED"
	case AwaitingHistory:
		return "AWAITING_HISTORY"
	case Live:
		return "LIVE"
	default:
		return "UNKNOWN"
	}
}
