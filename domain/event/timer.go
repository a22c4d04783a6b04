package event

type TimerKind string

const (
	StopNoticeTimer     TimerKind = "stopNotice"
	TypingClearTimer    TimerKind = "typingClear"
	AttentionDecayTimer TimerKind = "attentionDecay"
)

// TimerExpired is posted by a timer callback. Generation identifies the
// arming of the timer, a superseded arming is ignored by its owner.
type TimerExpired struct {
	Timer      TimerKind
	Generation uint64
}

func (TimerExpired) Kind() string { return "timerExpired" }
