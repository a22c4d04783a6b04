package projection

// AttentionFlag is the visual pulse raised when someone calls for attention.
type AttentionFlag struct {
	raised bool
}

func NewAttentionFlag() *AttentionFlag {
	return &AttentionFlag{}
}

func (a *AttentionFlag) Raise() { a.raised = true }

func (a *AttentionFlag) Lower() { a.raised = false }

func (a *AttentionFlag) Raised() bool { return a.raised }
