package projection

import "fmt"

const typingFormat = "%s is typing..."

// TypingIndicator is the single "who is typing" line.
// The latest event wins: there is no per-author tracking.
type TypingIndicator struct {
	status string
	author string
}

func NewTypingIndicator() *TypingIndicator {
	return &TypingIndicator{}
}

func (t *TypingIndicator) Show(author string) {
	t.author = author
	t.status = fmt.Sprintf(typingFormat, author)
}

func (t *TypingIndicator) Clear() {
	t.author = ""
	t.status = ""
}

// Status is empty when nobody is typing.
func (t *TypingIndicator) Status() string {
	return t.status
}

func (t *TypingIndicator) Author() string {
	return t.author
}
