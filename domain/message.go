// Package domain contains core concepts of the chat system.
// This file defines Message entries and related rules.
// Messages are immutable once created.
package domain

import (
	"strings"
	"time"
)

const hourLayout = "15:04"

// Message represents one immutable line of the conversation.
type Message struct {
	Name      string `json:"name"`
	Message   string `json:"message"`
	Color     string `json:"color"`
	Hour      string `json:"hour"`
	Attention bool   `json:"attention,omitempty"`
}

// NewMessage stamps text with the author identity and the HH:MM of now.
func NewMessage(author Identity, text string, now time.Time) Message {
	return Message{
		Name:    author.Name,
		Message: text,
		Color:   author.Color,
		Hour:    HourOf(now),
	}
}

// HourOf extracts HH:MM from t expressed in UTC.
func HourOf(t time.Time) string {
	return t.UTC().Format(hourLayout)
}

// IsBlank reports whether text carries nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
