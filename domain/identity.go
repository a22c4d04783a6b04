// Package domain contains core concepts of the chat system.
// This file defines the participant Identity and its color rules.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	// ReservedColor is the brand color of the header, never handed out to a participant.
	ReservedColor = "#4B154C"
	// FallbackColor replaces a random draw that hit ReservedColor.
	FallbackColor = "#7E2480"
)

// Identity is the display name and avatar color of the local participant.
// It is replaced as a whole, never partially updated.
type Identity struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// IsSelf reports whether author designates this participant.
func (i Identity) IsSelf(author string) bool {
	return author == i.Name
}

// RandomColor draws an upper-case #RRGGBB color distinct from ReservedColor.
func RandomColor() string {
	return pickColor(rand.Uint32())
}

func pickColor(n uint32) string {
	color := fmt.Sprintf("#%06X", n&0xFFFFFF)
	if strings.EqualFold(color, ReservedColor) {
		return FallbackColor
	}
	return color
}
