package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomColor_Format(t *testing.T) {
	req := require.New(t)
	hex := regexp.MustCompile(`^#[0-9A-F]{6}$`)

	for i := 0; i < 100; i++ {
		color := RandomColor()
		req.Regexp(hex, color)
		req.NotEqual(ReservedColor, color)
	}
}

func TestPickColor_Reserved_Falls_Back(t *testing.T) {
	req := require.New(t)

	// Given a draw matching the header color
	color := pickColor(0x4B154C)

	// Then the fallback color is returned
	req.Equal(FallbackColor, color)
	req.Equal("#00000A", pickColor(0x0A))
	req.Equal("#FFFFFF", pickColor(0xFFFFFFFF))
}

func TestIdentity_IsSelf(t *testing.T) {
	req := require.New(t)
	alice := Identity{Name: "Alice", Color: "#123456"}

	req.True(alice.IsSelf("Alice"))
	req.False(alice.IsSelf("Bob"))
	req.False(alice.IsSelf("alice"))
}
