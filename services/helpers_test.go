package services

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/projection"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var (
	alice = domain.Identity{Name: "Alice", Color: "#AA0000"}
	log   = logs.GetLoggerFromLevel(slog.LevelDebug)
)

// timerPoster collects the expiries posted by countdown callbacks so the test
// can feed them back to the handler, like the engine would.
type timerPoster chan event.DomainEvent

func newTimerPoster() timerPoster {
	return make(timerPoster, 16)
}

func (p timerPoster) Post(evt event.DomainEvent) error {
	p <- evt
	return nil
}

func (p timerPoster) next(t *testing.T) event.DomainEvent {
	t.Helper()
	select {
	case evt := <-p:
		return evt
	case <-time.After(time.Second):
		require.Fail(t, "no timer expired")
		return nil
	}
}

func (p timerPoster) requireSilent(t *testing.T) {
	t.Helper()
	select {
	case evt := <-p:
		require.Failf(t, "unexpected timer expiry", "%#v", evt)
	case <-time.After(20 * time.Millisecond):
	}
}

func snapshot(contributor projection.Contributor) projection.State {
	var state projection.State
	contributor.Contribute(&state)
	return state
}
