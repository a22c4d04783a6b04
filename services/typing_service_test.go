package services

import (
	"chat-sync/domain/event"
	"chat-sync/identity"
	"chat-sync/mocks"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var typingConfig = TypingConfig{
	Throttle: 500 * time.Millisecond,
	Debounce: 500 * time.Millisecond,
}

func newTypingService(t *testing.T, config TypingConfig) (*TypingService, *mocks.MockEmitter, *clockwork.FakeClock, timerPoster) {
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEmitter(ctrl)
	clock := clockwork.NewFakeClock()
	poster := newTimerPoster()
	svc := NewTypingService(log, clock, emitter, identity.NewHolder(alice), poster, config)
	return svc, emitter, clock, poster
}

func TestTypingService_One_Pulse_Per_Throttle_Window(t *testing.T) {
	ctx := context.Background()
	svc, emitter, clock, _ := newTypingService(t, typingConfig)

	// Then one pulse per window, carrying our name
	emitter.EXPECT().
		Emit(gomock.Any(), event.Typing, event.TypingPayload{Author: "Alice"}).
		Return(nil).
		Times(2)

	// When typing three keystrokes in the first window
	for _, value := range []string{"h", "he", "hel"} {
		svc.Handle(ctx, event.InputChanged{Value: value})
		clock.Advance(100 * time.Millisecond)
	}
	clock.Advance(200 * time.Millisecond)

	// And two more in the second window
	svc.Handle(ctx, event.InputChanged{Value: "hell"})
	svc.Handle(ctx, event.InputChanged{Value: "hello"})
}

func TestTypingService_One_Stop_After_Silence(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, emitter, clock, poster := newTypingService(t, typingConfig)

	emitter.EXPECT().Emit(gomock.Any(), event.Typing, gomock.Any()).Return(nil).Times(1)
	emitter.EXPECT().Emit(gomock.Any(), event.Stop, event.StopPayload{}).Return(nil).Times(1)

	// Given keystrokes 200ms apart
	svc.Handle(ctx, event.InputChanged{Value: "h"})
	clock.Advance(200 * time.Millisecond)
	svc.Handle(ctx, event.InputChanged{Value: "hi"})

	// When the quiet period is not over yet
	clock.Advance(499 * time.Millisecond)
	poster.requireSilent(t)

	// Then the stop notice goes out once it is
	clock.Advance(1 * time.Millisecond)
	expired := poster.next(t)
	req.Equal(event.StopNoticeTimer, expired.(event.TimerExpired).Timer)
	svc.Handle(ctx, expired)

	// And further silence does not repeat it
	clock.Advance(5 * time.Second)
	poster.requireSilent(t)
	req.Equal("hi", snapshot(svc).Draft)
}

func TestTypingService_Stop_Suppressed_For_Same_Value(t *testing.T) {
	ctx := context.Background()
	svc, emitter, clock, poster := newTypingService(t, typingConfig)

	emitter.EXPECT().Emit(gomock.Any(), event.Typing, gomock.Any()).Return(nil).AnyTimes()
	emitter.EXPECT().Emit(gomock.Any(), event.Stop, gomock.Any()).Return(nil).Times(1)

	// Given a first pause on "a"
	svc.Handle(ctx, event.InputChanged{Value: "a"})
	clock.Advance(500 * time.Millisecond)
	svc.Handle(ctx, poster.next(t))

	// When the draft comes back to "a" before the next pause
	svc.Handle(ctx, event.InputChanged{Value: "ab"})
	svc.Handle(ctx, event.InputChanged{Value: "a"})
	clock.Advance(500 * time.Millisecond)

	// Then no second stop is sent
	svc.Handle(ctx, poster.next(t))
}

func TestTypingService_Stale_Debounce_Ignored(t *testing.T) {
	ctx := context.Background()
	svc, emitter, clock, poster := newTypingService(t, typingConfig)

	emitter.EXPECT().Emit(gomock.Any(), event.Typing, gomock.Any()).Return(nil).AnyTimes()
	emitter.EXPECT().Emit(gomock.Any(), event.Stop, gomock.Any()).Times(0)

	// Given a debounce that fired
	svc.Handle(ctx, event.InputChanged{Value: "a"})
	clock.Advance(500 * time.Millisecond)
	stale := poster.next(t)

	// When a keystroke restarts it before the engine processes the expiry
	svc.Handle(ctx, event.InputChanged{Value: "ab"})

	// Then the stale expiry is ignored
	svc.Handle(ctx, stale)
}

func TestTypingService_Send_Resets_Draft(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, emitter, clock, poster := newTypingService(t, typingConfig)

	emitter.EXPECT().Emit(gomock.Any(), event.Typing, gomock.Any()).Return(nil).Times(2)

	svc.Handle(ctx, event.InputChanged{Value: "hi"})

	// When the draft is sent
	svc.Handle(ctx, event.SendRequested{Text: "hi"})

	// Then it is cleared and the pending stop is cancelled
	req.Empty(snapshot(svc).Draft)
	clock.Advance(time.Second)
	poster.requireSilent(t)

	// And the next keystroke pulses right away
	svc.Handle(ctx, event.InputChanged{Value: "n"})
}

func TestTypingService_Blank_Send_Keeps_Draft(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, emitter, _, _ := newTypingService(t, typingConfig)

	emitter.EXPECT().Emit(gomock.Any(), event.Typing, gomock.Any()).Return(nil).Times(1)

	svc.Handle(ctx, event.InputChanged{Value: "   "})
	svc.Handle(ctx, event.SendRequested{Text: "   "})

	req.Equal("   ", snapshot(svc).Draft)
}

func TestTypingService_Inbound_Typing(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _, _, _ := newTypingService(t, typingConfig)

	// When someone else types
	svc.Handle(ctx, event.TypingStarted{Author: "Bob"})

	// Then the status names them
	req.Equal("Bob is typing...", snapshot(svc).Typing)

	// When our own echo comes back
	svc.Handle(ctx, event.TypingStarted{Author: "Alice"})

	// Then the status is unchanged
	req.Equal("Bob is typing...", snapshot(svc).Typing)

	// When a stop arrives
	svc.Handle(ctx, event.TypingStopped{})

	// Then it is cleared right away
	req.Empty(snapshot(svc).Typing)
}

func TestTypingService_Own_Typing_Does_Not_Show(t *testing.T) {
	req := require.New(t)
	svc, _, _, _ := newTypingService(t, typingConfig)

	svc.Handle(context.Background(), event.TypingStarted{Author: "Alice"})

	req.Empty(snapshot(svc).Typing)
}

func TestTypingService_Delayed_Clear(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	config := typingConfig
	config.ClearDelay = 300 * time.Millisecond
	svc, _, clock, poster := newTypingService(t, config)

	// Given Bob typing then stopping
	svc.Handle(ctx, event.TypingStarted{Author: "Bob"})
	svc.Handle(ctx, event.TypingStopped{})

	// Then the status lingers during the delay
	req.Equal("Bob is typing...", snapshot(svc).Typing)

	// And is cleared once it is over
	clock.Advance(300 * time.Millisecond)
	svc.Handle(ctx, poster.next(t))
	req.Empty(snapshot(svc).Typing)
}

func TestTypingService_Delayed_Clear_Cancelled_By_New_Typist(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	config := typingConfig
	config.ClearDelay = 300 * time.Millisecond
	svc, _, clock, poster := newTypingService(t, config)

	svc.Handle(ctx, event.TypingStarted{Author: "Bob"})
	svc.Handle(ctx, event.TypingStopped{})
	clock.Advance(100 * time.Millisecond)

	// When Clara starts typing before the clear
	svc.Handle(ctx, event.TypingStarted{Author: "Clara"})
	clock.Advance(time.Second)

	// Then her status stays
	poster.requireSilent(t)
	req.Equal("Clara is typing...", snapshot(svc).Typing)
}
