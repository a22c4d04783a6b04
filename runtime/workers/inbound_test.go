package workers

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/errors"
	"chat-sync/mocks"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func runAsync(ctx context.Context, run func(context.Context) error) <-chan error {
	result := make(chan error, 1)
	go func() { result <- run(ctx) }()
	return result
}

func TestInboundWorker_Posts_Valid_And_Drops_Malformed(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	poster := mocks.NewMockEventPoster(ctrl)
	source := make(chan json.RawMessage, 3)
	worker := NewInboundWorker(log, event.IsTyping, source, event.NewDecoder(validator.New()), poster)

	// Given one malformed payload between two valid ones
	source <- json.RawMessage(`{"author":"Bob"}`)
	source <- json.RawMessage(`{"nobody":true}`)
	source <- json.RawMessage(`{"author":"Clara"}`)
	close(source)

	// Then only the valid ones reach the engine, in order
	gomock.InOrder(
		poster.EXPECT().Post(event.TypingStarted{Author: "Bob"}).Return(nil),
		poster.EXPECT().Post(event.TypingStarted{Author: "Clara"}).Return(nil),
	)

	// When the subscription is drained then closed
	err := <-runAsync(context.Background(), worker.Run)

	// Then the worker finishes cleanly
	req.NoError(err)
}

func TestInboundWorker_Stops_When_Session_Closed(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	poster := mocks.NewMockEventPoster(ctrl)
	source := make(chan json.RawMessage, 1)
	worker := NewInboundWorker(log, event.NewMessage, source, event.NewDecoder(validator.New()), poster)

	poster.EXPECT().Post(gomock.Any()).Return(errors.ErrSessionClosed).Times(1)
	source <- json.RawMessage(`{"name":"Bob","message":"hi","color":"#000000","hour":"10:00"}`)

	select {
	case err := <-runAsync(context.Background(), worker.Run):
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker should stop once the engine is closed")
	}
}

func TestInboundWorker_Stops_On_Context(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	poster := mocks.NewMockEventPoster(ctrl)
	worker := NewInboundWorker(log, event.NewStatus, make(chan json.RawMessage), event.NewDecoder(validator.New()), poster)

	ctx, cancel := context.WithCancel(context.Background())
	result := runAsync(ctx, worker.Run)
	cancel()

	select {
	case err := <-result:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("worker should stop with its context")
	}
}

func TestReadyWorker_Posts_Once(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	poster := mocks.NewMockEventPoster(ctrl)
	ready := make(chan struct{})
	poster.EXPECT().Post(event.TransportReady{}).Return(nil).Times(1)

	result := runAsync(context.Background(), NewReadyWorker(log, ready, poster).Run)
	close(ready)

	req.NoError(<-result)
}

func TestIdentityWorker_Forwards_Changes(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	poster := mocks.NewMockEventPoster(ctrl)
	updates := make(chan domain.Identity, 2)
	updates <- domain.Identity{Name: "Alice"}
	updates <- domain.Identity{Name: "Alicia"}
	close(updates)

	gomock.InOrder(
		poster.EXPECT().Post(event.IdentityChanged{Identity: domain.Identity{Name: "Alice"}}).Return(nil),
		poster.EXPECT().Post(event.IdentityChanged{Identity: domain.Identity{Name: "Alicia"}}).Return(nil),
	)

	req.NoError(<-runAsync(context.Background(), NewIdentityWorker(log, updates, poster).Run))
}
