package services

import (
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/identity"
	"chat-sync/mocks"
	"chat-sync/projection"
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConversationService(t *testing.T) (*ConversationService, *mocks.MockEmitter) {
	ctrl := gomock.NewController(t)
	emitter := mocks.NewMockEmitter(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 1, 8, 7, 0, 0, time.UTC))
	svc := NewConversationService(log, clock, emitter, identity.NewHolder(alice), projection.NewTimeline())
	return svc, emitter
}

func TestConversationService_Blank_Send_Is_Ignored(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, emitter := newConversationService(t)
	emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	svc.Handle(ctx, event.SendRequested{Text: ""})
	svc.Handle(ctx, event.SendRequested{Text: "   "})

	state := snapshot(svc)
	req.Empty(state.Messages)
	req.False(state.HasSent)
}

func TestConversationService_Send(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, emitter := newConversationService(t)
	expected := domain.Message{Name: "Alice", Message: "hi", Color: "#AA0000", Hour: "08:07"}

	// Then the message is published before the stop notice
	gomock.InOrder(
		emitter.EXPECT().Emit(gomock.Any(), event.ReceivedMessage, event.FromMessage(expected)).Return(nil),
		emitter.EXPECT().Emit(gomock.Any(), event.Stop, event.StopPayload{}).Return(nil),
	)

	// When sending
	svc.Handle(ctx, event.SendRequested{Text: "hi"})

	// And it is echoed locally
	state := snapshot(svc)
	req.Equal([]domain.Message{expected}, state.Messages)
	req.True(state.HasSent)
	req.Regexp(`^\d{2}:\d{2}$`, state.Messages[0].Hour)
}

func TestConversationService_Emit_Failure_Is_Absorbed(t *testing.T) {
	req := require.New(t)
	svc, emitter := newConversationService(t)
	emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).Return(context.Canceled).Times(2)

	svc.Handle(context.Background(), event.SendRequested{Text: "hi"})

	req.Len(snapshot(svc).Messages, 1)
}

func TestConversationService_History_And_New_Messages(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _ := newConversationService(t)
	m1 := domain.Message{Name: "Bob", Message: "one"}
	m2 := domain.Message{Name: "Clara", Message: "two"}
	m3 := domain.Message{Name: "Bob", Message: "three"}
	m4 := domain.Message{Name: "Dan", Message: "four"}

	svc.Handle(ctx, event.HistoryReceived{Messages: []domain.Message{m1, m2}})
	svc.Handle(ctx, event.MessageReceived{Message: m3})
	req.Equal([]domain.Message{m1, m2, m3}, snapshot(svc).Messages)

	svc.Handle(ctx, event.HistoryReceived{Messages: []domain.Message{m4}})
	req.Equal([]domain.Message{m4}, snapshot(svc).Messages)
}

func TestConversationService_Phases(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc, _ := newConversationService(t)

	req.Equal(domain.Uninitialized, snapshot(svc).Phase)

	svc.Handle(ctx, event.TransportReady{})
	req.Equal(domain.AwaitingHistory, snapshot(svc).Phase)

	svc.Handle(ctx, event.HistoryReceived{})
	req.Equal(domain.Live, snapshot(svc).Phase)

	// Live is terminal
	svc.Handle(ctx, event.TransportReady{})
	req.Equal(domain.Live, snapshot(svc).Phase)
	req.Equal(alice, snapshot(svc).Identity)
}
