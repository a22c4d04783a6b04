package runtime

import (
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	"chat-sync/identity"
	"chat-sync/projection"
	"chat-sync/runtime/workers"
	"chat-sync/services"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type SessionConfig struct {
	Typing          services.TypingConfig
	AttentionDecay  time.Duration
	BufferSize      int
	RestartInterval time.Duration
}

// Session wires the engine, the services and the inbound workers of one chat
// session, and exposes the intents a UI can trigger.
type Session struct {
	log        *slog.Logger
	transport  contract.Transport
	identity   *identity.Holder
	engine     *Engine
	decoder    *event.Decoder
	supervisor *workers.Supervisor

	mu        sync.Mutex
	closed    bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewSession(
	log *slog.Logger,
	clock clockwork.Clock,
	transport contract.Transport,
	holder *identity.Holder,
	config SessionConfig,
) *Session {
	engine := NewEngine(log, config.BufferSize)
	timeline := projection.NewTimeline()
	engine.Register(
		services.NewConversationService(log, clock, transport, holder, timeline),
		services.NewTypingService(log, clock, transport, holder, engine, config.Typing),
		services.NewPresenceService(log, transport, holder),
		services.NewAttentionService(log, clock, transport, holder, engine, timeline, config.AttentionDecay),
	)
	return &Session{
		log:        log,
		transport:  transport,
		identity:   holder,
		engine:     engine,
		decoder:    event.NewDecoder(validator.New()),
		supervisor: workers.NewSupervisor(log, config.RestartInterval),
	}
}

// Start subscribes to every inbound event and starts processing. Events the
// server sends before Start are not seen. Start is a no-op once started or closed.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	for _, name := range event.Inbound {
		source := s.transport.Listen(ctx, name)
		s.supervisor.Add(workers.NewInboundWorker(s.log, name, source, s.decoder, s.engine))
	}
	s.supervisor.Add(
		workers.NewReadyWorker(s.log, s.transport.Ready(), s.engine),
		workers.NewIdentityWorker(s.log, s.identity.Subscribe(ctx), s.engine),
	)

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.engine.Run(ctx); err != nil {
			s.log.Error("Engine stopped", "error", err)
		}
	}()
	go func() {
		defer s.wg.Done()
		s.supervisor.Run(ctx)
	}()
	s.log.Debug("Session started", "name", s.identity.Get().Name)
}

// Close tears the session down once: no event is processed afterwards and
// every pending timer is stopped. It returns after all goroutines exited.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		if s.cancel != nil {
			s.cancel()
		}
		s.mu.Unlock()
		s.wg.Wait()
		s.engine.shutdown()
		s.log.Debug("Session closed")
	})
}

// Input reports the new content of the draft, on every keystroke.
func (s *Session) Input(value string) error {
	return s.engine.Post(event.InputChanged{Value: value})
}

// Send publishes the text unless it is blank.
func (s *Session) Send(text string) error {
	return s.engine.Post(event.SendRequested{Text: text})
}

func (s *Session) SetVisible(visible bool) error {
	return s.engine.Post(event.VisibilityToggled{Visible: visible})
}

// Leave announces we are going away and waits until the announcement was
// handed to the transport. Call it before Close.
func (s *Session) Leave(ctx context.Context) error {
	if err := s.SetVisible(false); err != nil {
		return err
	}
	return s.engine.Sync(ctx)
}

func (s *Session) RequestAttention() error {
	return s.engine.Post(event.AttentionRequested{})
}

func (s *Session) Dismiss(id uuid.UUID) error {
	return s.engine.Post(event.NotificationDismissed{ID: id})
}

// DismissAt removes the notification at that position of the current list.
func (s *Session) DismissAt(index int) error {
	return s.engine.Post(event.NotificationDismissedAt{Index: index})
}

// Sync waits until every intent posted so far has been handled, so the next
// State reflects them.
func (s *Session) Sync(ctx context.Context) error {
	return s.engine.Sync(ctx)
}

// Identity is the participant as of now, ahead of the published state.
func (s *Session) Identity() domain.Identity {
	return s.identity.Get()
}

// SetIdentity replaces the participant; later events use the new one.
func (s *Session) SetIdentity(identity domain.Identity) {
	s.identity.Set(identity)
}

func (s *Session) State() projection.State {
	return s.engine.Snapshot()
}

// Changes signals that a new state was published. Signals coalesce.
func (s *Session) Changes() <-chan struct{} {
	return s.engine.Changes()
}
