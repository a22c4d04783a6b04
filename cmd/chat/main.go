package main

import (
	"bufio"
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/identity"
	"chat-sync/internal"
	"chat-sync/repositories"
	"chat-sync/runtime"
	"chat-sync/transport"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes for the chat client.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

const leaveTimeout = time.Second

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Chat error: %v\n", err)
	}
	os.Exit(code)
}

// run loads the configuration, joins the room and drives the session from
// stdin until /quit, EOF or a termination signal.
func run() (int, error) {
	// 1. Load configuration, a .env file is optional.
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lines := readLines(ctx, os.Stdin)

	// 2. Work out who we are.
	repository, closeStore, err := openIdentityStore(config.IdentityStorePath, log)
	if err != nil {
		return exitRuntime, err
	}
	defer closeStore()
	me, err := resolveIdentity(config, repository, prompt(ctx, os.Stdout, lines))
	if err != nil {
		return exitConfig, err
	}

	// 3. Connect and start the session.
	ws, err := transport.Dial(ctx, log, config.ServerURL, config.WebSocket())
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		log.Debug("Closing connection...")
		_ = ws.Close()
	}()

	session, err := join(ctx, log, ws, me, config.Session())
	if err != nil {
		return exitRuntime, err
	}
	defer leave(log, session)

	renderer := NewRenderer(os.Stdout)
	fmt.Fprintf(os.Stdout, ">>> Connected to %s as %s (/quit to leave)\n", config.ServerURL, renderer.Name(me))
	chat := newChat(session, renderer, repository)

	// 4. Main loop, driven by the signal context only.
	for {
		select {
		case <-ctx.Done():
			return exitOK, nil
		case <-ws.Done():
			return exitRuntime, fmt.Errorf("connection to %s lost", config.ServerURL)
		case <-session.Changes():
			renderer.Render(session.State())
		case line, ok := <-lines:
			if !ok {
				return exitOK, nil
			}
			if quit := chat.Handle(line); quit {
				return exitOK, nil
			}
		}
	}
}

// join starts the session detached from the cancellation of ctx: a
// termination signal ends the main loop, not the session, which still has
// to announce we are leaving.
func join(
	ctx context.Context,
	log *slog.Logger,
	transport contract.Transport,
	me domain.Identity,
	config runtime.SessionConfig,
) (*runtime.Session, error) {
	session := runtime.NewSession(log, clockwork.NewRealClock(), transport, identity.NewHolder(me), config)
	session.Start(context.WithoutCancel(ctx))
	if err := session.SetVisible(true); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

// leave announces we are going away, then tears the session down.
func leave(log *slog.Logger, session *runtime.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()
	if err := session.Leave(ctx); err != nil {
		log.Debug("Could not announce leaving", "error", err)
	}
	session.Close()
}

func openIdentityStore(path string, log *slog.Logger) (repositories.IIdentityRepository, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, nil, fmt.Errorf("could not open identity store at %s: %w", path, err)
	}
	return repositories.NewIdentityRepository(db, log), func() { _ = db.Close() }, nil
}

// readLines feeds stdin lines to a channel, closed on EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func prompt(ctx context.Context, w io.Writer, lines <-chan string) func() (string, error) {
	return func() (string, error) {
		fmt.Fprint(w, "Your name: ")
		select {
		case line, ok := <-lines:
			if !ok {
				return "", io.EOF
			}
			return line, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}
