package internal

import (
	"chat-sync/runtime"
	"chat-sync/services"
	"chat-sync/transport"
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	ServerURL         string        `env:"CHAT_SERVER_URL,default=ws://localhost:3000/ws" validate:"required,url"`
	Name              string        `env:"CHAT_NAME"`
	Color             string        `env:"CHAT_COLOR" validate:"omitempty,hexcolor"`
	TypingThrottle    time.Duration `env:"TYPING_THROTTLE,default=500ms" validate:"gt=0"`
	TypingDebounce    time.Duration `env:"TYPING_DEBOUNCE,default=500ms" validate:"gt=0"`
	TypingClearDelay  time.Duration `env:"TYPING_CLEAR_DELAY,default=0s" validate:"gte=0"`
	AttentionDecay    time.Duration `env:"ATTENTION_DECAY,default=400ms" validate:"gt=0"`
	EventBufferSize   int           `env:"EVENT_BUFFER_SIZE,default=64" validate:"gt=0"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=10s" validate:"gt=0"`
	PongWait          time.Duration `env:"PONG_WAIT,default=20s" validate:"gt=0"`
	IdentityStorePath string        `env:"IDENTITY_STORE_PATH"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
}

// LoadConfig reads the environment and rejects values the session cannot run with.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Session() runtime.SessionConfig {
	return runtime.SessionConfig{
		Typing: services.TypingConfig{
			Throttle:   c.TypingThrottle,
			Debounce:   c.TypingDebounce,
			ClearDelay: c.TypingClearDelay,
		},
		AttentionDecay:  c.AttentionDecay,
		BufferSize:      c.EventBufferSize,
		RestartInterval: c.RestartInterval,
	}
}

func (c Config) WebSocket() transport.WebSocketConfig {
	return transport.WebSocketConfig{
		WriteTimeout: c.WriteTimeout,
		PongWait:     c.PongWait,
		BufferSize:   c.EventBufferSize,
	}
}
