package event

import (
	"chat-sync/domain"
	"chat-sync/errors"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Inbound lists the server events a session listens to.
var Inbound = []string{
	PreviousMessages,
	NewMessage,
	IsTyping,
	StopTyping,
	NewStatus,
	Attention,
}

// Decoder turns a raw inbound payload into a DomainEvent.
// A payload that does not decode or misses a required field is rejected
// with ErrInvalidPayload so the caller can drop it.
type Decoder struct {
	validate *validator.Validate
}

func NewDecoder(validate *validator.Validate) *Decoder {
	return &Decoder{validate: validate}
}

func (d *Decoder) Decode(name string, raw json.RawMessage) (DomainEvent, error) {
	switch name {
	case PreviousMessages:
		var payloads []MessagePayload
		if err := d.unmarshal(raw, &payloads); err != nil {
			return nil, err
		}
		for _, p := range payloads {
			if err := d.check(p); err != nil {
				return nil, err
			}
		}
		return HistoryReceived{Messages: lo.Map(payloads, func(p MessagePayload, _ int) domain.Message {
			return p.ToMessage()
		})}, nil
	case NewMessage, Attention:
		var payload MessagePayload
		if err := d.decodeStruct(raw, &payload); err != nil {
			return nil, err
		}
		if name == Attention {
			return AttentionReceived{Message: payload.ToMessage()}, nil
		}
		return MessageReceived{Message: payload.ToMessage()}, nil
	case IsTyping:
		var payload TypingPayload
		if err := d.decodeStruct(raw, &payload); err != nil {
			return nil, err
		}
		return TypingStarted{Author: payload.Author}, nil
	case StopTyping:
		return TypingStopped{}, nil
	case NewStatus:
		var payload StatusPayload
		if err := d.decodeStruct(raw, &payload); err != nil {
			return nil, err
		}
		return StatusReceived{Author: payload.Author, Visible: payload.Visible}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event %q", errors.ErrInvalidPayload, name)
	}
}

func (d *Decoder) decodeStruct(raw json.RawMessage, target any) error {
	if err := d.unmarshal(raw, target); err != nil {
		return err
	}
	return d.check(target)
}

func (d *Decoder) unmarshal(raw json.RawMessage, target any) error {
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

func (d *Decoder) check(payload any) error {
	if err := d.validate.Struct(payload); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}
