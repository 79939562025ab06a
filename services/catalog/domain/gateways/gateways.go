// Package gateways declares the external collaborators the catalog depends on.
// The domain owns these interfaces; infrastructure implements them.
package gateways

import (
	"context"
	"errors"
)

// TextGenerator produces text for a prompt. Implementations return either the
// generated text or an error; they never embed failures in the returned text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier broadcasts human-readable event strings. Delivery is best effort and
// failures are handled by the implementation.
type Notifier interface {
	Broadcast(ctx context.Context, message string)
}

// ErrUnexpectedResponse is returned when the text service answers with a payload
// that carries neither text nor an error description.
var ErrUnexpectedResponse = errors.New("unexpected response format from text service")

// GenerationError carries the reason reported by the text service itself.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return "text service error: " + e.Reason
}
