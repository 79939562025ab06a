package services

import (
	"context"
	"errors"

	"github.com/ghuser/storecatalog/services/catalog/domain/gateways"
	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

const descriptionPromptPrefix = "Generate a compelling description for a product named "

// Fallback texts stored as the description when generation fails.
const (
	FallbackUnexpectedResponse = "Unexpected response format from text service"
	FallbackInterrupted        = "Request to text service was interrupted"
	FallbackNetwork            = "Error generating text due to network issue"
	fallbackServicePrefix      = "Error from text service: "
)

// DescriptionPrompt builds the deterministic prompt used for generated descriptions.
func DescriptionPrompt(name models.ItemName) string {
	return descriptionPromptPrefix + name.String()
}

// FallbackDescription converts a generation failure into the human-readable
// text stored in place of a generated description. It never returns "".
func FallbackDescription(err error) string {
	var genErr *gateways.GenerationError
	switch {
	case errors.As(err, &genErr):
		reason := genErr.Reason
		if reason == "" {
			reason = "unknown error"
		}
		return fallbackServicePrefix + reason
	case errors.Is(err, gateways.ErrUnexpectedResponse):
		return FallbackUnexpectedResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FallbackInterrupted
	default:
		return FallbackNetwork
	}
}
