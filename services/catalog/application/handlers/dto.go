package handlers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ghuser/storecatalog/services/catalog/domain/models"
)

// CreateItemRequest is the request body for POST /items and POST /ai/items.
// Any id or timestamps in the body are ignored.
type CreateItemRequest struct {
	Name        string           `json:"name"        validate:"required,max=255" example:"Sample Widget"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0"   swaggertype:"number" example:"19.99"`
	Description string           `json:"description" example:"A sturdy blue widget"`
} // @name CreateItemRequest

func (r CreateItemRequest) candidate() models.ItemCandidate {
	return models.ItemCandidate{
		Name:        r.Name,
		Price:       *r.Price,
		Description: r.Description,
	}
}

// ChangePriceRequest is the request body for PUT /items/{id}/price.
type ChangePriceRequest struct {
	NewPrice *decimal.Decimal `json:"newPrice" validate:"required,gte=0" swaggertype:"number" example:"24.50"`
} // @name ChangePriceRequest

// GenerateTextRequest is the request body for POST /ai/generate.
type GenerateTextRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000" example:"Write a slogan for a coffee shop"`
} // @name GenerateTextRequest

// GenerateTextResponse carries generated text or a fallback message.
type GenerateTextResponse struct {
	Text string `json:"text" example:"Fresh beans, friendly faces."`
} // @name GenerateTextResponse

// ItemResponse is the JSON form of an item. Price is a JSON number rendered
// from the stored decimal without float rounding.
type ItemResponse struct {
	ID          uuid.UUID   `json:"id"          example:"123e4567-e89b-12d3-a456-426614174000"`
	Name        string      `json:"name"        example:"Sample Widget"`
	Price       json.Number `json:"price"       swaggertype:"number" example:"19.99"`
	Description string      `json:"description" example:"A sturdy blue widget"`
	CreatedAt   time.Time   `json:"createdAt"   example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time   `json:"updatedAt"   example:"2024-01-15T10:30:00Z"`
} // @name ItemResponse

// ItemListResponse is a page of items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total" example:"42"`
	Page  int            `json:"page"  example:"0"`
	Size  int            `json:"size"  example:"20"`
} // @name ItemListResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name.String(),
		Price:       json.Number(item.Price.String()),
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}
