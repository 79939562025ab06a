package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/storecatalog/pkg/validator"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// PostAIItemHandler handles POST /ai/items requests.
type PostAIItemHandler struct {
	svc *appsvcs.Services
}

// NewPostAIItemHandler returns a PostAIItemHandler backed by the given services.
func NewPostAIItemHandler(svc *appsvcs.Services) *PostAIItemHandler {
	return &PostAIItemHandler{svc: svc}
}

// Execute creates an item whose description is generated from its name.
// When generation fails the item is still created with a fallback description.
//
//	@Summary		Create item with generated description
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Security		BasicAuth
//	@Param			request	body		CreateItemRequest	true	"Item to create; description is replaced"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/ai/items [post]
func (h *PostAIItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.AddItemWithGeneratedDescription(r.Context(), req.candidate())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
