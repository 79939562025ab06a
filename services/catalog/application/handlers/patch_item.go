package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/storecatalog/pkg/validator"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// PatchItemHandler handles PATCH /items/{id} requests.
type PatchItemHandler struct {
	svc *appsvcs.Services
}

// NewPatchItemHandler returns a PatchItemHandler backed by the given services.
func NewPatchItemHandler(svc *appsvcs.Services) *PatchItemHandler {
	return &PatchItemHandler{svc: svc}
}

// Execute applies a partial update. The body is a JSON object whose keys are
// any of name, description and price.
//
//	@Summary		Update item fields
//	@Description	Only name, description and price may be set. An unknown key rejects the whole update.
//	@Tags			items
//	@Accept			json
//	@Produce		json
//	@Security		BasicAuth
//	@Param			id		path		string					true	"Item ID"	format(uuid)
//	@Param			request	body		map[string]interface{}	true	"Fields to change"
//	@Success		200		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/items/{id} [patch]
func (h *PatchItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	changes, ok := pkgvalidator.DecodeObject(w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.UpdatePartial(r.Context(), id, changes)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
