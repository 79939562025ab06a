package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/auth"
	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// DeleteItemHandler handles DELETE /items/{id} requests.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteItemHandler returns a DeleteItemHandler backed by the given services.
func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute deletes an item. Only ADMIN principals may delete.
//
//	@Summary	Delete item
//	@Tags		items
//	@Security	BasicAuth
//	@Param		id	path	string	true	"Item ID"	format(uuid)
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/items/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Catalog.DeleteItem(r.Context(), id, auth.RoleFromCtx(r.Context())); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
