package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// GetAIItemHandler handles GET /ai/items/{id} requests.
type GetAIItemHandler struct {
	svc *appsvcs.Services
}

// NewGetAIItemHandler returns a GetAIItemHandler backed by the given services.
func NewGetAIItemHandler(svc *appsvcs.Services) *GetAIItemHandler {
	return &GetAIItemHandler{svc: svc}
}

// Execute returns one item and reports the lookup on the activity feed.
//
//	@Summary	Get item (AI)
//	@Tags		ai
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id	path		string	true	"Item ID"	format(uuid)
//	@Success	200	{object}	ItemResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	401	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/ai/items/{id} [get]
func (h *GetAIItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.svc.Catalog.FetchItem(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
