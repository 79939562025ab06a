package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// SearchItemsHandler handles GET /items/search requests.
type SearchItemsHandler struct {
	svc *appsvcs.Services
}

// NewSearchItemsHandler returns a SearchItemsHandler backed by the given services.
func NewSearchItemsHandler(svc *appsvcs.Services) *SearchItemsHandler {
	return &SearchItemsHandler{svc: svc}
}

// Execute searches items.
//
//	@Summary		Search items
//	@Description	name+minPrice+maxPrice matches the exact name in the range; name alone matches a case-insensitive substring; minPrice+maxPrice matches the range; otherwise all items are returned.
//	@Tags			items
//	@Produce		json
//	@Security		BasicAuth
//	@Param			name		query		string	false	"Item name"
//	@Param			minPrice	query		number	false	"Lowest price, inclusive"
//	@Param			maxPrice	query		number	false	"Highest price, inclusive"
//	@Success		200			{array}		ItemResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Router			/items/search [get]
func (h *SearchItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, err := parseSearchFilter(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.svc.Catalog.SearchItems(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponses(items))
}
