package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// ListItemsHandler handles GET /items requests.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

// NewListItemsHandler returns a ListItemsHandler backed by the given services.
func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute lists items in creation order. Without page and size every item is
// returned in one response.
//
//	@Summary	List items
//	@Tags		items
//	@Produce	json
//	@Security	BasicAuth
//	@Param		page	query		int	false	"Zero-based page number"
//	@Param		size	query		int	false	"Page size (1-100, default 20)"
//	@Success	200		{object}	ItemListResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/items [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if page == nil {
		items, total, err := h.svc.Catalog.ListItems(r.Context(), nil)
		if err != nil {
			errhttp.WriteError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, ItemListResponse{Items: toItemResponses(items), Total: total, Page: 0, Size: len(items)})
		return
	}

	items, total, err := h.svc.Catalog.ListItems(r.Context(), page.queryOpts())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ItemListResponse{Items: toItemResponses(items), Total: total, Page: page.Page, Size: page.Size})
}
