package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/errhttp"
	"github.com/ghuser/storecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/storecatalog/pkg/validator"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// PutItemPriceHandler handles PUT /items/{id}/price requests.
type PutItemPriceHandler struct {
	svc *appsvcs.Services
}

// NewPutItemPriceHandler returns a PutItemPriceHandler backed by the given services.
func NewPutItemPriceHandler(svc *appsvcs.Services) *PutItemPriceHandler {
	return &PutItemPriceHandler{svc: svc}
}

// Execute sets a new price.
//
//	@Summary	Change item price
//	@Tags		items
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		id		path		string				true	"Item ID"	format(uuid)
//	@Param		request	body		ChangePriceRequest	true	"New price"
//	@Success	200		{object}	ItemResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/items/{id}/price [put]
func (h *PutItemPriceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLParamUUID(r, "id")
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ChangePriceRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Catalog.ChangePrice(r.Context(), id, *req.NewPrice)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}
