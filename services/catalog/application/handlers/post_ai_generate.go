package handlers

import (
	"net/http"

	"github.com/ghuser/storecatalog/pkg/httpx"
	pkgvalidator "github.com/ghuser/storecatalog/pkg/validator"
	appsvcs "github.com/ghuser/storecatalog/services/catalog/application/services"
)

// PostAIGenerateHandler handles POST /ai/generate requests.
type PostAIGenerateHandler struct {
	svc *appsvcs.Services
}

// NewPostAIGenerateHandler returns a PostAIGenerateHandler backed by the given services.
func NewPostAIGenerateHandler(svc *appsvcs.Services) *PostAIGenerateHandler {
	return &PostAIGenerateHandler{svc: svc}
}

// Execute returns text generated for a free-form prompt. Generation failures
// are reported as fallback text with status 200.
//
//	@Summary	Generate text
//	@Tags		ai
//	@Accept		json
//	@Produce	json
//	@Security	BasicAuth
//	@Param		request	body		GenerateTextRequest	true	"Prompt"
//	@Success	200		{object}	GenerateTextResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Router		/ai/generate [post]
func (h *PostAIGenerateHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[GenerateTextRequest](w, r)
	if !ok {
		return
	}

	httpx.JSON(w, http.StatusOK, GenerateTextResponse{
		Text: h.svc.Catalog.GenerateText(r.Context(), req.Prompt),
	})
}
