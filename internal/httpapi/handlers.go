package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dariadocs/namescreen/helpers/utils"
	"github.com/dariadocs/namescreen/internal/nameerrors"
	"github.com/dariadocs/namescreen/internal/nametrace"
	"github.com/dariadocs/namescreen/internal/orchestrator"
)

// Handler holds the single collaborator the HTTP surface needs: the
// orchestrator. Mirrors the teacher's AddressController shape (a thin
// struct wrapping the service, logger included for error paths).
type Handler struct {
	orch   *orchestrator.Orchestrator
	logger *zap.Logger
}

func NewHandler(orch *orchestrator.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orch: orch, logger: logger}
}

// Normalize handles POST /normalize.
func (h *Handler) Normalize(c *gin.Context) {
	var req NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "text must not be empty"})
		return
	}

	res := h.orch.Process(c.Request.Context(), orchestrator.Request{
		Text:             req.Text,
		LanguageOverride: req.Language,
		RequestID:        utils.GenerateUUID(),
		FlagOverrides:    flagOverrides(req),
	})

	c.JSON(statusFor(res), toResponse(res))
}

// Process handles POST /process: the same pipeline as /normalize, with
// an enriched response shape. generate_variants/generate_embeddings
// are accepted but produce no additional sections here (see
// ProcessRequest).
func (h *Handler) Process(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "text must not be empty"})
		return
	}

	res := h.orch.Process(c.Request.Context(), orchestrator.Request{
		Text:             req.Text,
		LanguageOverride: req.Language,
		RequestID:        utils.GenerateUUID(),
		FlagOverrides:    flagOverrides(req.NormalizeRequest),
	})

	c.JSON(statusFor(res), ProcessResponse{NormalizeResponse: toResponse(res)})
}

// statusFor maps a result's error kind to the HTTP status class spec
// §7 assigns it: invalid_input -> 400, timeout -> 503, anything else
// unsuccessful -> 500. A successful result is always 200. The
// orchestrator stringifies errors as "kind: message" (nameerrors.Error
// .Error()), so the kind is read back off that prefix rather than
// threading a second typed field through the wire response.
func statusFor(res nametrace.NormalizationResult) int {
	if res.Success || len(res.Errors) == 0 {
		return http.StatusOK
	}
	switch {
	case strings.HasPrefix(res.Errors[0], string(nameerrors.InvalidInput)+":"):
		return http.StatusBadRequest
	case strings.HasPrefix(res.Errors[0], string(nameerrors.Timeout)+":"):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
