package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/webbasics/internal/domain/greeting"
	"github.com/okian/webbasics/pkg/logger"
	"github.com/okian/webbasics/pkg/metrics"
)

const maxFormMemory = 1 << 20

// Form submission outcomes recorded in metrics.
const (
	outcomeOK           = "ok"
	outcomeMissingField = "missing_field"
	outcomeMalformed    = "malformed"
)

// FormHandler echoes submitted credentials back to the client.
//
// POST reads the body strictly: an absent field is a 400. GET reads the query
// leniently: an absent field prints as None.
type FormHandler struct {
	log logger.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(log logger.Logger) *FormHandler {
	return &FormHandler{log: log}
}

// HandlePostForm handles POST /form with url-encoded or multipart fields.
func (h *FormHandler) HandlePostForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		metrics.RecordFormSubmission(http.MethodPost, outcomeMalformed)
		h.log.Debug(r.Context(), "malformed form body", logger.Error(err))
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err).Error())
		return
	}

	creds, err := greeting.RequireCredentials(r.PostForm)
	if err != nil {
		metrics.RecordFormSubmission(http.MethodPost, outcomeMissingField)
		h.log.Debug(r.Context(), "form submission rejected", logger.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.RecordFormSubmission(http.MethodPost, outcomeOK)
	writeText(w, http.StatusOK, greeting.FormatPost(creds))
}

// HandleGetResult handles GET /form-get-result.
func (h *FormHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	creds := greeting.LookupCredentials(r.URL.Query())
	metrics.RecordFormSubmission(http.MethodGet, outcomeOK)
	writeText(w, http.StatusOK, greeting.FormatGet(creds))
}
