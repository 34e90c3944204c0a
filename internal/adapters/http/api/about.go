package api

import (
	"net/http"

	"github.com/okian/webbasics/internal/domain/greeting"
)

// AboutHandler serves the fixed about text.
type AboutHandler struct{}

// NewAboutHandler creates a new about handler.
func NewAboutHandler() *AboutHandler {
	return &AboutHandler{}
}

// HandleAbout handles GET /about. Query and body are ignored.
func (h *AboutHandler) HandleAbout(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, greeting.AboutText)
}
