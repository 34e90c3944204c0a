package api

import (
	"net/http"

	"github.com/okian/webbasics/internal/domain/greeting"
)

// DataHandler serves the static profile as JSON.
type DataHandler struct{}

// NewDataHandler creates a new data handler.
func NewDataHandler() *DataHandler {
	return &DataHandler{}
}

// HandleData handles GET /data.
func (h *DataHandler) HandleData(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, greeting.DefaultProfile())
}
