package api

import (
	"net/http"

	"github.com/okian/webbasics/internal/domain/greeting"
	"github.com/okian/webbasics/pkg/logger"
)

// Template names served by the page routes.
const (
	TemplateIndex   = "index.html"
	TemplateForm    = "form.html"
	TemplateFormGet = "form_get.html"
)

// PageHandler serves the template-rendered routes.
type PageHandler struct {
	renderer Renderer
	log      logger.Logger
	debug    bool
}

// NewPageHandler creates a new page handler.
func NewPageHandler(renderer Renderer, log logger.Logger, debug bool) *PageHandler {
	return &PageHandler{renderer: renderer, log: log, debug: debug}
}

// HandleHome handles GET / and binds the home name into the index template.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, TemplateIndex, map[string]any{"name": greeting.HomeName})
}

// HandleForm handles GET /form.
func (h *PageHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, TemplateForm, nil)
}

// HandleFormGet handles GET /form-get.
func (h *PageHandler) HandleFormGet(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, TemplateFormGet, nil)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, name, data); err != nil {
		h.log.Error(r.Context(), "template render failed", logger.String("template", name), logger.Error(err))
		detail := ""
		if h.debug {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, detail)
	}
}
