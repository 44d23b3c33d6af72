package api

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/dashboard"
	"github.com/0xPuncker/cron-dashboard/internal/schedule"
	"github.com/0xPuncker/cron-dashboard/pkg/types"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			"icon": dashboard.Icon,
			// accents come from the fixed category table
			"safeCSS": func(s string) template.CSS { return template.CSS(s) },
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// JobSource is where the feed gets its jobs from.
type JobSource interface {
	Jobs(now time.Time) []types.Job
	Definitions() []schedule.Definition
}

type Handler struct {
	source    JobSource
	logger    *logrus.Logger
	clock     func() time.Time
	dashboard *template.Template
}

func NewHandler(source JobSource, logger *logrus.Logger) *Handler {
	return &Handler{
		source:    source,
		logger:    logger,
		clock:     time.Now,
		dashboard: dashboardTemplate,
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// ListJobs is the feed endpoint: a flat JSON array of jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := h.source.Jobs(h.clock())
	if jobs == nil {
		jobs = []types.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(jobs); err != nil {
		h.logger.Errorf("Failed to encode response: %v", err)
	}
}

// ListDefinitions exposes the configured job table.
func (h *Handler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs := h.source.Definitions()
	active := 0
	for _, def := range defs {
		if def.IsEnabled() {
			active++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"jobs":        defs,
		"active_jobs": active,
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := h.clock()
	snapshot := dashboard.BuildSnapshot(dashboard.SortByNextRun(h.source.Jobs(now)), now)

	var buf bytes.Buffer
	if err := h.dashboard.Execute(&buf, snapshot); err != nil {
		h.handleError(w, fmt.Errorf("failed to render dashboard: %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Errorf("Failed to write dashboard: %v", err)
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error, code int) {
	h.logger.Error(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	})
}
