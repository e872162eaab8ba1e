package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/analogalgo/letters/internal/api/shared"
	"github.com/analogalgo/letters/internal/domain/cardology"
	"github.com/analogalgo/letters/internal/platform/logger"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type dashboardPage struct {
	Title       string
	Today       string
	TodayCard   string
	TargetMonth string
}

// DashboardHandler serves the operator dashboard.
type DashboardHandler struct {
	title string
	now   func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(title string) *DashboardHandler {
	if title == "" {
		title = "Analog Algorithm"
	}
	return &DashboardHandler{title: title, now: time.Now}
}

// Dashboard handles GET /.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := h.now().UTC()
	page := dashboardPage{
		Title:       h.title,
		Today:       now.Format("Monday, January 2"),
		TargetMonth: now.Format("2006-01"),
	}
	if card, err := cardology.GlobalCard(now); err == nil {
		page.TodayCard = card.String()
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to render dashboard", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.FromContext(r.Context()).Debug("failed to write dashboard", "error", err)
	}
}
