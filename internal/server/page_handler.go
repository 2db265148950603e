package server

import (
	"embed"
	goerrors "errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"feedbackdash/internal/dao"
	"feedbackdash/internal/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageData struct {
	View            dao.ViewSpec
	StatsHTML       template.HTML
	PredictionHTML  template.HTML
	SubmissionsHTML template.HTML

	Alerts            []string
	Confirm           string
	ConfirmAction     string
	ConfirmTimestamps []string
	Navigate          string
	AuthEnabled       bool
}

func (s *Server) newPageData(view dao.ViewSpec) pageData {
	// The fragments are built by the controller with every dynamic value
	// escaped.
	return pageData{
		View:            view,
		StatsHTML:       template.HTML(view.StatsHTML),
		PredictionHTML:  template.HTML(view.PredictionHTML),
		SubmissionsHTML: template.HTML(view.SubmissionsHTML),
		AuthEnabled:     s.authEnabled(),
	}
}

func (s *Server) handleDashboardPage(c *gin.Context) {
	data := s.newPageData(s.controller.View())
	if id, err := c.Cookie(flashCookie); err == nil && id != "" {
		c.SetCookie(flashCookie, "", -1, "/", "", s.secureCookies(), true)
		if f, ok := s.flashes.take(id, time.Now()); ok {
			data.Alerts = f.Alerts
			data.Navigate = f.Navigate
			data.Confirm = f.Confirm
			data.ConfirmAction = f.ConfirmAction
			data.ConfirmTimestamps = f.ConfirmTimestamps
		}
	}
	c.HTML(http.StatusOK, "dashboard.html", data)
}

// handleDashboardAction runs a form trigger and redirects to the page, so a
// reload never repeats the post. Alerts and pending confirmations travel in
// a one-shot flash.
func (s *Server) handleDashboardAction(c *gin.Context) {
	var req dao.ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	name := c.Param("action")
	// Form posts carry the checked rows; none checked means an empty
	// selection.
	if name == dashboard.ActionDeleteSelected && req.Timestamps == nil {
		req.Timestamps = []string{}
	}

	resp, err := s.runAction(c, name, req)
	if goerrors.Is(err, dashboard.ErrUnknownAction) {
		c.String(http.StatusNotFound, "unknown action %s", name)
		return
	} else if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	f := flash{
		Alerts:   resp.Alerts,
		Navigate: resp.Navigate,
	}
	if resp.Confirm != "" {
		f.Confirm = resp.Confirm
		f.ConfirmAction = name
		f.ConfirmTimestamps = req.Timestamps
	}
	if !f.empty() {
		id := s.flashes.put(f, time.Now())
		c.SetCookie(flashCookie, id, int(flashTTL.Seconds()), "/", "", s.secureCookies(), true)
	}
	c.Redirect(http.StatusSeeOther, "/")
}
