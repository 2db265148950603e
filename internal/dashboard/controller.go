package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"feedbackdash/internal/chart"
	"feedbackdash/internal/client"
	"feedbackdash/internal/dao"
	"feedbackdash/pkg/log"
)

var (
	// ErrInvalidInput means the action was refused before any network call.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCancelled means the user declined a confirmation.
	ErrCancelled = errors.New("cancelled by user")
	// ErrBusy means the trigger is disabled while a previous call is pending.
	ErrBusy = errors.New("trigger busy")
)

// Backend is the feedback analysis service the dashboard reads and drives.
type Backend interface {
	Stats(ctx context.Context) (*dao.StatsResponse, error)
	Accuracy(ctx context.Context) (float64, error)
	Predict(ctx context.Context, text string, save bool) (*dao.PredictionResult, error)
	Train(ctx context.Context) (json.RawMessage, error)
	Submissions(ctx context.Context) ([]dao.SubmissionRow, error)
	DeleteSubmissions(ctx context.Context, timestamps []string) (int, error)
	ClearSubmissions(ctx context.Context) (int, error)
}

// Controller holds the dashboard view state and implements every trigger.
// The mutex guards the view only; it is never held across a backend call.
type Controller struct {
	backend  Backend
	recorder ActivityRecorder

	mu   sync.Mutex
	view View

	actions map[string]Action
}

func NewController(backend Backend, recorder ActivityRecorder) *Controller {
	c := &Controller{
		backend:  backend,
		recorder: recorder,
		view:     newView(),
	}
	c.actions = c.buildActions()
	return c
}

// View returns a snapshot of the current view state.
func (c *Controller) View() dao.ViewSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.toSpec()
}

// RefreshStats fetches stats and accuracy concurrently. A failed stats fetch
// leaves charts and totals untouched; a failed accuracy fetch leaves the
// accuracy untouched. Neither is reported to the user.
func (c *Controller) RefreshStats(ctx context.Context) error {
	logger := log.GetLogger(ctx)

	var (
		stats    *dao.StatsResponse
		statsErr error
		accuracy float64
		accErr   error
		g        errgroup.Group
	)
	g.Go(func() error {
		stats, statsErr = c.backend.Stats(ctx)
		return nil
	})
	g.Go(func() error {
		accuracy, accErr = c.backend.Accuracy(ctx)
		return nil
	})
	g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if statsErr != nil {
		logger.Debugf("fetch stats failed: %v", statsErr)
	} else {
		c.renderChartsLocked(stats.Counts)
		c.view.StatsHTML = renderStatsBlock(stats.Total, stats.Counts)
		c.view.TotalStat = strconv.FormatInt(stats.Total, 10)
	}
	if accErr != nil {
		logger.Debugf("fetch accuracy failed: %v", accErr)
	} else {
		c.view.AccuracyStat = formatAccuracy(accuracy)
	}
	return statsErr
}

// RenderCharts replaces both charts with new ones built from counts.
func (c *Controller) RenderCharts(counts dao.Counts) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renderChartsLocked(counts)
}

func (c *Controller) renderChartsLocked(counts dao.Counts) {
	if c.view.pieChart != nil {
		c.view.pieChart.Destroy()
	}
	if c.view.barChart != nil {
		c.view.barChart.Destroy()
	}
	labels, data := counts.Labels(), counts.Values()
	c.view.pieChart = chart.New(chart.KindPie, labels, data)
	c.view.barChart = chart.New(chart.KindBar, labels, data)
}

// Charts returns the current chart handles; either may be nil before the
// first successful refresh.
func (c *Controller) Charts() (pie, bar *chart.Chart) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.pieChart, c.view.barChart
}

// RenderChartPNG draws the current chart of the given kind.
func (c *Controller) RenderChartPNG(kind chart.Kind, w io.Writer, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := c.view.pieChart
	if kind == chart.KindBar {
		ch = c.view.barChart
	}
	if ch == nil {
		return chart.ErrNoData
	}
	return ch.RenderPNG(w, width, height)
}

func (c *Controller) Predict(ctx context.Context, ui Prompter, text string, save bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		ui.Alert(msgEnterText)
		return ErrInvalidInput
	}

	res, err := c.backend.Predict(ctx, text, save)
	if err != nil {
		log.GetLogger(ctx).Warnf("predict failed: %v", err)
		ui.Alert(msgPredictFailed)
		return err
	}

	c.mu.Lock()
	c.view.PredictionHTML = renderPrediction(res)
	c.mu.Unlock()
	return nil
}

// Retrain retrains the model. The retrain trigger is disabled while the call
// is pending and is restored whatever the outcome.
func (c *Controller) Retrain(ctx context.Context, ui Prompter) error {
	if err := c.train(ctx, ui); err != nil {
		return err
	}
	if err := c.RefreshStats(ctx); err != nil {
		log.GetLogger(ctx).Debugf("refresh after retrain failed: %v", err)
	}
	return nil
}

func (c *Controller) train(ctx context.Context, ui Prompter) error {
	c.mu.Lock()
	if c.view.Retrain.Disabled {
		c.mu.Unlock()
		return ErrBusy
	}
	c.view.Retrain = Trigger{Label: retrainPendingLabel, Disabled: true}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.view.Retrain = Trigger{Label: retrainLabel}
		c.mu.Unlock()
	}()

	stats, err := c.backend.Train(ctx)
	if err != nil {
		log.GetLogger(ctx).Warnf("retrain failed: %v", err)
		ui.Alert(msgRetrainFailed)
		return err
	}
	ui.Alert(msgRetrainedPrefix + compactJSON(stats))
	return nil
}

func (c *Controller) ShowSubmissions(ctx context.Context, ui Prompter) error {
	c.mu.Lock()
	c.view.SubmissionsVisible = true
	c.mu.Unlock()
	return c.LoadSubmissions(ctx, ui)
}

func (c *Controller) HideSubmissions() {
	c.mu.Lock()
	c.view.SubmissionsVisible = false
	c.mu.Unlock()
}

// LoadSubmissions fetches and renders the submissions table. Rendering a
// fresh table clears the selection.
func (c *Controller) LoadSubmissions(ctx context.Context, ui Prompter) error {
	rows, err := c.backend.Submissions(ctx)
	if err != nil {
		log.GetLogger(ctx).Warnf("load submissions failed: %v", err)
		ui.Alert(msgLoadSubsFailed)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.rows = rows
	c.view.selected = map[string]bool{}
	c.view.SubmissionsHTML = renderSubmissionsTable(rows, c.view.selected)
	return nil
}

// Rows returns the submissions currently rendered.
func (c *Controller) Rows() []dao.SubmissionRow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dao.SubmissionRow(nil), c.view.rows...)
}

// SelectAll checks or unchecks every rendered row, and only those.
func (c *Controller) SelectAll(checked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.selected = map[string]bool{}
	if checked {
		for _, r := range c.view.rows {
			c.view.selected[r.Timestamp] = true
		}
	}
	c.view.SubmissionsHTML = renderSubmissionsTable(c.view.rows, c.view.selected)
}

// SetSelection replaces the selection. Timestamps that are not rendered are
// dropped.
func (c *Controller) SetSelection(timestamps []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rendered := make(map[string]bool, len(c.view.rows))
	for _, r := range c.view.rows {
		rendered[r.Timestamp] = true
	}
	c.view.selected = map[string]bool{}
	for _, ts := range timestamps {
		if rendered[ts] {
			c.view.selected[ts] = true
		}
	}
	c.view.SubmissionsHTML = renderSubmissionsTable(c.view.rows, c.view.selected)
}

func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.selectedTimestamps()
}

func (c *Controller) DeleteSelected(ctx context.Context, ui Prompter) error {
	timestamps := c.Selected()
	if len(timestamps) == 0 {
		ui.Alert(msgSelectRows)
		return ErrInvalidInput
	}
	if !ui.Confirm(fmt.Sprintf(msgConfirmDeleteFormat, len(timestamps))) {
		return ErrCancelled
	}

	removed, err := c.backend.DeleteSubmissions(ctx, timestamps)
	if err != nil {
		log.GetLogger(ctx).Warnf("delete submissions failed: %v", err)
		ui.Alert(msgDeleteFailed)
		return err
	}
	ui.Alert(msgDeletedPrefix + strconv.Itoa(removed))
	c.afterRemoval(ctx, ui)
	return nil
}

func (c *Controller) ClearAll(ctx context.Context, ui Prompter) error {
	if !ui.Confirm(msgConfirmClear) {
		return ErrCancelled
	}

	removed, err := c.backend.ClearSubmissions(ctx)
	if err != nil {
		log.GetLogger(ctx).Warnf("clear submissions failed: %v", err)
		ui.Alert(msgClearFailed)
		return err
	}
	ui.Alert(msgClearedPrefix + strconv.Itoa(removed))
	c.afterRemoval(ctx, ui)
	return nil
}

func (c *Controller) afterRemoval(ctx context.Context, ui Prompter) {
	logger := log.GetLogger(ctx)
	if err := c.LoadSubmissions(ctx, ui); err != nil {
		logger.Debugf("reload submissions after removal failed: %v", err)
	}
	if err := c.RefreshStats(ctx); err != nil {
		logger.Debugf("refresh after removal failed: %v", err)
	}
}

// DownloadCSV asks the front end to navigate to the CSV export. Nothing is
// fetched here.
func (c *Controller) DownloadCSV() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.navigation = client.PathDownloadSubmissions
	return c.view.navigation
}

// TakeNavigation returns the pending navigation target once.
func (c *Controller) TakeNavigation() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	nav := c.view.navigation
	c.view.navigation = ""
	return nav
}
