package dashboard

import (
	"context"
	"errors"
	"sort"

	"feedbackdash/internal/dao"
	"feedbackdash/pkg/log"
)

var ErrUnknownAction = errors.New("unknown action")

const (
	ActionRefresh         = "refresh"
	ActionPredict         = "predict"
	ActionRetrain         = "retrain"
	ActionShowSubmissions = "show_submissions"
	ActionHideSubmissions = "hide_submissions"
	ActionLoadSubmissions = "load_submissions"
	ActionSelect          = "select"
	ActionSelectAll       = "select_all"
	ActionDeleteSelected  = "delete_selected"
	ActionClearAll        = "clear_all"
	ActionDownloadCSV     = "download_csv"
)

type Outcome string

const (
	OutcomeOk        Outcome = "ok"
	OutcomeFailed    Outcome = "failed"
	OutcomeRejected  Outcome = "rejected"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeSkipped   Outcome = "skipped"
)

func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOk
	case errors.Is(err, ErrInvalidInput):
		return OutcomeRejected
	case errors.Is(err, ErrCancelled):
		return OutcomeCancelled
	case errors.Is(err, ErrBusy):
		return OutcomeSkipped
	default:
		return OutcomeFailed
	}
}

// ActivityRecorder persists what happened on the dashboard.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, action string, outcome string, detail string) error
}

type ActionFunc func(ctx context.Context, ui Prompter, req dao.ActionRequest) error

// Action is one entry of the dispatch table.
type Action struct {
	Name        string
	Description string
	Run         ActionFunc
}

func (c *Controller) buildActions() map[string]Action {
	actions := []Action{
		{ActionRefresh, "Fetch stats and accuracy, redraw charts and headline numbers",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.RefreshStats(ctx)
			}},
		{ActionPredict, "Classify text and show the label with its probability",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.Predict(ctx, ui, req.Text, req.Save)
			}},
		{ActionRetrain, "Retrain the model, then refresh stats",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.Retrain(ctx, ui)
			}},
		{ActionShowSubmissions, "Open the submissions panel and load the list",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.ShowSubmissions(ctx, ui)
			}},
		{ActionHideSubmissions, "Close the submissions panel",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				c.HideSubmissions()
				return nil
			}},
		{ActionLoadSubmissions, "Reload the submissions list",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.LoadSubmissions(ctx, ui)
			}},
		{ActionSelect, "Replace the row selection",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				c.SetSelection(req.Timestamps)
				return nil
			}},
		{ActionSelectAll, "Check or uncheck every rendered row",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				c.SelectAll(req.Checked)
				return nil
			}},
		{ActionDeleteSelected, "Delete the selected submissions after confirmation",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				if req.Timestamps != nil {
					c.SetSelection(req.Timestamps)
				}
				return c.DeleteSelected(ctx, ui)
			}},
		{ActionClearAll, "Delete every submission after confirmation",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				return c.ClearAll(ctx, ui)
			}},
		{ActionDownloadCSV, "Navigate to the CSV export",
			func(ctx context.Context, ui Prompter, req dao.ActionRequest) error {
				c.DownloadCSV()
				return nil
			}},
	}

	table := make(map[string]Action, len(actions))
	for _, a := range actions {
		table[a.Name] = a
	}
	return table
}

// Actions lists the dispatch table sorted by name.
func (c *Controller) Actions() []Action {
	list := make([]Action, 0, len(c.actions))
	for _, a := range c.actions {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Dispatch runs the named action. The returned error is only non-nil for an
// unknown action; the action's own result is reported as an Outcome, the
// user having already been told through ui.
func (c *Controller) Dispatch(ctx context.Context, name string, ui Prompter, req dao.ActionRequest) (Outcome, error) {
	action, ok := c.actions[name]
	if !ok {
		return "", ErrUnknownAction
	}

	logger := log.GetLogger(ctx)
	err := action.Run(ctx, ui, req)
	outcome := outcomeOf(err)
	logger.Infof("action %s: %s", name, outcome)

	if c.recorder != nil {
		detail := ""
		if err != nil {
			detail = err.Error()
		}
		if recErr := c.recorder.RecordActivity(ctx, name, string(outcome), detail); recErr != nil {
			logger.Errorf("record activity %s failed: %v", name, recErr)
		}
	}
	return outcome, nil
}
