package dashboard

import (
	"feedbackdash/internal/chart"
	"feedbackdash/internal/dao"
)

type Trigger struct {
	Label    string
	Disabled bool
}

// View is the state the dashboard page displays. The controller owns it.
type View struct {
	StatsHTML          string
	TotalStat          string
	AccuracyStat       string
	PredictionHTML     string
	Retrain            Trigger
	SubmissionsVisible bool
	SubmissionsHTML    string

	// rows is the list currently rendered in the submissions table; selected
	// only ever holds timestamps of those rows.
	rows     []dao.SubmissionRow
	selected map[string]bool

	pieChart *chart.Chart
	barChart *chart.Chart

	navigation string
}

func newView() View {
	return View{
		TotalStat:    "-",
		AccuracyStat: "-",
		Retrain:      Trigger{Label: retrainLabel},
		selected:     map[string]bool{},
	}
}

func (v *View) selectedTimestamps() []string {
	ts := make([]string, 0, len(v.selected))
	for _, r := range v.rows {
		if v.selected[r.Timestamp] {
			ts = append(ts, r.Timestamp)
		}
	}
	return ts
}

func (v *View) toSpec() dao.ViewSpec {
	spec := dao.ViewSpec{
		StatsHTML:          v.StatsHTML,
		TotalStat:          v.TotalStat,
		AccuracyStat:       v.AccuracyStat,
		PredictionHTML:     v.PredictionHTML,
		Retrain:            dao.TriggerSpec{Label: v.Retrain.Label, Disabled: v.Retrain.Disabled},
		SubmissionsVisible: v.SubmissionsVisible,
		SubmissionsHTML:    v.SubmissionsHTML,
		Selected:           v.selectedTimestamps(),
	}
	if v.pieChart != nil {
		conf := v.pieChart.Config()
		spec.PieChart = &conf
	}
	if v.barChart != nil {
		conf := v.barChart.Config()
		spec.BarChart = &conf
	}
	return spec
}
