package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"feedbackdash/internal/client"
	"feedbackdash/internal/dao"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int

	stats    *dao.StatsResponse
	statsErr error
	accuracy float64
	accErr   error

	prediction *dao.PredictionResult
	predictErr error
	predicted  string

	trainStats json.RawMessage
	trainErr   error
	onTrain    func()

	rows      []dao.SubmissionRow
	rowsErr   error
	deleted   []string
	removed   int
	removeErr error
}

func (f *fakeBackend) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, v := range f.calls {
		n += v
	}
	return n
}

func (f *fakeBackend) Stats(ctx context.Context) (*dao.StatsResponse, error) {
	f.hit("stats")
	return f.stats, f.statsErr
}

func (f *fakeBackend) Accuracy(ctx context.Context) (float64, error) {
	f.hit("accuracy")
	return f.accuracy, f.accErr
}

func (f *fakeBackend) Predict(ctx context.Context, text string, save bool) (*dao.PredictionResult, error) {
	f.hit("predict")
	f.predicted = text
	return f.prediction, f.predictErr
}

func (f *fakeBackend) Train(ctx context.Context) (json.RawMessage, error) {
	f.hit("train")
	if f.onTrain != nil {
		f.onTrain()
	}
	return f.trainStats, f.trainErr
}

func (f *fakeBackend) Submissions(ctx context.Context) ([]dao.SubmissionRow, error) {
	f.hit("submissions")
	return f.rows, f.rowsErr
}

func (f *fakeBackend) DeleteSubmissions(ctx context.Context, timestamps []string) (int, error) {
	f.hit("delete")
	f.deleted = timestamps
	return f.removed, f.removeErr
}

func (f *fakeBackend) ClearSubmissions(ctx context.Context) (int, error) {
	f.hit("clear")
	return f.removed, f.removeErr
}

func statsOf(total int64, pairs ...any) *dao.StatsResponse {
	counts := dao.NewCounts()
	for i := 0; i < len(pairs); i += 2 {
		counts.Set(pairs[i].(string), int64(pairs[i+1].(int)))
	}
	return &dao.StatsResponse{Ok: true, Total: total, Counts: counts}
}

func textContent(t *testing.T, fragment string) string {
	t.Helper()
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{Type: html.ElementNode, DataAtom: atom.Div, Data: "div"})
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}

func findElements(t *testing.T, fragment string, match func(*html.Node) bool) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func rowCheckboxes(t *testing.T, fragment string) []*html.Node {
	return findElements(t, fragment, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Data == "input" && class == "sub-checkbox"
	})
}

func TestRefreshStatsRendersSnapshot(t *testing.T) {
	backend := &fakeBackend{
		stats:    statsOf(10, "positive", 6, "negative", 4),
		accuracy: 85.5,
	}
	c := NewController(backend, nil)

	if err := c.RefreshStats(context.Background()); err != nil {
		t.Fatalf("RefreshStats: %v", err)
	}

	view := c.View()
	for _, want := range []string{"<p>إجمالي النصوص: 10</p>", "<p>positive: 6</p>", "<p>negative: 4</p>"} {
		if !strings.Contains(view.StatsHTML, want) {
			t.Errorf("stats block %q missing %q", view.StatsHTML, want)
		}
	}
	if view.TotalStat != "10" {
		t.Errorf("total = %q, want 10", view.TotalStat)
	}
	if view.AccuracyStat != "85.5%" {
		t.Errorf("accuracy = %q, want 85.5%%", view.AccuracyStat)
	}

	pie, bar := c.Charts()
	for _, ch := range []struct {
		name   string
		labels []string
		data   []int64
	}{
		{"pie", pie.Labels, pie.Data},
		{"bar", bar.Labels, bar.Data},
	} {
		if !reflect.DeepEqual(ch.labels, []string{"positive", "negative"}) || !reflect.DeepEqual(ch.data, []int64{6, 4}) {
			t.Errorf("%s chart = %v %v", ch.name, ch.labels, ch.data)
		}
	}
}

func TestRefreshStatsFailuresAreSilent(t *testing.T) {
	backend := &fakeBackend{stats: statsOf(3, "a", 3), accuracy: 90}
	c := NewController(backend, nil)
	c.RefreshStats(context.Background())
	before := c.View()
	pie, _ := c.Charts()

	backend.stats, backend.statsErr = nil, client.ErrRejected
	backend.accuracy = 70
	if err := c.RefreshStats(context.Background()); !errors.Is(err, client.ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	after := c.View()
	if after.StatsHTML != before.StatsHTML || after.TotalStat != before.TotalStat {
		t.Fatalf("stats changed after failed fetch: %+v", after)
	}
	if samePie, _ := c.Charts(); samePie != pie || pie.Destroyed() {
		t.Fatal("charts replaced after failed stats fetch")
	}
	if after.AccuracyStat != "70%" {
		t.Fatalf("accuracy = %q, want 70%%", after.AccuracyStat)
	}

	backend.stats, backend.statsErr = statsOf(5, "a", 5), nil
	backend.accErr = errors.New("connection refused")
	c.RefreshStats(context.Background())
	if got := c.View().AccuracyStat; got != "70%" {
		t.Fatalf("accuracy = %q after failed fetch, want unchanged 70%%", got)
	}
	if got := c.View().TotalStat; got != "5" {
		t.Fatalf("total = %q, want 5", got)
	}
}

func TestRenderChartsDestroysPreviousHandles(t *testing.T) {
	c := NewController(&fakeBackend{}, nil)

	first := statsOf(2, "x", 1, "y", 1).Counts
	c.RenderCharts(first)
	oldPie, oldBar := c.Charts()

	second := statsOf(3, "x", 1, "y", 1, "z", 1).Counts
	c.RenderCharts(second)
	pie, bar := c.Charts()

	if !oldPie.Destroyed() || !oldBar.Destroyed() {
		t.Fatal("previous charts not destroyed")
	}
	if pie.Destroyed() || bar.Destroyed() || pie == oldPie || bar == oldBar {
		t.Fatal("new charts not created")
	}
	if len(pie.Data) != 3 || len(bar.Data) != 3 {
		t.Fatalf("data points = %d/%d, want 3", len(pie.Data), len(bar.Data))
	}
}

func TestChartsReadableWhileReplaced(t *testing.T) {
	c := NewController(&fakeBackend{}, nil)
	counts := statsOf(2, "x", 1, "y", 1).Counts
	c.RenderCharts(counts)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			c.RenderCharts(counts)
		}
	}()
	for i := 0; i < 50; i++ {
		pie, bar := c.Charts()
		pie.Destroyed()
		bar.Destroyed()
	}
	<-done

	if pie, _ := c.Charts(); pie.Destroyed() {
		t.Fatal("current chart is destroyed")
	}
}

func TestPredictRejectsBlankText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		backend := &fakeBackend{}
		c := NewController(backend, nil)
		ui := &RecordingPrompter{}

		err := c.Predict(context.Background(), ui, text, true)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Predict(%q) err = %v", text, err)
		}
		if backend.total() != 0 {
			t.Fatalf("Predict(%q) issued %d backend calls", text, backend.total())
		}
		if !reflect.DeepEqual(ui.Alerts, []string{"أدخل نصًا للاختبار"}) {
			t.Fatalf("alerts = %v", ui.Alerts)
		}
	}
}

func TestPredictShowsResult(t *testing.T) {
	backend := &fakeBackend{prediction: &dao.PredictionResult{Label: "negative", Probability: 0.837}}
	c := NewController(backend, nil)
	ui := &RecordingPrompter{}

	if err := c.Predict(context.Background(), ui, "  الخدمة بطيئة  ", false); err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if backend.predicted != "الخدمة بطيئة" {
		t.Fatalf("sent %q, want trimmed text", backend.predicted)
	}
	if got := textContent(t, c.View().PredictionHTML); got != "النتيجة: negative — احتمالية: 83.7%" {
		t.Fatalf("prediction = %q", got)
	}
	if len(ui.Alerts) != 0 {
		t.Fatalf("alerts = %v", ui.Alerts)
	}

	backend.predictErr = client.ErrRejected
	if err := c.Predict(context.Background(), ui, "x", false); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(ui.Alerts, []string{"خطأ في التنبؤ"}) {
		t.Fatalf("alerts = %v", ui.Alerts)
	}
	if got := textContent(t, c.View().PredictionHTML); !strings.Contains(got, "83.7%") {
		t.Fatalf("prediction overwritten on failure: %q", got)
	}
}

func TestRetrainRestoresTrigger(t *testing.T) {
	tests := []struct {
		name      string
		stats     json.RawMessage
		err       error
		wantAlert string
		wantStats int
	}{
		{"success", json.RawMessage(`{ "accuracy": 0.9 }`), nil, `تم إعادة التدريب. الإحصاءات: {"accuracy":0.9}`, 1},
		{"rejected", nil, client.ErrRejected, "فشل إعادة التدريب", 0},
		{"transport", nil, errors.New("dial tcp: connection refused"), "فشل إعادة التدريب", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{trainStats: tt.stats, trainErr: tt.err, stats: statsOf(1, "a", 1)}
			c := NewController(backend, nil)
			ui := &RecordingPrompter{}

			var during dao.TriggerSpec
			var reentrant error
			backend.onTrain = func() {
				during = c.View().Retrain
				reentrant = c.Retrain(context.Background(), &RecordingPrompter{})
			}

			c.Retrain(context.Background(), ui)

			if !during.Disabled || during.Label != "جارٍ إعادة التدريب..." {
				t.Fatalf("trigger during call = %+v", during)
			}
			if !errors.Is(reentrant, ErrBusy) {
				t.Fatalf("second retrain err = %v, want ErrBusy", reentrant)
			}
			if backend.count("train") != 1 {
				t.Fatalf("train called %d times", backend.count("train"))
			}
			if got := c.View().Retrain; got.Disabled || got.Label != "إعادة تدريب الموديل" {
				t.Fatalf("trigger after call = %+v", got)
			}
			if !reflect.DeepEqual(ui.Alerts, []string{tt.wantAlert}) {
				t.Fatalf("alerts = %v", ui.Alerts)
			}
			if backend.count("stats") != tt.wantStats {
				t.Fatalf("stats refreshed %d times, want %d", backend.count("stats"), tt.wantStats)
			}
		})
	}
}

func TestLoadSubmissions(t *testing.T) {
	backend := &fakeBackend{rowsErr: client.ErrRejected}
	c := NewController(backend, nil)
	ui := &RecordingPrompter{}

	c.LoadSubmissions(context.Background(), ui)
	if !reflect.DeepEqual(ui.Alerts, []string{"فشل جلب الإرساليات"}) {
		t.Fatalf("alerts = %v", ui.Alerts)
	}
	if c.View().SubmissionsHTML != "" {
		t.Fatal("table rendered after failed fetch")
	}

	backend.rowsErr = nil
	backend.rows = []dao.SubmissionRow{}
	c.LoadSubmissions(context.Background(), ui)
	if got := c.View().SubmissionsHTML; got != "<p>لا توجد إرساليات.</p>" {
		t.Fatalf("empty table = %q", got)
	}
}

func TestSubmissionTextIsEscaped(t *testing.T) {
	backend := &fakeBackend{rows: []dao.SubmissionRow{
		{Timestamp: "2024-05-01T10:00:00", Text: `<script>alert(1)</script> & "q" 'a'`, Label: "شكوى", Probability: "0.42"},
	}}
	c := NewController(backend, nil)
	c.LoadSubmissions(context.Background(), &RecordingPrompter{})

	table := c.View().SubmissionsHTML
	if !strings.Contains(table, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; &quot;q&quot; &#039;a&#039;") {
		t.Fatalf("text not escaped: %s", table)
	}
	scripts := findElements(t, table, func(n *html.Node) bool { return n.Data == "script" })
	if len(scripts) != 0 {
		t.Fatal("rendered table contains a script element")
	}
	if !strings.Contains(table, "42.0%") {
		t.Fatalf("probability not formatted: %s", table)
	}
}

func TestSelectAllTogglesRenderedRowsOnly(t *testing.T) {
	backend := &fakeBackend{rows: []dao.SubmissionRow{
		{Timestamp: "t1", Text: "a", Label: "رضا", Probability: "0.9"},
		{Timestamp: "t2", Text: "b", Label: "شكوى", Probability: "0.6"},
		{Timestamp: "t3", Text: "c", Label: "رضا", Probability: "bad"},
	}}
	c := NewController(backend, nil)
	c.LoadSubmissions(context.Background(), &RecordingPrompter{})

	c.SelectAll(true)
	boxes := rowCheckboxes(t, c.View().SubmissionsHTML)
	if len(boxes) != 3 {
		t.Fatalf("checkboxes = %d, want 3", len(boxes))
	}
	for _, b := range boxes {
		if _, checked := attr(b, "checked"); !checked {
			ts, _ := attr(b, "data-ts")
			t.Fatalf("row %s not checked", ts)
		}
	}
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"t1", "t2", "t3"}) {
		t.Fatalf("selected = %v", got)
	}

	c.SelectAll(false)
	for _, b := range rowCheckboxes(t, c.View().SubmissionsHTML) {
		if _, checked := attr(b, "checked"); checked {
			t.Fatal("row still checked after unselect")
		}
	}
	if len(c.Selected()) != 0 {
		t.Fatalf("selected = %v", c.Selected())
	}

	c.SetSelection([]string{"t2", "gone"})
	if got := c.Selected(); !reflect.DeepEqual(got, []string{"t2"}) {
		t.Fatalf("selected = %v, want [t2]", got)
	}

	c.LoadSubmissions(context.Background(), &RecordingPrompter{})
	if len(c.Selected()) != 0 {
		t.Fatal("reload kept the selection")
	}
}

func TestDeleteSelected(t *testing.T) {
	rows := []dao.SubmissionRow{
		{Timestamp: "t1", Text: "a", Label: "x", Probability: "0.5"},
		{Timestamp: "t2", Text: "b", Label: "y", Probability: "0.5"},
	}

	t.Run("nothing selected", func(t *testing.T) {
		backend := &fakeBackend{rows: rows}
		c := NewController(backend, nil)
		c.LoadSubmissions(context.Background(), &RecordingPrompter{})
		ui := &RecordingPrompter{Confirmed: true}

		if err := c.DeleteSelected(context.Background(), ui); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v", err)
		}
		if backend.count("delete") != 0 || len(ui.Asked) != 0 {
			t.Fatal("delete issued or confirmation asked without selection")
		}
		if !reflect.DeepEqual(ui.Alerts, []string{"اختر صفوفًا للحذف"}) {
			t.Fatalf("alerts = %v", ui.Alerts)
		}
	})

	t.Run("declined", func(t *testing.T) {
		backend := &fakeBackend{rows: rows}
		c := NewController(backend, nil)
		c.LoadSubmissions(context.Background(), &RecordingPrompter{})
		c.SelectAll(true)
		ui := &RecordingPrompter{}

		if err := c.DeleteSelected(context.Background(), ui); !errors.Is(err, ErrCancelled) {
			t.Fatalf("err = %v", err)
		}
		if backend.count("delete") != 0 {
			t.Fatal("delete issued after decline")
		}
		if ui.PendingConfirmation() != "حذف 2 من الإرساليات؟" {
			t.Fatalf("asked = %v", ui.Asked)
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		backend := &fakeBackend{rows: rows, removed: 1, stats: statsOf(4, "x", 4)}
		c := NewController(backend, nil)
		c.LoadSubmissions(context.Background(), &RecordingPrompter{})
		c.SetSelection([]string{"t2"})
		ui := &RecordingPrompter{Confirmed: true}

		if err := c.DeleteSelected(context.Background(), ui); err != nil {
			t.Fatalf("DeleteSelected: %v", err)
		}
		if !reflect.DeepEqual(backend.deleted, []string{"t2"}) {
			t.Fatalf("deleted = %v", backend.deleted)
		}
		if !reflect.DeepEqual(ui.Alerts, []string{"تم الحذف: 1"}) {
			t.Fatalf("alerts = %v", ui.Alerts)
		}
		if backend.count("submissions") != 2 || backend.count("stats") != 1 {
			t.Fatalf("calls = %v", backend.calls)
		}
		if c.View().TotalStat != "4" {
			t.Fatalf("total = %q", c.View().TotalStat)
		}
	})

	t.Run("failed", func(t *testing.T) {
		backend := &fakeBackend{rows: rows, removeErr: client.ErrRejected}
		c := NewController(backend, nil)
		c.LoadSubmissions(context.Background(), &RecordingPrompter{})
		c.SelectAll(true)
		ui := &RecordingPrompter{Confirmed: true}

		c.DeleteSelected(context.Background(), ui)
		if !reflect.DeepEqual(ui.Alerts, []string{"فشل الحذف"}) {
			t.Fatalf("alerts = %v", ui.Alerts)
		}
		if backend.count("submissions") != 1 {
			t.Fatal("list reloaded after failed delete")
		}
	})
}

func TestClearAll(t *testing.T) {
	backend := &fakeBackend{removed: 7, rows: []dao.SubmissionRow{}, stats: statsOf(0)}
	c := NewController(backend, nil)

	declined := &RecordingPrompter{}
	if err := c.ClearAll(context.Background(), declined); !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v", err)
	}
	if backend.total() != 0 {
		t.Fatal("backend called before confirmation")
	}

	ui := &RecordingPrompter{Confirmed: true}
	if err := c.ClearAll(context.Background(), ui); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if !reflect.DeepEqual(ui.Alerts, []string{"تم حذف جميع الإرساليات: 7"}) {
		t.Fatalf("alerts = %v", ui.Alerts)
	}
	if got := c.View().SubmissionsHTML; got != "<p>لا توجد إرساليات.</p>" {
		t.Fatalf("table = %q", got)
	}

	backend.removeErr = errors.New("boom")
	ui = &RecordingPrompter{Confirmed: true}
	c.ClearAll(context.Background(), ui)
	if !reflect.DeepEqual(ui.Alerts, []string{"فشل مسح الإرساليات"}) {
		t.Fatalf("alerts = %v", ui.Alerts)
	}
}

func TestRemovalLogsFailedReload(t *testing.T) {
	hook := logtest.NewGlobal()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		logrus.SetLevel(level)
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})

	backend := &fakeBackend{removed: 2, rowsErr: errors.New("down"), statsErr: errors.New("down")}
	c := NewController(backend, nil)
	ui := &RecordingPrompter{Confirmed: true}
	if err := c.ClearAll(context.Background(), ui); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if !reflect.DeepEqual(ui.Alerts, []string{"تم حذف جميع الإرساليات: 2", "فشل جلب الإرساليات"}) {
		t.Fatalf("alerts = %v", ui.Alerts)
	}

	var messages []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel {
			messages = append(messages, e.Message)
		}
	}
	joined := strings.Join(messages, "\n")
	for _, want := range []string{"reload submissions after removal failed", "refresh after removal failed"} {
		if !strings.Contains(joined, want) {
			t.Errorf("debug log missing %q in %q", want, joined)
		}
	}
}

func TestDownloadCSVNavigatesOnce(t *testing.T) {
	backend := &fakeBackend{}
	c := NewController(backend, nil)

	if got := c.DownloadCSV(); got != "/submissions/download" {
		t.Fatalf("navigation = %q", got)
	}
	if got := c.TakeNavigation(); got != "/submissions/download" {
		t.Fatalf("take = %q", got)
	}
	if got := c.TakeNavigation(); got != "" {
		t.Fatalf("second take = %q", got)
	}
	if backend.total() != 0 {
		t.Fatal("download touched the backend")
	}
}
