package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"feedbackdash/internal/dao"
)

const (
	retrainLabel        = "إعادة تدريب الموديل"
	retrainPendingLabel = "جارٍ إعادة التدريب..."

	msgEnterText           = "أدخل نصًا للاختبار"
	msgPredictFailed       = "خطأ في التنبؤ"
	msgRetrainedPrefix     = "تم إعادة التدريب. الإحصاءات: "
	msgRetrainFailed       = "فشل إعادة التدريب"
	msgLoadSubsFailed      = "فشل جلب الإرساليات"
	msgSelectRows          = "اختر صفوفًا للحذف"
	msgConfirmDeleteFormat = "حذف %d من الإرساليات؟"
	msgDeletedPrefix       = "تم الحذف: "
	msgDeleteFailed        = "فشل الحذف"
	msgConfirmClear        = "هل أنت متأكد أنك تريد حذف كل الإرساليات؟ لا يمكن التراجع عن هذه العملية."
	msgClearedPrefix       = "تم حذف جميع الإرساليات: "
	msgClearFailed         = "فشل مسح الإرساليات"

	noSubmissionsHTML = "<p>لا توجد إرساليات.</p>"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes text for insertion into HTML content or a quoted
// attribute value.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// formatPercent renders a probability in [0,1] as a percentage with one
// decimal. Ties round away from zero.
func formatPercent(p float64) string {
	v := p * 100
	switch {
	case math.IsNaN(v):
		return "NaN%"
	case math.IsInf(v, 1):
		return "Infinity%"
	case math.IsInf(v, -1):
		return "-Infinity%"
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64) + "%"
}

// leadingNumber matches the longest numeric prefix of a probability cell,
// so "0.9x" reads as 0.9.
var leadingNumber = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

func parseProbability(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return math.NaN()
	}
	m = strings.Replace(m, "Infinity", "Inf", 1)
	p, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// out of range exponents
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	return p
}

func formatProbability(s string) string {
	return formatPercent(parseProbability(s))
}

// formatAccuracy renders an accuracy that is already a percentage.
func formatAccuracy(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func compactJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func renderStatsBlock(total int64, counts dao.Counts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>إجمالي النصوص: %d</p>", total)
	labels := counts.Labels()
	values := counts.Values()
	for i, label := range labels {
		fmt.Fprintf(&b, "<p>%s: %d</p>", EscapeHTML(label), values[i])
	}
	return b.String()
}

func renderPrediction(res *dao.PredictionResult) string {
	return fmt.Sprintf("<p>النتيجة: <strong>%s</strong> — احتمالية: %s</p>",
		EscapeHTML(res.Label), formatPercent(res.Probability))
}

const cellStyle = `style="padding:.25rem"`

func renderSubmissionsTable(rows []dao.SubmissionRow, selected map[string]bool) string {
	if len(rows) == 0 {
		return noSubmissionsHTML
	}

	allChecked := len(selected) == len(rows)
	var b strings.Builder
	b.WriteString(`<table style="width:100%; border-collapse: collapse">`)
	b.WriteString(`<thead><tr><th style="width:48px;text-align:center"><input id="selectAllSubs" type="checkbox"`)
	if allChecked {
		b.WriteString(" checked")
	}
	b.WriteString(` /></th><th>الوقت (UTC)</th><th>النص</th><th>التسمية</th><th>الاحتمال</th></tr></thead><tbody>`)
	for _, r := range rows {
		ts := EscapeHTML(r.Timestamp)
		checked := ""
		if selected[r.Timestamp] {
			checked = " checked"
		}
		fmt.Fprintf(&b, `<tr style="border-top:1px solid #eee">`+
			`<td style="padding:.25rem;text-align:center"><input class="sub-checkbox" type="checkbox" name="timestamps" value="%s" data-ts="%s"%s /></td>`+
			`<td %s>%s</td><td %s>%s</td><td %s>%s</td><td %s>%s</td></tr>`,
			ts, ts, checked,
			cellStyle, ts,
			cellStyle, EscapeHTML(r.Text),
			cellStyle, EscapeHTML(r.Label),
			cellStyle, formatProbability(r.Probability))
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
