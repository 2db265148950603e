package dao

import "feedbackdash/internal/chart"

// ActionRequest is the input of a dashboard action. It binds from both JSON
// bodies and HTML forms.
type ActionRequest struct {
	// 预测文本
	Text string `json:"text,omitempty" form:"text" jsonschema:"description=Text to classify (predict)"`
	// 是否保存预测结果
	Save bool `json:"save,omitempty" form:"save" jsonschema:"description=Store the prediction as a submission (predict)"`
	// 选中的提交记录时间戳
	Timestamps []string `json:"timestamps,omitempty" form:"timestamps" jsonschema:"description=Selected submission timestamps (select and delete_selected)"`
	// 全选状态
	Checked bool `json:"checked,omitempty" form:"checked" jsonschema:"description=Header checkbox state (select_all)"`
	// 用户已确认
	Confirmed bool `json:"confirmed,omitempty" form:"confirmed" jsonschema:"description=Answer to a pending confirmation (delete_selected and clear_all)"`
}

type TriggerSpec struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// ViewSpec is a snapshot of everything the dashboard page displays.
type ViewSpec struct {
	StatsHTML          string        `json:"statsHtml"`
	TotalStat          string        `json:"totalStat"`
	AccuracyStat       string        `json:"accuracyStat"`
	PredictionHTML     string        `json:"predictionHtml"`
	Retrain            TriggerSpec   `json:"retrain"`
	SubmissionsVisible bool          `json:"submissionsVisible"`
	SubmissionsHTML    string        `json:"submissionsHtml"`
	Selected           []string      `json:"selected"`
	PieChart           *chart.Config `json:"pieChart,omitempty"`
	BarChart           *chart.Config `json:"barChart,omitempty"`
}

type ActionResponse struct {
	// 动作名称
	Action string `json:"action"`
	// 执行结果 ok/failed/rejected/cancelled/skipped
	Outcome string `json:"outcome"`
	// 需要展示给用户的提示
	Alerts []string `json:"alerts"`
	// 待确认的问题，重新提交 confirmed=true 以继续
	Confirm string `json:"confirm,omitempty"`
	// 需要浏览器跳转的地址
	Navigate string   `json:"navigate,omitempty"`
	View     ViewSpec `json:"view"`
}

type ActionSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListActionsResponse struct {
	Items       []ActionSpec `json:"items"`
	InputSchema any          `json:"inputSchema"`
}

type ActivitySpec struct {
	Id          int    `json:"id"`
	Action      string `json:"action"`
	Outcome     string `json:"outcome"`
	Detail      string `json:"detail"`
	CreatedTime string `json:"createdTime"`
}

type ListActivitiesRequest struct {
	// 分页开始位置
	Start int `form:"start" binding:"min=0"`
	// 分页大小
	Limit int `form:"limit" binding:"min=0,max=500"`
}

type ListActivitiesResponse struct {
	// 记录总数
	Total int64 `json:"total"`
	// 记录列表
	Items []ActivitySpec `json:"items"`
}

type LoginRequest struct {
	// 密码
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	// 登录凭证
	Token string `json:"token"`
}
