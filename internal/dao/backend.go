package dao

import "encoding/json"

// StatsResponse is the payload of GET /stats.
type StatsResponse struct {
	Ok     bool   `json:"ok"`
	Total  int64  `json:"total"`
	Counts Counts `json:"counts"`
}

// AccuracyResponse is the payload of GET /accuracy. Accuracy is a percentage.
type AccuracyResponse struct {
	Ok       bool     `json:"ok"`
	Accuracy *float64 `json:"accuracy"`
}

type PredictRequest struct {
	// 待分类文本
	Text string `json:"text"`
	// 是否保存为提交记录
	Save bool `json:"save"`
}

type PredictionResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type PredictResponse struct {
	Ok     bool              `json:"ok"`
	Input  string            `json:"input,omitempty"`
	Result *PredictionResult `json:"result"`
}

// TrainResponse carries the training statistics verbatim; their shape
// belongs to the backend.
type TrainResponse struct {
	Ok    bool            `json:"ok"`
	Stats json.RawMessage `json:"stats"`
}

// SubmissionRow is one stored submission. Timestamp is the unique key.
type SubmissionRow struct {
	Timestamp   string `json:"timestamp"`
	Text        string `json:"text"`
	Label       string `json:"label"`
	Probability string `json:"probability"`
}

type SubmissionsResponse struct {
	Ok    bool            `json:"ok"`
	Total int             `json:"total"`
	Rows  []SubmissionRow `json:"rows"`
}

type DeleteSubmissionsRequest struct {
	Timestamps []string `json:"timestamps"`
}

type RemovedResponse struct {
	Ok      bool `json:"ok"`
	Removed int  `json:"removed"`
}
