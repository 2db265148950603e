package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"feedbackdash/internal/dao"
)

// ErrRejected is returned when the backend answers but signals failure,
// either with a non-2xx status or with "ok": false.
var ErrRejected = errors.New("backend rejected request")

const (
	pathStats               = "/stats"
	pathAccuracy            = "/accuracy"
	pathPredict             = "/predict"
	pathTrain               = "/train"
	pathSubmissions         = "/submissions"
	pathDeleteSubmissions   = "/submissions/delete"
	pathClearSubmissions    = "/submissions/clear"
	PathDownloadSubmissions = "/submissions/download"
)

type Config struct {
	BaseUrl string
	Timeout time.Duration
}

// Client talks to the feedback analysis backend.
type Client struct {
	httpCli *http.Client
	conf    Config
}

func NewClient(conf Config) *Client {
	if conf.Timeout <= 0 {
		conf.Timeout = 30 * time.Second
	}
	conf.BaseUrl = strings.TrimRight(conf.BaseUrl, "/")
	return &Client{
		httpCli: &http.Client{
			Timeout: conf.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		conf: conf,
	}
}

func (c *Client) BaseUrl() string {
	return c.conf.BaseUrl
}

func (c *Client) newRequest(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.conf.BaseUrl+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send HTTP request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrRejected, req.Method, req.URL.Path, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	req, err := c.newRequest(ctx, method, path, in)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response of %s: %w", path, err)
	}
	return nil
}

func rejected(path string) error {
	return fmt.Errorf("%w: %s: ok=false", ErrRejected, path)
}

func (c *Client) Stats(ctx context.Context) (*dao.StatsResponse, error) {
	var resp dao.StatsResponse
	if err := c.do(ctx, http.MethodGet, pathStats, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, rejected(pathStats)
	}
	return &resp, nil
}

// Accuracy returns the model accuracy as a percentage.
func (c *Client) Accuracy(ctx context.Context) (float64, error) {
	var resp dao.AccuracyResponse
	if err := c.do(ctx, http.MethodGet, pathAccuracy, nil, &resp); err != nil {
		return 0, err
	}
	if !resp.Ok || resp.Accuracy == nil {
		return 0, rejected(pathAccuracy)
	}
	return *resp.Accuracy, nil
}

func (c *Client) Predict(ctx context.Context, text string, save bool) (*dao.PredictionResult, error) {
	var resp dao.PredictResponse
	req := dao.PredictRequest{Text: text, Save: save}
	if err := c.do(ctx, http.MethodPost, pathPredict, req, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok || resp.Result == nil {
		return nil, rejected(pathPredict)
	}
	return resp.Result, nil
}

// Train retrains the model and returns the backend's training statistics.
func (c *Client) Train(ctx context.Context) (json.RawMessage, error) {
	var resp dao.TrainResponse
	if err := c.do(ctx, http.MethodPost, pathTrain, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, rejected(pathTrain)
	}
	return resp.Stats, nil
}

func (c *Client) Submissions(ctx context.Context) ([]dao.SubmissionRow, error) {
	var resp dao.SubmissionsResponse
	if err := c.do(ctx, http.MethodGet, pathSubmissions, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, rejected(pathSubmissions)
	}
	if resp.Rows == nil {
		resp.Rows = []dao.SubmissionRow{}
	}
	return resp.Rows, nil
}

// DeleteSubmissions removes the submissions with the given timestamps and
// returns how many the backend removed.
func (c *Client) DeleteSubmissions(ctx context.Context, timestamps []string) (int, error) {
	var resp dao.RemovedResponse
	req := dao.DeleteSubmissionsRequest{Timestamps: timestamps}
	if err := c.do(ctx, http.MethodPost, pathDeleteSubmissions, req, &resp); err != nil {
		return 0, err
	}
	if !resp.Ok {
		return 0, rejected(pathDeleteSubmissions)
	}
	return resp.Removed, nil
}

func (c *Client) ClearSubmissions(ctx context.Context) (int, error) {
	var resp dao.RemovedResponse
	if err := c.do(ctx, http.MethodPost, pathClearSubmissions, nil, &resp); err != nil {
		return 0, err
	}
	if !resp.Ok {
		return 0, rejected(pathClearSubmissions)
	}
	return resp.Removed, nil
}

// OpenCSV starts the submissions export download. The caller closes the
// response body.
func (c *Client) OpenCSV(ctx context.Context) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, PathDownloadSubmissions, nil)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

// DownloadCSV streams the submissions export into w.
func (c *Client) DownloadCSV(ctx context.Context, w io.Writer) (int64, error) {
	resp, err := c.OpenCSV(ctx)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy csv body: %w", err)
	}
	return n, nil
}
