package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Kind string

const (
	KindPie Kind = "pie"
	KindBar Kind = "bar"
)

// Palette is the fixed two-color palette. Charts with more labels reuse it.
var Palette = []string{"#84fab0", "#fa709a"}

const (
	borderColor  = "#fff"
	barDataLabel = "عدد التعليقات"
)

var (
	ErrDestroyed = errors.New("chart destroyed")
	ErrNoData    = errors.New("chart has no data")
)

// Chart is a handle on one rendered chart instance. A destroyed handle keeps
// its data but can no longer be rendered. Handles are shared, so the
// destroyed flag may be read from any goroutine.
type Chart struct {
	Id     string
	Kind   Kind
	Labels []string
	Data   []int64
	Colors []string

	destroyed atomic.Bool
}

func New(kind Kind, labels []string, data []int64) *Chart {
	return &Chart{
		Id:     uuid.New().String(),
		Kind:   kind,
		Labels: append([]string(nil), labels...),
		Data:   append([]int64(nil), data...),
		Colors: append([]string(nil), Palette...),
	}
}

func (c *Chart) Destroy() {
	c.destroyed.Store(true)
}

func (c *Chart) Destroyed() bool {
	return c.destroyed.Load()
}

type Dataset struct {
	Label           string   `json:"label,omitempty"`
	Data            []int64  `json:"data"`
	BackgroundColor []string `json:"backgroundColor"`
	BorderWidth     int      `json:"borderWidth"`
	BorderColor     string   `json:"borderColor"`
	BorderRadius    int      `json:"borderRadius,omitempty"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Config is a Chart.js chart configuration.
type Config struct {
	Type    Kind           `json:"type"`
	Data    Data           `json:"data"`
	Options map[string]any `json:"options"`
}

func (c *Chart) Config() Config {
	ds := Dataset{
		Data:            c.Data,
		BackgroundColor: c.Colors,
		BorderWidth:     2,
		BorderColor:     borderColor,
	}
	conf := Config{
		Type: c.Kind,
		Options: map[string]any{
			"responsive":          true,
			"maintainAspectRatio": true,
		},
	}
	font12 := map[string]any{"font": map[string]any{"size": 12}}

	switch c.Kind {
	case KindBar:
		ds.Label = barDataLabel
		ds.BorderRadius = 8
		conf.Options["plugins"] = map[string]any{
			"legend": map[string]any{"display": false},
		}
		conf.Options["scales"] = map[string]any{
			"y": map[string]any{"beginAtZero": true, "ticks": font12},
			"x": map[string]any{"ticks": font12},
		}
	default:
		conf.Options["plugins"] = map[string]any{
			"legend": map[string]any{
				"position": "bottom",
				"labels": map[string]any{
					"font":    map[string]any{"size": 14},
					"padding": 15,
				},
			},
		}
	}
	conf.Data = Data{Labels: c.Labels, Datasets: []Dataset{ds}}
	return conf
}

func (c *Chart) color(i int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(c.Colors[i%len(c.Colors)], "#"))
}

func (c *Chart) values() []gochart.Value {
	values := make([]gochart.Value, len(c.Data))
	for i, v := range c.Data {
		values[i] = gochart.Value{
			Value: float64(v),
			Label: c.Labels[i],
			Style: gochart.Style{
				FillColor:   c.color(i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		}
	}
	return values
}

// RenderPNG draws the chart server side.
func (c *Chart) RenderPNG(w io.Writer, width, height int) error {
	if c.Destroyed() {
		return ErrDestroyed
	}
	if len(c.Data) == 0 {
		return ErrNoData
	}

	var err error
	switch c.Kind {
	case KindBar:
		var max int64 = 1
		for _, v := range c.Data {
			if v > max {
				max = v
			}
		}
		bar := gochart.BarChart{
			Width:    width,
			Height:   height,
			BarWidth: width / (2*len(c.Data) + 1),
			Background: gochart.Style{
				Padding: gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
			},
			YAxis: gochart.YAxis{
				Range: &gochart.ContinuousRange{Min: 0, Max: float64(max)},
			},
			Bars: c.values(),
		}
		err = bar.Render(gochart.PNG, w)
	default:
		var sum int64
		for _, v := range c.Data {
			sum += v
		}
		if sum == 0 {
			return ErrNoData
		}
		pie := gochart.PieChart{
			Width:  width,
			Height: height,
			Values: c.values(),
		}
		err = pie.Render(gochart.PNG, w)
	}
	if err != nil {
		return fmt.Errorf("render %s chart: %w", c.Kind, err)
	}
	return nil
}
