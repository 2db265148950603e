package dao

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Counts maps a label to its occurrence count and keeps the order in which
// labels appeared in the JSON object. That order is the display order.
type Counts struct {
	m *orderedmap.OrderedMap[string, int64]
}

func NewCounts() Counts {
	return Counts{m: orderedmap.New[string, int64]()}
}

// Set appends label, or updates it in place if already present.
func (c *Counts) Set(label string, count int64) {
	if c.m == nil {
		c.m = orderedmap.New[string, int64]()
	}
	c.m.Set(label, count)
}

func (c Counts) Get(label string) (int64, bool) {
	if c.m == nil {
		return 0, false
	}
	return c.m.Get(label)
}

func (c Counts) Len() int {
	if c.m == nil {
		return 0
	}
	return c.m.Len()
}

func (c Counts) Labels() []string {
	labels := make([]string, 0, c.Len())
	if c.m == nil {
		return labels
	}
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}
	return labels
}

func (c Counts) Values() []int64 {
	values := make([]int64, 0, c.Len())
	if c.m == nil {
		return values
	}
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		values = append(values, pair.Value)
	}
	return values
}

func (c *Counts) UnmarshalJSON(data []byte) error {
	m := orderedmap.New[string, int64]()
	if !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		if err := json.Unmarshal(data, m); err != nil {
			return err
		}
	}
	c.m = m
	return nil
}

func (c Counts) MarshalJSON() ([]byte, error) {
	if c.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.m)
}
