package statsd

import (
	"sort"
	"strings"

	"github.com/goto/salt/log"
)

// Metric is a single statsd sample being built. All methods accept a nil
// receiver.
type Metric struct {
	logger        log.Logger
	name          string
	rate          float64
	tags          map[string]string
	withInfluxTag bool
	publishFunc   func(name string, tags []string, rate float64) error
}

func (m *Metric) Success() *Metric {
	return m.Tag("success", "true")
}

func (m *Metric) Failure(err error) *Metric {
	return m.Tag("success", "false")
}

// SuccessIf tags the metric from the outcome of an operation.
func (m *Metric) SuccessIf(err error) *Metric {
	if err != nil {
		return m.Failure(err)
	}
	return m.Success()
}

func (m *Metric) Tag(key string, val string) *Metric {
	if m == nil {
		return nil
	}
	if m.tags == nil {
		m.tags = map[string]string{}
	}
	m.tags[key] = val
	return m
}

// Publish sends the metric asynchronously. Intended to be used with defer.
func (m *Metric) Publish() {
	if m == nil || m.publishFunc == nil {
		return
	}

	name, tags := m.render()
	go func() {
		if err := m.publishFunc(name, tags, m.rate); err != nil && m.logger != nil {
			m.logger.Warn("failed to publish metric", "name", name, "err", err)
		}
	}()
}

// render returns the metric name and datadog tags. With the influx format
// the tags are folded into the name in key order.
func (m *Metric) render() (string, []string) {
	keys := make([]string, 0, len(m.tags))
	for k := range m.tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if m.withInfluxTag {
		var b strings.Builder
		b.WriteString(m.name)
		for _, k := range keys {
			b.WriteString("," + k + "=" + m.tags[k])
		}
		return b.String(), nil
	}

	tags := make([]string, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, k+":"+m.tags[k])
	}
	return m.name, tags
}
