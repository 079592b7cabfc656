package statsd

import (
	"errors"
	"testing"
	"time"

	"github.com/goto/salt/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricRender(t *testing.T) {
	m := &Metric{name: "search.backend", withInfluxTag: true}
	m.Tag("backend", "direct-scan").Tag("cached", "false").Success()

	name, tags := m.render()
	assert.Equal(t, "search.backend,backend=direct-scan,cached=false,success=true", name)
	assert.Nil(t, tags)

	m.withInfluxTag = false
	name, tags = m.render()
	assert.Equal(t, "search.backend", name)
	assert.Equal(t, []string{"backend:direct-scan", "cached:false", "success:true"}, tags)
}

func TestMetricSuccessIf(t *testing.T) {
	m := (&Metric{name: "x"}).SuccessIf(errors.New("boom"))
	assert.Equal(t, "false", m.tags["success"])

	m = (&Metric{name: "x"}).SuccessIf(nil)
	assert.Equal(t, "true", m.tags["success"])
}

func TestMetricPublish(t *testing.T) {
	published := make(chan string, 1)
	m := &Metric{
		name:          "cache.hit",
		withInfluxTag: true,
		publishFunc: func(name string, tags []string, rate float64) error {
			published <- name
			return nil
		},
	}
	m.Tag("scope", "3").Publish()

	select {
	case name := <-published:
		assert.Equal(t, "cache.hit,scope=3", name)
	case <-time.After(time.Second):
		t.Fatal("metric was not published")
	}
}

func TestNilReporter(t *testing.T) {
	var sd *Reporter
	assert.NotPanics(t, func() {
		sd.Incr("a").Tag("k", "v").Success().Publish()
		sd.Timing("b", time.Second).Publish()
		sd.Close()
	})
}

func TestDisabledReporter(t *testing.T) {
	sd, err := Init(log.NewNoop(), Config{Enabled: false})
	require.NoError(t, err)

	m := sd.Gauge("index.size", 12)
	require.NotNil(t, m)
	assert.NoError(t, m.publishFunc("index.size", nil, 1))
	assert.NotPanics(t, sd.Close)
}
