package workermw_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goto/ticketsearch/pkg/worker"
	"github.com/goto/ticketsearch/pkg/worker/mocks"
	"github.com/goto/ticketsearch/pkg/worker/workermw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader sdkmetric.Reader) map[string]metricdata.Histogram[float64] {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	histograms := make(map[string]metricdata.Histogram[float64])
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if h, ok := m.Data.(metricdata.Histogram[float64]); ok {
				histograms[m.Name] = h
			}
		}
	}
	return histograms
}

func TestJobProcessorInstrumentation(t *testing.T) {
	ctx := context.Background()

	t.Run("Enqueue", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

		job1, err := worker.NewJob(worker.JobSpec{Type: "index-record"})
		require.NoError(t, err)
		job2, err := worker.NewJob(worker.JobSpec{Type: "index-record"})
		require.NoError(t, err)

		processor := mocks.NewJobProcessor(t)
		processor.EXPECT().Enqueue(ctx, job1, job2).Return(errors.New("db down"))

		p := workermw.WithMeter(meter)(processor)
		assert.EqualError(t, p.Enqueue(ctx, job1, job2), "db down")

		h, ok := collect(t, reader)["ticketsearch.worker.jobs.enqueue.duration"]
		require.True(t, ok)
		require.Len(t, h.DataPoints, 1)
		assert.EqualValues(t, 1, h.DataPoints[0].Count)

		types, ok := h.DataPoints[0].Attributes.Value("job.types")
		require.True(t, ok)
		assert.Equal(t, []string{"index-record"}, types.AsStringSlice())
		success, ok := h.DataPoints[0].Attributes.Value("operation.success")
		require.True(t, ok)
		assert.False(t, success.AsBool())
	})

	t.Run("Process", func(t *testing.T) {
		reader := sdkmetric.NewManualReader()
		meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

		job, err := worker.NewJob(worker.JobSpec{Type: "delete-record", RunAt: time.Now().Add(-time.Second)})
		require.NoError(t, err)

		processor := mocks.NewJobProcessor(t)
		processor.EXPECT().
			Process(ctx, []string{"delete-record"}, mock.Anything).
			RunAndReturn(func(ctx context.Context, types []string, fn worker.JobExecutorFunc) error {
				result := fn(ctx, job)
				assert.Equal(t, worker.StatusDone, result.Status)
				return nil
			})

		p := workermw.WithMeter(meter)(processor)
		err = p.Process(ctx, []string{"delete-record"}, func(ctx context.Context, job worker.Job) worker.Job {
			job.AttemptsDone++
			job.Status = worker.StatusDone
			return job
		})
		require.NoError(t, err)

		histograms := collect(t, reader)

		latency, ok := histograms["ticketsearch.worker.job.dequeue.latency"]
		require.True(t, ok)
		require.Len(t, latency.DataPoints, 1)
		assert.GreaterOrEqual(t, latency.DataPoints[0].Sum, float64(time.Second/time.Millisecond))

		durn, ok := histograms["ticketsearch.worker.job.process.duration"]
		require.True(t, ok)
		require.Len(t, durn.DataPoints, 1)
		status, ok := durn.DataPoints[0].Attributes.Value("job.status")
		require.True(t, ok)
		assert.Equal(t, "done", status.AsString())
	})
}
