package workermw

import (
	"context"
	"sort"
	"time"

	"github.com/goto/ticketsearch/pkg/worker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	enqueueDurnHistogram    = "ticketsearch.worker.jobs.enqueue.duration"
	dequeueLatencyHistogram = "ticketsearch.worker.job.dequeue.latency"
	processDurnHistogram    = "ticketsearch.worker.job.process.duration"
)

const (
	attrJobTypes     = attribute.Key("job.types")
	attrJobType      = attribute.Key("job.type")
	attrOpSuccess    = attribute.Key("operation.success")
	attrJobAttemptNo = attribute.Key("job.attempt_number")
	attrJobStatus    = attribute.Key("job.status")
)

// JobProcessorInstrumentation records enqueue and processing durations of
// index maintenance jobs along with how long ready jobs waited in the queue.
type JobProcessorInstrumentation struct {
	next worker.JobProcessor

	enqueueDurn    metric.Float64Histogram
	dequeueLatency metric.Float64Histogram
	processDurn    metric.Float64Histogram
}

// WithJobProcessorInstrumentation uses the global meter provider.
func WithJobProcessorInstrumentation() func(worker.JobProcessor) worker.JobProcessor {
	return WithMeter(otel.Meter("github.com/goto/ticketsearch/pkg/worker/workermw"))
}

func WithMeter(meter metric.Meter) func(worker.JobProcessor) worker.JobProcessor {
	enqueueDurn, err := meter.Float64Histogram(enqueueDurnHistogram, metric.WithUnit("ms"))
	handleOtelErr(err)

	dequeueLatency, err := meter.Float64Histogram(dequeueLatencyHistogram, metric.WithUnit("ms"))
	handleOtelErr(err)

	processDurn, err := meter.Float64Histogram(processDurnHistogram, metric.WithUnit("ms"))
	handleOtelErr(err)

	return func(next worker.JobProcessor) worker.JobProcessor {
		return JobProcessorInstrumentation{
			next:           next,
			enqueueDurn:    enqueueDurn,
			dequeueLatency: dequeueLatency,
			processDurn:    processDurn,
		}
	}
}

func (mw JobProcessorInstrumentation) Enqueue(ctx context.Context, jobs ...worker.Job) (err error) {
	defer func(start time.Time) {
		mw.enqueueDurn.Record(ctx, sinceMillis(start), metric.WithAttributes(
			attrJobTypes.StringSlice(jobTypes(jobs)),
			attrOpSuccess.Bool(err == nil),
		))
	}(time.Now())

	return mw.next.Enqueue(ctx, jobs...)
}

func (mw JobProcessorInstrumentation) Process(ctx context.Context, types []string, fn worker.JobExecutorFunc) error {
	wrappedFn := func(ctx context.Context, job worker.Job) (resultJob worker.Job) {
		start := time.Now()
		mw.dequeueLatency.Record(ctx, sinceMillis(job.RunAt), metric.WithAttributes(
			attrJobType.String(job.Type),
		))
		defer func() {
			mw.processDurn.Record(ctx, sinceMillis(start), metric.WithAttributes(
				attrJobType.String(job.Type),
				attrJobAttemptNo.Int(resultJob.AttemptsDone),
				attrJobStatus.String(jobStatus(resultJob)),
				attrOpSuccess.Bool(resultJob.Status == worker.StatusDone),
			))
		}()
		return fn(ctx, job)
	}
	return mw.next.Process(ctx, types, wrappedFn)
}

func (mw JobProcessorInstrumentation) Stats(ctx context.Context) ([]worker.JobTypeStats, error) {
	return mw.next.Stats(ctx)
}

func sinceMillis(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}

// jobTypes lists the distinct types of a batch in sorted order.
func jobTypes(jobs []worker.Job) []string {
	seen := make(map[string]struct{}, len(jobs))
	types := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := seen[j.Type]; ok {
			continue
		}
		seen[j.Type] = struct{}{}
		types = append(types, j.Type)
	}
	sort.Strings(types)
	return types
}

func jobStatus(j worker.Job) string {
	if j.Status == worker.StatusPending {
		return "retry"
	}
	return string(j.Status)
}

func handleOtelErr(err error) {
	if err != nil {
		otel.Handle(err)
	}
}
