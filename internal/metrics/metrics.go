// Package metrics provides the stopwatch wrappers and aggregate
// compilation metrics a run can optionally collect (spec §4.L).
package metrics

import "time"

// StageMetric records one timed stage: a source fetch, a transformation
// pass, or any other named unit of work.
type StageMetric struct {
	Name           string
	DurationMs     float64
	ItemCount      *int
	ItemsPerSecond *float64
}

func newStageMetric(name string, d time.Duration, itemCount int, hasCount bool) StageMetric {
	m := StageMetric{Name: name, DurationMs: float64(d.Microseconds()) / 1000.0}
	if hasCount {
		m.ItemCount = &itemCount
		if d > 0 {
			rate := float64(itemCount) / d.Seconds()
			m.ItemsPerSecond = &rate
		}
	}
	return m
}

// TimeSync runs fn, returning its result alongside a StageMetric. itemCount
// of -1 omits the item-count/rate fields.
func TimeSync[T any](name string, itemCount int, fn func() T) (T, StageMetric) {
	start := time.Now()
	result := fn()
	return result, newStageMetric(name, time.Since(start), itemCount, itemCount >= 0)
}

// TimeAsync is TimeSync's counterpart for a function that can return an
// error, used around fallible stages (fetch, transformation application).
func TimeAsync[T any](name string, itemCount int, fn func() (T, error)) (T, StageMetric, error) {
	start := time.Now()
	result, err := fn()
	return result, newStageMetric(name, time.Since(start), itemCount, itemCount >= 0), err
}

// CompilationMetrics aggregates every stage recorded during one
// compilation run.
type CompilationMetrics struct {
	TotalDurationMs float64
	Stages          []StageMetric
	SourceCount     int
	RuleCount       int
	OutputRuleCount int
}

// Collector accumulates StageMetrics across a run and produces the final
// CompilationMetrics snapshot.
type Collector struct {
	start  time.Time
	stages []StageMetric
}

// NewCollector starts a new metrics collection window.
func NewCollector() *Collector {
	return &Collector{start: time.Now()}
}

// Record appends a completed stage's metric.
func (c *Collector) Record(m StageMetric) {
	c.stages = append(c.stages, m)
}

// Finish produces the aggregate CompilationMetrics.
func (c *Collector) Finish(sourceCount, ruleCount, outputRuleCount int) CompilationMetrics {
	return CompilationMetrics{
		TotalDurationMs: float64(time.Since(c.start).Microseconds()) / 1000.0,
		Stages:          c.stages,
		SourceCount:     sourceCount,
		RuleCount:       ruleCount,
		OutputRuleCount: outputRuleCount,
	}
}
