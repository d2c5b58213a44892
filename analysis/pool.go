package analysis

import (
	"context"
	"runtime"
	"sync"

	"github.com/soundcrate/mixplan/logging"
)

// Job is one track queued for analysis
type Job struct {
	TrackID string
	Signal  AudioSignal
}

// JobResult pairs a job with its analysis outcome
type JobResult struct {
	TrackID string
	Result  *AnalysisResult
	Err     error
}

// Pool analyzes tracks in parallel with a bounded worker count. Stages within
// one track stay sequential; only distinct tracks overlap. The embedding
// extractor serializes its own model access, so workers may share it safely.
type Pool struct {
	analyzer *TrackAnalyzer
	workers  int
	logger   logging.Logger
}

// NewPool creates a pool around the given analyzer. A non-positive worker
// count defaults to the number of CPUs.
func NewPool(analyzer *TrackAnalyzer, workers int) *Pool {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		analyzer: analyzer,
		workers:  workers,
		logger:   logging.WithFields(logging.Fields{"component": "analysis_pool"}),
	}
}

// Run analyzes all jobs and returns results in job order. The progress
// callback may be invoked from multiple goroutines concurrently; events for
// any single track remain in pipeline order. Cancelling ctx stops scheduling
// new tracks and cancels in-flight ones; completed tracks keep their results.
func (p *Pool) Run(ctx context.Context, jobs []Job, progress func(StageEvent)) []JobResult {
	results := make([]JobResult, len(jobs))

	jobCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				job := jobs[idx]
				res, err := p.analyzer.Analyze(ctx, job.TrackID, job.Signal, progress)
				results[idx] = JobResult{TrackID: job.TrackID, Result: res, Err: err}
			}
		}()
	}

	for idx := range jobs {
		select {
		case <-ctx.Done():
			results[idx] = JobResult{TrackID: jobs[idx].TrackID, Err: ctx.Err()}
			continue
		case jobCh <- idx:
		}
	}
	close(jobCh)
	wg.Wait()

	return results
}
