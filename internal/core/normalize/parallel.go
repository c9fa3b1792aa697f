package normalize

import (
	"context"
	"sync"

	"github.com/baditaflorin/go_complaint_classifier/internal/core/domain"
)

// Constants for parallel processing
const (
	// MaxJobQueueSize limits the number of pending jobs
	MaxJobQueueSize = 64
)

// recordJob is one record handed to a worker, tagged with its input
// position so output order can be preserved.
type recordJob struct {
	Index  int
	Record domain.Record
}

// runParallel fans records out across a worker pool. Workers write to
// disjoint slots of the output slice, so the only synchronization is the
// wait group and the job channel.
func (e *Engine) runParallel(ctx context.Context, records []domain.Record) ([]domain.NormalizedRecord, error) {
	out := make([]domain.NormalizedRecord, len(records))

	jobs := make(chan recordJob, MaxJobQueueSize)
	errOnce := make(chan error, 1)

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					select {
					case errOnce <- ctx.Err():
					default:
					}
					return
				default:
					// Continue processing
				}

				out[job.Index] = e.normalizeOne(job.Record)
			}
		}()
	}

	// Feed jobs; stop early if a worker observed cancellation.
feed:
	for i, rec := range records {
		select {
		case jobs <- recordJob{Index: i, Record: rec}:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)

	wg.Wait()

	select {
	case err := <-errOnce:
		e.logger.Warn("Parallel normalization cancelled", "error", err)
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
