package mxf

import (
	"context"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"mxf-reader/internal/logging"
	"mxf-reader/pkg/errorlog"
	"mxf-reader/pkg/resource"
)

// defaultDecodeWorkers is conservative for NFS-mounted track files; operators
// can override with the DECODE_WORKERS environment variable.
func defaultDecodeWorkers() int {
	workers := 3
	if override := os.Getenv("DECODE_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			workers = count
		}
	}
	return workers
}

// DecodeResult is the outcome of one decode session.
type DecodeResult struct {
	// Resource is the track file this result describes.
	Resource resource.Resource
	// Metadata is the decoded graph; possibly partial when Err is set.
	Metadata *HeaderMetadata
	// Log holds the session's diagnostics.
	Log *errorlog.Log
	// Err is the fatal framing error that aborted the session, if any.
	Err error
}

// DecodeAll decodes independent track files concurrently. Each resource
// gets its own session with its own diagnostic log, so one malformed
// artifact never aborts the others. Results are returned in input order.
// numWorkers <= 0 selects the default.
func DecodeAll(ctx context.Context, resources []resource.Resource, numWorkers int) []DecodeResult {
	if numWorkers <= 0 {
		numWorkers = defaultDecodeWorkers()
	}
	if numWorkers > len(resources) {
		numWorkers = len(resources)
	}

	logging.Info("decoding %d track files with %d workers", len(resources), numWorkers)
	startTime := time.Now()

	results := make([]DecodeResult, len(resources))
	jobs := make(chan int)

	var decoded, failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				log := errorlog.NewLog()
				hm, err := ReadHeaderMetadata(ctx, resources[idx], log)
				results[idx] = DecodeResult{
					Resource: resources[idx],
					Metadata: hm,
					Log:      log,
					Err:      err,
				}
				if err != nil {
					failed.Add(1)
				} else {
					decoded.Add(1)
				}
			}
		}()
	}

	for idx := range resources {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			results[idx] = DecodeResult{
				Resource: resources[idx],
				Log:      errorlog.NewLog(),
				Err:      ctx.Err(),
			}
			failed.Add(1)
		}
	}
	close(jobs)
	wg.Wait()

	logging.Info("decode complete: %d ok, %d aborted in %v",
		decoded.Load(), failed.Load(), time.Since(startTime))
	return results
}
