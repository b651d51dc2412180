package resource

import (
	"context"
	"errors"
	"io"
	"os"
	"syscall"
	"time"

	"mxf-reader/internal/logging"
	"mxf-reader/internal/metrics"
)

// FileRetryConfig configures retry behavior for local file operations. Track
// files commonly live on NFS mounts, where a re-exported or rebalanced volume
// surfaces as a stale file handle that clears on retry.
type FileRetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultFileRetryConfig returns sensible defaults for NFS retry behavior.
func DefaultFileRetryConfig() FileRetryConfig {
	return FileRetryConfig{
		MaxRetries:     3,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
	}
}

// FileResource is a Resource backed by a local file. The file size is
// queried once at construction and cached; each range read opens, seeks and
// reads independently, so one instance holds no file descriptor between
// calls.
type FileResource struct {
	path  string
	size  int64
	retry FileRetryConfig
}

// NewFileResource creates a resource over the file at path using default
// retry behavior.
func NewFileResource(path string) (*FileResource, error) {
	return NewFileResourceWithRetry(path, DefaultFileRetryConfig())
}

// NewFileResourceWithRetry creates a resource over the file at path with
// caller-supplied retry behavior for stale NFS handles.
func NewFileResourceWithRetry(path string, retry FileRetryConfig) (*FileResource, error) {
	info, err := statWithRetry(path, retry)
	if err != nil {
		return nil, &ResourceIOError{Op: "stat", Name: path, Err: err}
	}
	return &FileResource{path: path, size: info.Size(), retry: retry}, nil
}

// Path returns the file path this resource reads.
func (r *FileResource) Path() string {
	return r.path
}

// Size returns the file length captured at construction.
func (r *FileResource) Size() int64 {
	return r.size
}

// ReadRange returns a stream over the bytes in [start, end]. The caller must
// close the returned reader to release the file descriptor.
func (r *FileResource) ReadRange(_ context.Context, start, end int64) (io.ReadCloser, error) {
	if err := validateRange(r.size, start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "invalid").Inc()
		return nil, err
	}

	f, err := r.openAt(start)
	if err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "error").Inc()
		return nil, err
	}

	metrics.RangeReadsTotal.WithLabelValues("file", "success").Inc()
	return &fileRangeReader{r: io.LimitReader(f, end-start+1), f: f}, nil
}

// ReadRangeAsBytes materializes the bytes in [start, end].
func (r *FileResource) ReadRangeAsBytes(_ context.Context, start, end int64) ([]byte, error) {
	if err := validateRange(r.size, start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "invalid").Inc()
		return nil, err
	}
	if err := checkInMemory(start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "invalid").Inc()
		return nil, err
	}

	readStart := time.Now()
	f, err := r.openAt(start)
	if err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "error").Inc()
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, end-start+1)
	if _, err := io.ReadFull(f, buf); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("file", "error").Inc()
		return nil, &ResourceIOError{Op: "read", Name: r.path, Err: err}
	}

	metrics.RangeReadsTotal.WithLabelValues("file", "success").Inc()
	metrics.RangeReadBytes.WithLabelValues("file").Observe(float64(len(buf)))
	metrics.RangeReadDuration.WithLabelValues("file").Observe(time.Since(readStart).Seconds())
	return buf, nil
}

// ReadRangeToFile copies the bytes in [start, end] into a new file created in
// dir and returns its path. Intended for ranges too large to materialize.
func (r *FileResource) ReadRangeToFile(ctx context.Context, start, end int64, dir string) (string, error) {
	src, err := r.ReadRange(ctx, start, end)
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.CreateTemp(dir, "range-*")
	if err != nil {
		return "", &ResourceIOError{Op: "open", Name: dir, Err: err}
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(out.Name())
		return "", &ResourceIOError{Op: "read", Name: r.path, Err: err}
	}
	return out.Name(), nil
}

// openAt opens the file and seeks to offset.
func (r *FileResource) openAt(offset int64) (*os.File, error) {
	f, err := openWithRetry(r.path, r.retry)
	if err != nil {
		return nil, &ResourceIOError{Op: "open", Name: r.path, Err: err}
	}
	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		f.Close()
		return nil, &ResourceIOError{Op: "seek", Name: r.path, Err: err}
	}
	return f, nil
}

type fileRangeReader struct {
	r io.Reader
	f *os.File
}

func (fr *fileRangeReader) Read(p []byte) (int, error) {
	return fr.r.Read(p)
}

func (fr *fileRangeReader) Close() error {
	return fr.f.Close()
}

// isNFSStaleError checks if an error is an NFS stale file handle error.
func isNFSStaleError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ESTALE
	}
	return false
}

// statWithRetry performs os.Stat with retry logic for NFS stale file handles.
func statWithRetry(path string, config FileRetryConfig) (os.FileInfo, error) {
	var info os.FileInfo
	err := retryStale("stat", path, config, func() error {
		var err error
		info, err = os.Stat(path)
		return err
	})
	return info, err
}

// openWithRetry performs os.Open with retry logic for NFS stale file handles.
func openWithRetry(path string, config FileRetryConfig) (*os.File, error) {
	var f *os.File
	err := retryStale("open", path, config, func() error {
		var err error
		f, err = os.Open(path)
		return err
	})
	return f, err
}

// retryStale runs op, retrying only on stale NFS handles with capped
// exponential backoff.
func retryStale(operation, path string, config FileRetryConfig, op func() error) error {
	var lastErr error
	backoff := config.InitialBackoff

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err := op()
		if err == nil {
			if attempt > 0 {
				logging.Info("NFS %s succeeded on retry %d for %s", operation, attempt, path)
			}
			return nil
		}

		lastErr = err
		if !isNFSStaleError(err) {
			return err
		}

		// Don't sleep after the last attempt
		if attempt < config.MaxRetries {
			metrics.FileRetriesTotal.WithLabelValues(operation).Inc()
			logging.Debug("NFS %s stale file handle for %s, retrying in %v (attempt %d/%d)",
				operation, path, backoff, attempt+1, config.MaxRetries)
			time.Sleep(backoff)

			backoff *= 2
			if backoff > config.MaxBackoff {
				backoff = config.MaxBackoff
			}
		}
	}

	logging.Warn("NFS %s failed after %d retries for %s: %v", operation, config.MaxRetries, path, lastErr)
	return lastErr
}
