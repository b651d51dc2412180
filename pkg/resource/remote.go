package resource

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"mxf-reader/internal/logging"
	"mxf-reader/internal/metrics"
)

// RemoteResource is a Resource backed by an object in an S3-compatible
// store. The object size is fetched once at construction via a metadata
// probe and cached; each range read is one ranged GET. Transient transport
// failures are retried with capped exponential backoff; definitive answers
// from the store (missing object, unsatisfiable range, access denied) fail
// immediately.
type RemoteResource struct {
	client *minio.Client
	bucket string
	object string
	size   int64
	cfg    RemoteConfig
}

// NewRemoteResource creates a resource over bucket/object, probing the
// object size. The client is private to this instance; no process-wide
// state is mutated.
func NewRemoteResource(ctx context.Context, cfg RemoteConfig, bucket, object string) (*RemoteResource, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, &ResourceIOError{Op: "stat", Name: bucket + "/" + object, Err: err}
	}

	r := &RemoteResource{client: client, bucket: bucket, object: object, cfg: cfg}

	var info minio.ObjectInfo
	err = r.withRetry(ctx, func() error {
		var statErr error
		info, statErr = client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
		return statErr
	})
	if err != nil {
		return nil, &ResourceIOError{Op: "stat", Name: r.name(), Err: err}
	}

	r.size = info.Size
	logging.Debug("remote resource %s: size %d", r.name(), r.size)
	return r, nil
}

// NewRemoteResourceFromLocation creates a resource from an s3://bucket/key
// location string.
func NewRemoteResourceFromLocation(ctx context.Context, cfg RemoteConfig, location string) (*RemoteResource, error) {
	bucket, object, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	return NewRemoteResource(ctx, cfg, bucket, object)
}

// Size returns the object length captured by the construction-time probe.
// It is never re-fetched.
func (r *RemoteResource) Size() int64 {
	return r.size
}

// ReadRange issues one ranged GET for the bytes in [start, end] and returns
// the response stream. The caller must close it.
func (r *RemoteResource) ReadRange(ctx context.Context, start, end int64) (io.ReadCloser, error) {
	if err := validateRange(r.size, start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("remote", "invalid").Inc()
		return nil, err
	}

	var obj *minio.Object
	err := r.withRetry(ctx, func() error {
		o, getErr := r.get(ctx, start, end)
		if getErr != nil {
			return getErr
		}
		obj = o
		return nil
	})
	if err != nil {
		metrics.RangeReadsTotal.WithLabelValues("remote", "error").Inc()
		return nil, &ResourceIOError{Op: "get", Name: r.name(), Err: err}
	}

	metrics.RangeReadsTotal.WithLabelValues("remote", "success").Inc()
	return obj, nil
}

// ReadRangeAsBytes materializes the bytes in [start, end], retrying the
// whole fetch on transient failures.
func (r *RemoteResource) ReadRangeAsBytes(ctx context.Context, start, end int64) ([]byte, error) {
	if err := validateRange(r.size, start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("remote", "invalid").Inc()
		return nil, err
	}
	if err := checkInMemory(start, end); err != nil {
		metrics.RangeReadsTotal.WithLabelValues("remote", "invalid").Inc()
		return nil, err
	}

	readStart := time.Now()
	var buf []byte
	err := r.withRetry(ctx, func() error {
		obj, getErr := r.get(ctx, start, end)
		if getErr != nil {
			return getErr
		}
		defer obj.Close()

		data, readErr := io.ReadAll(obj)
		if readErr != nil {
			return readErr
		}
		if int64(len(data)) != end-start+1 {
			return io.ErrUnexpectedEOF
		}
		buf = data
		return nil
	})
	if err != nil {
		metrics.RangeReadsTotal.WithLabelValues("remote", "error").Inc()
		return nil, &ResourceIOError{Op: "get", Name: r.name(), Err: err}
	}

	metrics.RangeReadsTotal.WithLabelValues("remote", "success").Inc()
	metrics.RangeReadBytes.WithLabelValues("remote").Observe(float64(len(buf)))
	metrics.RangeReadDuration.WithLabelValues("remote").Observe(time.Since(readStart).Seconds())
	return buf, nil
}

// get issues the ranged GET and forces the request so transport errors
// surface here rather than on first read.
func (r *RemoteResource) get(ctx context.Context, start, end int64) (*minio.Object, error) {
	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(start, end); err != nil {
		return nil, err
	}

	obj, err := r.client.GetObject(ctx, r.bucket, r.object, opts)
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// withRetry runs op with capped exponential backoff, retrying only
// transient failures.
func (r *RemoteResource) withRetry(ctx context.Context, op func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.cfg.initialBackoff()
	eb.MaxInterval = r.cfg.maxBackoff()
	eb.MaxElapsedTime = 0

	maxRetries := r.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(maxRetries)), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		if attempt > 0 {
			metrics.RemoteRetriesTotal.Inc()
			logging.Debug("retrying remote request for %s (attempt %d/%d)", r.name(), attempt, maxRetries)
		}
		attempt++

		err := op()
		if err == nil {
			return nil
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// isPermanent reports whether the store gave a definitive answer that a
// retry cannot change.
func isPermanent(err error) bool {
	resp := minio.ToErrorResponse(err)
	switch resp.StatusCode {
	case 400, 403, 404, 412, 416:
		return true
	}
	return false
}

func (r *RemoteResource) name() string {
	return r.bucket + "/" + r.object
}

// newClient builds the per-instance object-store client.
func newClient(cfg RemoteConfig) (*minio.Client, error) {
	endpoint := cfg.Endpoint
	secure := cfg.UseSSL
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, err
		}
		endpoint = u.Host
		secure = u.Scheme == "https"
	}
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}

	var creds *credentials.Credentials
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	} else {
		creds = credentials.NewEnvAWS()
	}

	lookup := minio.BucketLookupAuto
	if cfg.PathStyle {
		lookup = minio.BucketLookupPath
	}

	return minio.New(endpoint, &minio.Options{
		Creds:        creds,
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
}
