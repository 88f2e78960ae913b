package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkimaro/invoice-extractor/constants"
	"github.com/jkimaro/invoice-extractor/internal/entity"
)

type fakeExtractor struct {
	mu    sync.Mutex
	calls int
	res   entity.ExtractionResult
}

func (f *fakeExtractor) Extract(ctx context.Context, fileBytes []byte) entity.ExtractionResult {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return entity.ExtractionResult{
			Success:   false,
			ErrorKind: constants.ErrorKindOCRFailed,
			Message:   err.Error(),
		}
	}
	res := f.res
	res.RawText = string(fileBytes)
	return res
}

type resultRecorder struct {
	mu      sync.Mutex
	results map[uuid.UUID]entity.ExtractionResult
}

func newResultRecorder() *resultRecorder {
	return &resultRecorder{results: make(map[uuid.UUID]entity.ExtractionResult)}
}

func (r *resultRecorder) sink(job Job, res entity.ExtractionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[job.ID] = res
}

func (r *resultRecorder) get(id uuid.UUID) (entity.ExtractionResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.results[id]
	return res, ok
}

func TestExtractQueueProcessesAllJobs(t *testing.T) {
	ext := &fakeExtractor{res: entity.ExtractionResult{Success: true, OCRAvailable: true}}
	rec := newResultRecorder()
	q := NewExtractQueue(ext, rec.sink, nil, WithWorkers(3), WithQueueSize(16))

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = Job{ID: uuid.New(), FileBytes: []byte{byte('a' + i)}, SubmittedAt: time.Now()}
		require.NoError(t, q.Enqueue(context.Background(), jobs[i]))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	for _, job := range jobs {
		res, ok := rec.get(job.ID)
		require.True(t, ok, "missing result for job %s", job.ID)
		assert.True(t, res.Success)
		assert.Equal(t, string(job.FileBytes), res.RawText)
	}
	assert.Equal(t, 10, ext.calls)
}

func TestExtractQueueDeliversFailures(t *testing.T) {
	ext := &fakeExtractor{res: entity.ExtractionResult{
		Success:   false,
		ErrorKind: constants.ErrorKindInvalidImage,
	}}
	rec := newResultRecorder()
	q := NewExtractQueue(ext, rec.sink, nil, WithWorkers(1))

	job := Job{ID: uuid.New(), FileBytes: []byte("not an image")}
	require.NoError(t, q.Enqueue(context.Background(), job))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	res, ok := rec.get(job.ID)
	require.True(t, ok)
	assert.False(t, res.Success)
	assert.Equal(t, constants.ErrorKindInvalidImage, res.ErrorKind)
}

func TestExtractQueueEnqueueAfterShutdownIsDropped(t *testing.T) {
	ext := &fakeExtractor{res: entity.ExtractionResult{Success: true}}
	rec := newResultRecorder()
	q := NewExtractQueue(ext, rec.sink, nil, WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	job := Job{ID: uuid.New()}
	require.NoError(t, q.Enqueue(context.Background(), job))

	_, ok := rec.get(job.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, ext.calls)
}

func TestExtractQueueShutdownIsIdempotent(t *testing.T) {
	ext := &fakeExtractor{res: entity.ExtractionResult{Success: true}}
	q := NewExtractQueue(ext, nil, nil, WithWorkers(2))

	ctx := context.Background()
	q.Shutdown(ctx)
	q.Shutdown(ctx) // second call must not close the channel again
}

func TestExtractQueueNilSink(t *testing.T) {
	ext := &fakeExtractor{res: entity.ExtractionResult{Success: true}}
	q := NewExtractQueue(ext, nil, nil, WithWorkers(1))

	require.NoError(t, q.Enqueue(context.Background(), Job{ID: uuid.New(), FileBytes: []byte("x")}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, 1, ext.calls)
}
