// Package async offers a bounded worker queue for serving contexts, so OCR
// latency never stalls a request-handling goroutine. Each job is independent
// and stateless; no ordering is guaranteed between documents.
package async

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jkimaro/invoice-extractor/internal/entity"
)

// Job is one uploaded document awaiting extraction.
type Job struct {
	ID          uuid.UUID
	FileBytes   []byte
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Extractor is satisfied by extract.Service.
type Extractor interface {
	Extract(ctx context.Context, fileBytes []byte) entity.ExtractionResult
}

// ResultSink receives every finished envelope, success or not.
type ResultSink func(job Job, res entity.ExtractionResult)
