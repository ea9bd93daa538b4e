package performance

import (
	"context"

	"perftrack/internal/domain/document"
)

type DocumentStore interface {
	Load(ctx context.Context) document.Document
	Update(ctx context.Context, mutate func(*document.Document) error) error
}
