package reports

import (
	"context"

	"perftrack/internal/domain/document"
)

type DocumentStore interface {
	Load(ctx context.Context) document.Document
}
