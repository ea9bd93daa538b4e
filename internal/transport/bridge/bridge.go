// Package bridge exposes the document store to in-process callers with the
// same semantics as the HTTP data endpoints.
package bridge

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"perftrack/internal/domain/document"
)

type DocumentStore interface {
	Load(ctx context.Context) document.Document
	SaveRaw(ctx context.Context, payload []byte) document.SaveResult
}

type Bridge struct {
	Store DocumentStore
	Log   *zap.Logger
}

func New(store DocumentStore, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{Store: store, Log: log.Named("bridge")}
}

func (b *Bridge) FetchData(ctx context.Context) document.Document {
	return b.Store.Load(ctx)
}

// SaveData persists payload through the same path as POST /api/save. Raw
// JSON is passed through untouched; any other value is encoded first.
func (b *Bridge) SaveData(ctx context.Context, payload any) document.SaveResult {
	var raw []byte
	switch v := payload.(type) {
	case []byte:
		raw = v
	case json.RawMessage:
		raw = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			b.Log.Warn("save payload not encodable", zap.Error(err))
			return document.SaveResult{Success: false, Message: document.MessageInvalid}
		}
		raw = encoded
	}
	return b.Store.SaveRaw(ctx, raw)
}
