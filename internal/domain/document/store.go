package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

const DefaultMaxBytes int64 = 50 * 1024 * 1024

const (
	MessageSaved         = "Data saved successfully"
	MessageSaveFailed    = "Failed to save data"
	MessageTooLarge      = "Data too large"
	MessageSecurityError = "Security error"
	MessageInvalid       = "Invalid payload"
)

var ErrSaveFailed = errors.New("document save failed")

// SaveResult is the structured outcome of a write. Writes never return
// errors to the transport layer.
type SaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Option func(*Store)

func WithMaxBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

func WithDefaultAdminPassword(password string) Option {
	return func(s *Store) {
		if password != "" {
			s.defaultPassword = password
		}
	}
}

// WithSaveHook registers a callback invoked after every write attempt.
func WithSaveHook(fn func(SaveResult)) Option {
	return func(s *Store) {
		s.onSave = fn
	}
}

// Store reads and writes the whole document. Writes within one process are
// serialized; the backend keeps readers from seeing partial writes.
type Store struct {
	backend         Backend
	log             *zap.Logger
	maxBytes        int64
	defaultPassword string
	onSave          func(SaveResult)

	mu sync.Mutex
}

func NewStore(backend Backend, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend:         backend,
		log:             log.Named("document"),
		maxBytes:        DefaultMaxBytes,
		defaultPassword: DefaultAdminPassword,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Location() string {
	return s.backend.Location()
}

func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Default returns the document a fresh store starts with.
func (s *Store) Default() Document {
	return Default(s.defaultPassword)
}

// Load returns the persisted document. A missing document is created with
// defaults; unreadable, corrupt or oversized content yields the defaults
// without touching what is stored.
func (s *Store) Load(ctx context.Context) Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) Document {
	data, err := s.backend.Read(ctx, s.maxBytes)
	switch {
	case errors.Is(err, ErrNotFound):
		doc := s.Default()
		if res := s.persist(ctx, doc); !res.Success {
			s.log.Warn("document init failed", zap.String("location", s.backend.Location()), zap.String("message", res.Message))
		} else {
			s.log.Info("document initialized", zap.String("location", s.backend.Location()))
		}
		return doc
	case errors.Is(err, ErrTooLarge):
		s.log.Error("document too large, using defaults", zap.String("location", s.backend.Location()), zap.Int64("limit", s.maxBytes))
		return s.Default()
	case errors.Is(err, ErrUnsafePath):
		s.log.Error("refusing to read from unsafe path", zap.String("location", s.backend.Location()))
		return s.Default()
	case err != nil:
		s.log.Error("document read failed, using defaults", zap.String("location", s.backend.Location()), zap.Error(err))
		return s.Default()
	}

	doc, err := Decode(data, s.defaultPassword, s.log)
	if err != nil {
		s.log.Error("document corrupt, using defaults", zap.String("location", s.backend.Location()), zap.Error(err))
		return s.Default()
	}
	return doc
}

// Save merges patch over the persisted document and writes the result.
func (s *Store) Save(ctx context.Context, patch Patch) SaveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.load(ctx)
	patch.Apply(&current)
	return s.persist(ctx, current)
}

// SaveRaw is Save for a JSON payload received from a client.
func (s *Store) SaveRaw(ctx context.Context, payload []byte) SaveResult {
	if int64(len(payload)) > s.maxBytes {
		s.log.Error("save payload too large", zap.Int("bytes", len(payload)), zap.Int64("limit", s.maxBytes))
		return s.report(SaveResult{Success: false, Message: MessageTooLarge})
	}
	patch, err := ParsePatch(payload, s.log)
	if err != nil {
		s.log.Warn("save payload rejected", zap.Error(err))
		return s.report(SaveResult{Success: false, Message: MessageInvalid})
	}
	return s.Save(ctx, patch)
}

// Update loads the document, applies mutate and persists the whole result.
// If mutate fails nothing is written and its error is returned unchanged.
func (s *Store) Update(ctx context.Context, mutate func(*Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load(ctx)
	if err := mutate(&doc); err != nil {
		return err
	}
	res := s.persist(ctx, doc)
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrSaveFailed, res.Message)
	}
	return nil
}

func (s *Store) persist(ctx context.Context, doc Document) SaveResult {
	doc.Normalize()
	if dropped := doc.dropAdminTaskReports(); dropped > 0 {
		s.log.Warn("ignored task incomplete reports filed by admin", zap.Int("count", dropped))
	}
	if collapsed := doc.collapseMonthlyLeaves(); collapsed > 0 {
		s.log.Warn("collapsed duplicate monthly leave records", zap.Int("count", collapsed))
	}

	data, err := encode(doc)
	if err != nil {
		s.log.Error("document encode failed", zap.Error(err))
		return s.report(SaveResult{Success: false, Message: MessageSaveFailed})
	}
	if int64(len(data)) > s.maxBytes {
		s.log.Error("document too large to write", zap.Int("bytes", len(data)), zap.Int64("limit", s.maxBytes))
		return s.report(SaveResult{Success: false, Message: MessageTooLarge})
	}
	if err := s.backend.Write(ctx, data); err != nil {
		if errors.Is(err, ErrUnsafePath) {
			s.log.Error("refusing to write to unsafe path", zap.String("location", s.backend.Location()))
			return s.report(SaveResult{Success: false, Message: MessageSecurityError})
		}
		s.log.Error("document write failed", zap.String("location", s.backend.Location()), zap.Error(err))
		return s.report(SaveResult{Success: false, Message: MessageSaveFailed})
	}
	return s.report(SaveResult{Success: true, Message: MessageSaved})
}

func (s *Store) report(res SaveResult) SaveResult {
	if s.onSave != nil {
		s.onSave(res)
	}
	return res
}

func encode(doc Document) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return SanitizeJSON(raw)
}
