package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/document"
	"perftrack/internal/domain/performance"
	"perftrack/internal/domain/tasks"
	"perftrack/internal/transport/bridge"
)

type harness struct {
	store *document.Store
	dir   string
	out   *bytes.Buffer
	in    *strings.Reader
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	store := document.NewStore(document.NewFileBackend(dir, "db.json"), zap.NewNop(),
		document.WithDefaultAdminPassword("admin123"))
	return &harness{store: store, dir: dir, out: &bytes.Buffer{}, in: strings.NewReader("")}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	var grammar CLI
	parser, err := Parser(&grammar, kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)

	log := zap.NewNop()
	h.out.Reset()
	return kctx.Run(&Context{
		Ctx:         context.Background(),
		Bridge:      bridge.New(h.store, log),
		Performance: performance.NewService(h.store, log, time.UTC),
		Tasks:       tasks.NewService(h.store, log, time.UTC),
		Auth:        auth.NewService(h.store, log, "secret", time.Hour),
		In:          h.in,
		Out:         h.out,
	})
}

func TestSaveFromStdinThenFetch(t *testing.T) {
	h := newHarness(t)
	h.in = strings.NewReader(`{"employees":[{"id":"e1","name":"Asha"}],"categories":["Teamwork"]}`)

	require.NoError(t, h.run(t, "save"))
	assert.Contains(t, h.out.String(), document.MessageSaved)

	require.NoError(t, h.run(t, "fetch", "--no-pretty"))
	var doc map[string]any
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &doc))
	employees, ok := doc["employees"].([]any)
	require.True(t, ok)
	assert.Len(t, employees, 1)
	assert.Equal(t, []any{"Teamwork"}, doc["categories"])
}

func TestSaveRejectsInvalidPayload(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(h.dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	err := h.run(t, "save", path)
	require.Error(t, err)
	assert.Equal(t, document.MessageInvalid, err.Error())
}

func TestFetchToFile(t *testing.T) {
	h := newHarness(t)
	target := filepath.Join(h.dir, "export.json")

	require.NoError(t, h.run(t, "fetch", "-o", target))
	assert.Contains(t, h.out.String(), target)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestLeaderboardTable(t *testing.T) {
	h := newHarness(t)
	res := h.store.SaveRaw(context.Background(), []byte(`{"employees":[{"id":"e1","name":"Asha"},{"id":"e2","name":"Ben"}]}`))
	require.True(t, res.Success)

	require.NoError(t, h.run(t, "leaderboard"))
	out := h.out.String()
	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Asha")
	assert.Contains(t, out, "Ben")

	require.NoError(t, h.run(t, "leaderboard", "--json", "-n", "1"))
	var standings []performance.Standing
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &standings))
	assert.Len(t, standings, 1)
}

func TestLeaderboardEmpty(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "leaderboard"))
	assert.Contains(t, h.out.String(), "No active employees")
}

func TestAutoPopulateIsIdempotent(t *testing.T) {
	h := newHarness(t)
	res := h.store.SaveRaw(context.Background(), []byte(`{
		"employees":[{"id":"e1","name":"Asha"}],
		"taskTemplates":[{"id":"t1","name":"Stand-up","assignedTo":"e1","isActive":true}]
	}`))
	require.True(t, res.Success)

	require.NoError(t, h.run(t, "autopopulate"))
	assert.Contains(t, h.out.String(), "Created 1 task(s)")

	require.NoError(t, h.run(t, "autopopulate"))
	assert.Contains(t, h.out.String(), "Created 0 task(s)")
}

func TestSetAndVerifyPassword(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "verify-password", "admin123"))
	assert.Contains(t, h.out.String(), "plaintext")

	require.NoError(t, h.run(t, "set-password", "s3cret-pass"))
	assert.Contains(t, h.out.String(), "updated")

	require.NoError(t, h.run(t, "verify-password", "s3cret-pass"))
	assert.Contains(t, h.out.String(), "sha256")

	err := h.run(t, "verify-password", "admin123")
	assert.ErrorIs(t, err, errPasswordMismatch)

	err = h.run(t, "set-password", "abc")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}
