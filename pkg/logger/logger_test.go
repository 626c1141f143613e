package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCtxFallsBackToBaseLogger(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	tagged := L.With("request_id", "abc")
	ctx := InjectLogger(context.Background(), tagged)
	assert.Same(t, tagged, WithCtx(ctx))
}

func TestMongoHandlerDocument(t *testing.T) {
	base := &MongoHandler{}
	h := base.WithAttrs([]slog.Attr{slog.String("request_id", "rid-1"), slog.String("route", "/signup")}).
		WithGroup("user").(*MongoHandler)

	r := slog.NewRecord(time.Unix(0, 0), slog.LevelWarn, "signup rejected", 0)
	r.AddAttrs(slog.String("username", "jdoe"))

	doc := h.document(r)

	assert.Equal(t, "WARN", doc.Level)
	assert.Equal(t, "signup rejected", doc.Msg)
	assert.Equal(t, "rid-1", doc.RequestID)
	assert.Equal(t, "jdoe", doc.Attrs["user.username"])
	assert.Equal(t, "/signup", doc.Attrs["user.route"])
	assert.Empty(t, base.attrs, "WithAttrs must not mutate the receiver")
}

func TestMongoHandlerDocumentWithoutAttrs(t *testing.T) {
	h := &MongoHandler{}
	doc := h.document(slog.NewRecord(time.Now(), slog.LevelInfo, "boot", 0))
	assert.Nil(t, doc.Attrs)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(m).With("svc", "eduportal")

	log.Info("hello")
	log.Error("boom")

	require.Contains(t, a.String(), "msg=hello")
	assert.Contains(t, a.String(), "msg=boom")
	assert.NotContains(t, b.String(), "msg=hello")
	assert.Contains(t, b.String(), "svc=eduportal")
}
