package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_LevelsAndText(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "text", &buf)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "service", "Gmail")
	log.Info(ctx, "inf", "owner", "john")
	log.Warn(ctx, "wrn", "account", "john@x.com")
	log.Error(ctx, "err", "attempt", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG msg=dbg service=Gmail",
		"level=INFO msg=inf owner=john",
		"level=WARN msg=wrn account=john@x.com",
		"level=ERROR msg=err attempt=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestNew_JSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", "json", &buf)

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "service", "Gmail")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "Gmail", entry["service"])
}

func TestNew_RedactsSecretAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", "json", &buf)

	log.Info(context.Background(), "stored",
		"service", "Gmail",
		"secret", "hunter2pass",
		"Password", "Secr3t!123",
		"master_key", []byte{0xde, 0xad},
		"nonce", "00ff00ff",
	)

	out := buf.String()
	assert.NotContains(t, out, "hunter2pass")
	assert.NotContains(t, out, "Secr3t!123")
	assert.NotContains(t, out, "00ff00ff")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Gmail", entry["service"])
	assert.Equal(t, Redacted, entry["secret"])
	assert.Equal(t, Redacted, entry["Password"])
	assert.Equal(t, Redacted, entry["master_key"])
	assert.Equal(t, Redacted, entry["nonce"])
}

func TestNew_RedactsWithAndGroups(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", "text", &buf)

	child := log.With("owner", "john", "passphrase", "correct horse")
	child.Info(context.Background(), "unlock", slog.Group("auth", slog.String("password", "Secr3t!123"), slog.String("user", "john")))

	out := buf.String()
	assert.NotContains(t, out, "correct horse")
	assert.NotContains(t, out, "Secr3t!123")
	assert.Contains(t, out, "owner=john")
	assert.Contains(t, out, "passphrase="+Redacted)
	assert.Contains(t, out, "auth.password="+Redacted)
	assert.Contains(t, out, "auth.user=john")
}

func TestIsSensitive(t *testing.T) {
	tests := map[string]bool{
		"secret":          true,
		"KEY":             true,
		"auth.passphrase": true,
		"ciphertext":      true,
		"service":         false,
		"keyring":         false,
		"secret.count":    false,
		"msg":             false,
	}
	for key, want := range tests {
		assert.Equal(t, want, isSensitive(key), key)
	}
}

func TestNewSlogLogger_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	log.With("req_id", "123").Info(context.Background(), "hello", "k", "v")

	assert.Contains(t, buf.String(), "req_id=123")
	assert.Contains(t, buf.String(), "k=v")
}

func TestNop(t *testing.T) {
	var l Logger = Nop()
	require.NotPanics(t, func() {
		l.Error(context.Background(), "dropped")
		l.With("a", 1).Info(context.TODO(), "dropped")
	})
}
