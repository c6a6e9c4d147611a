package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionEntryDerivesSessionIDAndTimestamp(t *testing.T) {
	capturedAt := time.Date(2026, 2, 25, 13, 4, 5, 999, time.FixedZone("CET", 3600))

	entry := NewSessionEntry(capturedAt, BuildURL("01XNYXVWynq7cb6rsR4inaM3"), "/home/user/project", "wrapper")

	assert.Equal(t, SessionEntry{
		Timestamp: "2026-02-25T12:04:05Z",
		SessionID: "01XNYXVWynq7cb6rsR4inaM3",
		URL:       "https://claude.ai/code/session_01XNYXVWynq7cb6rsR4inaM3",
		Cwd:       "/home/user/project",
		Source:    "wrapper",
	}, entry)
}

func TestExtractSessionID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "canonical", url: "https://claude.ai/code/session_abc123", want: "abc123"},
		{name: "foreign url", url: "https://example.com/session_abc123", want: ""},
		{name: "empty", url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSessionID(tt.url))
		})
	}
}

func TestExtractURLsDeduplicatesInOrder(t *testing.T) {
	text := "starting...\n" +
		"Remote: https://claude.ai/code/session_bbb\n" +
		"\x1b[1mhttps://claude.ai/code/session_aaa\x1b[0m\n" +
		"again https://claude.ai/code/session_bbb done\n"

	assert.Equal(t, []string{
		"https://claude.ai/code/session_bbb",
		"https://claude.ai/code/session_aaa",
	}, ExtractURLs(text))
	assert.Empty(t, ExtractURLs("nothing to see"))
}

func TestValidateSessionURL(t *testing.T) {
	url, err := ValidateSessionURL("  https://claude.ai/code/session_01ABC_def \n")
	require.NoError(t, err)
	assert.Equal(t, "https://claude.ai/code/session_01ABC_def", url)

	for _, raw := range []string{
		"",
		"https://claude.ai/code/session_",
		"https://claude.ai/code/session_abc?x=1",
		"http://claude.ai/code/session_abc",
	} {
		_, err := ValidateSessionURL(raw)
		assert.ErrorIs(t, err, ErrInvalidSessionURL, raw)
	}
}

func TestBackendValid(t *testing.T) {
	for _, backend := range Backends {
		assert.True(t, backend.Valid(), backend)
	}
	assert.False(t, Backend("slack").Valid())
	assert.False(t, Backend("").Valid())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Notify.Enabled)
	assert.False(t, cfg.Notify.AutoNotify)
	assert.Equal(t, BackendTelegram, cfg.Notify.Backend)
	assert.Equal(t, DefaultMessageTemplate, cfg.Telegram.MessageTemplate)
	assert.Equal(t, "POST", cfg.Webhook.Method)
	assert.Equal(t, "https://ntfy.sh", cfg.Ntfy.Server)
	assert.Equal(t, "default", cfg.Ntfy.Priority)
}

func TestConfigBackendConfigured(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.BackendConfigured())

	cfg.Telegram.BotToken = "123:ABC"
	assert.False(t, cfg.BackendConfigured())
	cfg.Telegram.ChatID = "42"
	assert.True(t, cfg.BackendConfigured())

	cfg.Notify.Backend = BackendWebhook
	assert.False(t, cfg.BackendConfigured())
	cfg.Webhook.URL = "https://hooks.example.com"
	assert.True(t, cfg.BackendConfigured())

	cfg.Notify.Backend = BackendNtfy
	assert.False(t, cfg.BackendConfigured())
	cfg.Ntfy.Topic = "t"
	assert.True(t, cfg.BackendConfigured())

	cfg.Notify.Backend = "slack"
	assert.False(t, cfg.BackendConfigured())
}
