package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleEntry = domain.SessionEntry{
	Timestamp: "2026-02-25T12:00:00Z",
	SessionID: "01XNYXVWynq7cb6rsR4inaM3",
	URL:       "https://claude.ai/code/session_01XNYXVWynq7cb6rsR4inaM3",
	Cwd:       "/home/user/project",
	Source:    "wrapper",
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestSendNotConfiguredMakesNoRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, io.EOF
	})}

	for _, cfg := range []domain.TelegramConfig{
		{},
		{BotToken: "123:ABC"},
		{ChatID: "999"},
	} {
		notifier := FromConfig(cfg)
		notifier.HTTPClient = client

		result := notifier.Send(context.Background(), sampleEntry)
		assert.False(t, result.Success)
		assert.Equal(t, "telegram", result.Method)
		assert.Contains(t, result.Message, "not configured")
	}
	assert.Zero(t, calls.Load())
}

func TestSendPostsTemplatedMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bot123:ABC/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "999", body["chat_id"])
		assert.Equal(t, "Session 01XNYXVWynq7cb6rsR4inaM3 at 2026-02-25T12:00:00Z in /home/user/project: "+sampleEntry.URL, body["text"])
		assert.Equal(t, false, body["disable_web_page_preview"])

		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{
		BotToken:        "123:ABC",
		ChatID:          "999",
		MessageTemplate: "Session {session_id} at {timestamp} in {cwd}: {url}",
	})
	notifier.APIBaseURL = server.URL
	notifier.HTTPClient = server.Client()

	result := notifier.Send(context.Background(), sampleEntry)
	assert.True(t, result.Success, result.Message)
	assert.Equal(t, "telegram", result.Method)
	assert.Equal(t, "Sent to Telegram chat 999", result.Message)
}

func TestSendUsesDefaultTemplate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body sendMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "🔗 New Claude session:\n"+sampleEntry.URL, body.Text)
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "t", ChatID: "c"})
	notifier.APIBaseURL = server.URL

	assert.True(t, notifier.Send(context.Background(), sampleEntry).Success)
}

func TestSendReportsAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "t", ChatID: "c"})
	notifier.APIBaseURL = server.URL

	result := notifier.Send(context.Background(), sampleEntry)
	assert.False(t, result.Success)
	assert.Equal(t, "Telegram API error: 400 Bad Request (Bad Request: chat not found)", result.Message)
}

func TestSendReportsUnexpectedSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "t", ChatID: "c"})
	notifier.APIBaseURL = server.URL

	result := notifier.Send(context.Background(), sampleEntry)
	assert.False(t, result.Success)
	assert.Equal(t, "Telegram API returned status 202", result.Message)
}

func TestSendReportsNetworkErrorWithoutLeakingToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	notifier := FromConfig(domain.TelegramConfig{BotToken: "123:SECRET", ChatID: "c"})
	notifier.APIBaseURL = base

	result := notifier.Send(context.Background(), sampleEntry)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Network error:")
	assert.NotContains(t, result.Message, "SECRET")
}

func TestSendTimesOut(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "t", ChatID: "c"})
	notifier.APIBaseURL = server.URL
	notifier.RequestTimeout = 20 * time.Millisecond

	result := notifier.Send(context.Background(), sampleEntry)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Network error: request timed out")
}

func TestRenderMessageKeepsUnknownPlaceholders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "{other} "+sampleEntry.URL, RenderMessage("{other} {url}", sampleEntry))
}

func TestGetMeAndDetectChatID(t *testing.T) {
	t.Parallel()

	var updatesCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bot123:ABC/getMe":
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":42,"username":"session_bot"}}`))
		case "/bot123:ABC/getUpdates":
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			if updatesCalls.Add(1) == 1 {
				_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"message":{"chat":{"id":111}}},{"message":{"chat":{"id":-222}}},{"edited_message":{}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "123:ABC"})
	notifier.APIBaseURL = server.URL

	bot, err := notifier.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "session_bot", bot.Username)

	chatID, err := notifier.DetectChatID(context.Background(), 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "-222", chatID)
	assert.Equal(t, int32(2), updatesCalls.Load())
}

func TestGetMeRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Unauthorized"}`))
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "bad"})
	notifier.APIBaseURL = server.URL

	_, err := notifier.GetMe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDetectChatIDGivesUp(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	}))
	t.Cleanup(server.Close)

	notifier := FromConfig(domain.TelegramConfig{BotToken: "t"})
	notifier.APIBaseURL = server.URL

	_, err := notifier.DetectChatID(context.Background(), 2, time.Millisecond)
	assert.ErrorIs(t, err, ErrChatNotDetected)
}
