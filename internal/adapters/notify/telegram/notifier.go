package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/claude-remote-collector/internal/adapters/notify/transport"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
)

const (
	Name              = string(domain.BackendTelegram)
	DefaultAPIBaseURL = "https://api.telegram.org"
)

type Notifier struct {
	BotToken        string
	ChatID          string
	MessageTemplate string
	APIBaseURL      string
	HTTPClient      *http.Client
	RequestTimeout  time.Duration
}

var _ ports.Notifier = (*Notifier)(nil)

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

func FromConfig(cfg domain.TelegramConfig) *Notifier {
	template := cfg.MessageTemplate
	if template == "" {
		template = domain.DefaultMessageTemplate
	}

	return &Notifier{
		BotToken:        cfg.BotToken,
		ChatID:          cfg.ChatID,
		MessageTemplate: template,
	}
}

func (n *Notifier) Name() string {
	return Name
}

func (n *Notifier) Send(ctx context.Context, entry domain.SessionEntry) domain.NotifyResult {
	if n.BotToken == "" || n.ChatID == "" {
		return n.result(false, "Telegram not configured. Run: claude-remote-collector config set notify.telegram.bot_token YOUR_TOKEN")
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID: n.ChatID,
		Text:   RenderMessage(n.MessageTemplate, entry),
	})
	if err != nil {
		return n.result(false, fmt.Sprintf("encode Telegram message: %v", err))
	}

	endpoint, err := n.methodURL("sendMessage")
	if err != nil {
		return n.result(false, fmt.Sprintf("Telegram API URL: %v", err))
	}

	resp, err := n.client().Do(ctx, http.MethodPost, endpoint, payload, http.Header{
		"Content-Type": {"application/json"},
	})
	if err != nil {
		return n.result(false, transport.NetworkMessage(err))
	}

	if resp.Failed() {
		message := "Telegram API error: " + resp.Status
		if description := decodeDescription(resp.Body); description != "" {
			message += " (" + description + ")"
		}
		return n.result(false, message)
	}
	if resp.StatusCode != http.StatusOK {
		return n.result(false, fmt.Sprintf("Telegram API returned status %d", resp.StatusCode))
	}

	return n.result(true, fmt.Sprintf("Sent to Telegram chat %s", n.ChatID))
}

// RenderMessage fills the {url}, {session_id}, {timestamp} and {cwd}
// placeholders of template. Unknown placeholders are left as they are.
func RenderMessage(template string, entry domain.SessionEntry) string {
	return strings.NewReplacer(
		"{url}", entry.URL,
		"{session_id}", entry.SessionID,
		"{timestamp}", entry.Timestamp,
		"{cwd}", entry.Cwd,
	).Replace(template)
}

func (n *Notifier) result(success bool, message string) domain.NotifyResult {
	return domain.NotifyResult{Success: success, Method: Name, Message: message}
}

func (n *Notifier) client() transport.Client {
	return transport.Client{HTTPClient: n.HTTPClient, RequestTimeout: n.RequestTimeout}
}

func (n *Notifier) methodURL(method string) (string, error) {
	base := n.APIBaseURL
	if base == "" {
		base = DefaultAPIBaseURL
	}

	return transport.JoinURL(base, "bot"+n.BotToken+"/"+method)
}

func decodeDescription(body []byte) string {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	return resp.Description
}
