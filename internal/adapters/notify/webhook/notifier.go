package webhook

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

const Name = string(domain.BackendWebhook)

type Notifier struct {
	URL            string
	Method         string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Notifier = (*Notifier)(nil)

// payload mirrors the structured session log record.
type payload struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
	Cwd       string `json:"cwd"`
	Source    string `json:"source"`
}

func FromConfig(cfg domain.WebhookConfig) *Notifier {
	method := strings.ToUpper(strings.TrimSpace(cfg.Method))
	if method == "" {
		method = domain.DefaultWebhookMethod
	}

	return &Notifier{URL: cfg.URL, Method: method}
}

func (n *Notifier) Name() string {
	return Name
}

func (n *Notifier) Send(ctx context.Context, entry domain.SessionEntry) domain.NotifyResult {
	if n.URL == "" {
		return n.result(false, "Webhook URL not configured. Run: claude-remote-collector config set notify.webhook.url YOUR_URL")
	}

	body, err := json.Marshal(payload{
		Timestamp: entry.Timestamp,
		SessionID: entry.SessionID,
		URL:       entry.URL,
		Cwd:       entry.Cwd,
		Source:    entry.Source,
	})
	if err != nil {
		return n.result(false, fmt.Sprintf("encode webhook payload: %v", err))
	}

	client := transport.Client{HTTPClient: n.HTTPClient, RequestTimeout: n.RequestTimeout}
	resp, err := client.Do(ctx, n.Method, n.URL, body, http.Header{
		"Content-Type": {"application/json"},
	})
	if err != nil {
		return n.result(false, transport.NetworkMessage(err))
	}
	if resp.Failed() {
		return n.result(false, "Webhook error: "+resp.Status)
	}

	return n.result(true, fmt.Sprintf("Webhook %s %s → %d", n.Method, n.URL, resp.StatusCode))
}

func (n *Notifier) result(success bool, message string) domain.NotifyResult {
	return domain.NotifyResult{Success: success, Method: Name, Message: message}
}
