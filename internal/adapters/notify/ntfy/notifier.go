package ntfy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/claude-remote-collector/internal/adapters/notify/transport"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
)

const (
	Name = string(domain.BackendNtfy)
	tags = "link,claude"
)

type Notifier struct {
	Topic          string
	Server         string
	Priority       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.Notifier = (*Notifier)(nil)

func FromConfig(cfg domain.NtfyConfig) *Notifier {
	server := cfg.Server
	if server == "" {
		server = domain.DefaultNtfyServer
	}
	priority := cfg.Priority
	if priority == "" {
		priority = domain.DefaultNtfyPriority
	}

	return &Notifier{
		Topic:    cfg.Topic,
		Server:   strings.TrimRight(server, "/"),
		Priority: priority,
	}
}

func (n *Notifier) Name() string {
	return Name
}

func (n *Notifier) Send(ctx context.Context, entry domain.SessionEntry) domain.NotifyResult {
	if n.Topic == "" {
		return n.result(false, "ntfy topic not configured. Run: claude-remote-collector config set notify.ntfy.topic YOUR_TOPIC")
	}

	endpoint, err := transport.JoinURL(n.Server, n.Topic)
	if err != nil {
		return n.result(false, fmt.Sprintf("ntfy server URL: %v", err))
	}

	header := http.Header{
		"Title": {"Claude Session: " + entry.SessionID},
		"Click": {entry.URL},
		"Tags":  {tags},
	}
	if n.Priority != domain.DefaultNtfyPriority {
		header.Set("Priority", n.Priority)
	}

	client := transport.Client{HTTPClient: n.HTTPClient, RequestTimeout: n.RequestTimeout}
	resp, err := client.Do(ctx, http.MethodPost, endpoint, []byte(entry.URL), header)
	if err != nil {
		return n.result(false, transport.NetworkMessage(err))
	}
	if resp.Failed() {
		return n.result(false, "ntfy error: "+resp.Status)
	}

	return n.result(true, fmt.Sprintf("Sent to ntfy topic '%s'", n.Topic))
}

func (n *Notifier) result(success bool, message string) domain.NotifyResult {
	return domain.NotifyResult{Success: success, Method: Name, Message: message}
}
