package toml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
)

type keySchema struct {
	name string
	kind valueKind
}

type sectionSchema struct {
	name string
	keys []keySchema
}

// knownSections is the set of keys Set accepts, in display order.
var knownSections = []sectionSchema{
	{name: "notify", keys: []keySchema{
		{name: "enabled", kind: kindBool},
		{name: "backend"},
		{name: "auto_notify", kind: kindBool},
	}},
	{name: "notify.telegram", keys: []keySchema{
		{name: "bot_token"},
		{name: "chat_id"},
		{name: "message_template"},
	}},
	{name: "notify.webhook", keys: []keySchema{
		{name: "url"},
		{name: "method"},
	}},
	{name: "notify.ntfy", keys: []keySchema{
		{name: "topic"},
		{name: "server"},
		{name: "priority"},
	}},
}

// configSchema mirrors the file layout for decoding.
type configSchema struct {
	Notify notifySchema `mapstructure:"notify"`
}

type notifySchema struct {
	domain.NotifyConfig `mapstructure:",squash"`

	Telegram domain.TelegramConfig `mapstructure:"telegram"`
	Webhook  domain.WebhookConfig  `mapstructure:"webhook"`
	Ntfy     domain.NtfyConfig     `mapstructure:"ntfy"`
}

func (s configSchema) toDomain() domain.Config {
	return domain.Config{
		Notify:   s.Notify.NotifyConfig,
		Telegram: s.Notify.Telegram,
		Webhook:  s.Notify.Webhook,
		Ntfy:     s.Notify.Ntfy,
	}
}

func defaultValues() map[string]any {
	cfg := domain.DefaultConfig()

	return map[string]any{
		"notify.enabled":                   cfg.Notify.Enabled,
		"notify.backend":                   string(cfg.Notify.Backend),
		"notify.auto_notify":               cfg.Notify.AutoNotify,
		"notify.telegram.bot_token":        cfg.Telegram.BotToken,
		"notify.telegram.chat_id":          cfg.Telegram.ChatID,
		"notify.telegram.message_template": cfg.Telegram.MessageTemplate,
		"notify.webhook.url":               cfg.Webhook.URL,
		"notify.webhook.method":            cfg.Webhook.Method,
		"notify.ntfy.topic":                cfg.Ntfy.Topic,
		"notify.ntfy.server":               cfg.Ntfy.Server,
		"notify.ntfy.priority":             cfg.Ntfy.Priority,
	}
}

// splitKey separates "notify.telegram.bot_token" into its section and leaf.
func splitKey(key string) (string, string, bool) {
	idx := strings.LastIndex(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", false
	}

	return key[:idx], key[idx+1:], true
}

func lookupKey(key string) (keySchema, error) {
	section, leaf, ok := splitKey(key)
	if !ok {
		return keySchema{}, fmt.Errorf("%w: %q (expected section.key)", domain.ErrInvalidConfigKey, key)
	}

	for _, s := range knownSections {
		if s.name != section {
			continue
		}
		for _, k := range s.keys {
			if k.name == leaf {
				return k, nil
			}
		}
		return keySchema{}, fmt.Errorf("%w: %q has no key %q", domain.ErrInvalidConfigKey, section, leaf)
	}

	return keySchema{}, fmt.Errorf("%w: unknown section %q", domain.ErrInvalidConfigKey, section)
}

// parseValue turns true/false into a bool and all-digit strings into an int.
func parseValue(key string, schema keySchema, raw string) (any, error) {
	var parsed any = raw
	switch lowered := strings.ToLower(raw); {
	case lowered == "true" || lowered == "false":
		parsed = lowered == "true"
	case isDigits(raw):
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			parsed = n
		}
	}

	if schema.kind == kindBool {
		if _, ok := parsed.(bool); !ok {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidConfigValue, key, raw)
		}
	}
	if key == "notify.backend" && !domain.Backend(raw).Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBackend, raw)
	}

	return parsed, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// setNested stores value under the dotted path, creating tables as needed.
func setNested(doc map[string]any, key string, value any) error {
	parts := strings.Split(key, ".")
	table := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := table[part]
		if !ok {
			child := map[string]any{}
			table[part] = child
			table = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %q is not a table", domain.ErrInvalidConfigKey, part)
		}
		table = child
	}
	table[parts[len(parts)-1]] = value

	return nil
}
