package domain

const (
	DefaultMessageTemplate = "🔗 New Claude session:\n{url}"
	DefaultWebhookMethod   = "POST"
	DefaultNtfyServer      = "https://ntfy.sh"
	DefaultNtfyPriority    = "default"
)

// Config is loaded once per invocation. Each backend section lives under
// [notify.<backend>] in the file.
type Config struct {
	Notify   NotifyConfig
	Telegram TelegramConfig
	Webhook  WebhookConfig
	Ntfy     NtfyConfig
}

type NotifyConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Backend    Backend `mapstructure:"backend"`
	AutoNotify bool    `mapstructure:"auto_notify"`
}

type TelegramConfig struct {
	BotToken        string `mapstructure:"bot_token"`
	ChatID          string `mapstructure:"chat_id"`
	MessageTemplate string `mapstructure:"message_template"`
}

type WebhookConfig struct {
	URL    string `mapstructure:"url"`
	Method string `mapstructure:"method"`
}

type NtfyConfig struct {
	Topic    string `mapstructure:"topic"`
	Server   string `mapstructure:"server"`
	Priority string `mapstructure:"priority"`
}

func DefaultConfig() Config {
	return Config{
		Notify: NotifyConfig{Backend: BackendTelegram},
		Telegram: TelegramConfig{
			MessageTemplate: DefaultMessageTemplate,
		},
		Webhook: WebhookConfig{Method: DefaultWebhookMethod},
		Ntfy: NtfyConfig{
			Server:   DefaultNtfyServer,
			Priority: DefaultNtfyPriority,
		},
	}
}

// BackendConfigured reports whether the selected backend has the settings it
// needs to send.
func (c Config) BackendConfigured() bool {
	switch c.Notify.Backend {
	case BackendTelegram:
		return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
	case BackendWebhook:
		return c.Webhook.URL != ""
	case BackendNtfy:
		return c.Ntfy.Topic != ""
	default:
		return false
	}
}
