package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/claude-remote-collector/internal/adapters/notify"
	"github.com/bnema/claude-remote-collector/internal/adapters/notify/telegram"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/spf13/cobra"
)

var errSetupAborted = errors.New("setup aborted")

var setupTestEntry = domain.SessionEntry{
	Timestamp: "2026-01-01T00:00:00Z",
	SessionID: "test_setup",
	URL:       domain.BuildURL("test_setup"),
}

type setupWizard struct {
	app *app
	in  *bufio.Reader
	out io.Writer
}

func newSetupCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "setup telegram|webhook|ntfy",
		Short:     "Interactive notification setup wizard",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"telegram", "webhook", "ntfy"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &setupWizard{app: app, in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}

			switch domain.Backend(args[0]) {
			case domain.BackendTelegram:
				return w.telegram(cmd.Context())
			case domain.BackendWebhook:
				return w.webhook(cmd.Context())
			case domain.BackendNtfy:
				return w.ntfy(cmd.Context())
			default:
				return fmt.Errorf("%w: %s (available: telegram, webhook, ntfy)", domain.ErrUnknownBackend, args[0])
			}
		},
	}
}

func (w *setupWizard) telegram(ctx context.Context) error {
	w.println("=== Telegram Notification Setup ===")
	w.println("")
	w.println("Step 1: Create a Telegram bot")
	w.println("  1. Open Telegram and search for @BotFather")
	w.println("  2. Send /newbot and follow the instructions")
	w.println("  3. Copy the bot token (looks like: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11)")
	w.println("")

	token, err := w.ask("Bot token: ")
	if err != nil {
		return err
	}
	if token == "" || !strings.Contains(token, ":") {
		return errors.New("invalid bot token format, expected 123456:ABC")
	}

	bot := &telegram.Notifier{
		BotToken:   token,
		APIBaseURL: w.app.notifyOptions.TelegramAPIBaseURL,
		HTTPClient: w.app.notifyOptions.HTTPClient,
	}

	w.print("\nValidating bot token... ")
	me, err := bot.GetMe(ctx)
	if err != nil {
		w.println("FAILED")
		return fmt.Errorf("could not validate bot token: %w", err)
	}
	username := me.Username
	if username == "" {
		username = "unknown"
	}
	w.println("OK (@" + username + ")")

	w.println("\nStep 2: Get your chat ID")
	w.println("  Send any message to @" + username + " in Telegram, then press Enter here.")
	if _, err := w.ask("Press Enter after sending a message..."); err != nil {
		return err
	}

	w.print("Detecting chat ID... ")
	chatID, err := bot.DetectChatID(ctx, w.app.chatDetect.Attempts, w.app.chatDetect.Delay)
	if err != nil {
		w.println("FAILED")
		w.println("\nCould not auto-detect chat ID.")
		if chatID, err = w.ask("Enter chat ID manually: "); err != nil {
			return err
		}
		if chatID == "" {
			return errors.New("no chat ID provided")
		}
	} else {
		w.println("OK (chat_id: " + chatID + ")")
	}

	w.println("\nStep 3: Message template")
	w.printf("  Default: %q\n", domain.DefaultMessageTemplate)
	template, err := w.ask("Custom template (Enter to keep default): ")
	if err != nil {
		return err
	}
	if template == "" {
		template = domain.DefaultMessageTemplate
	}

	w.print("\nSaving configuration... ")
	if err := w.save(ctx, domain.BackendTelegram, [][2]string{
		{"notify.telegram.bot_token", token},
		{"notify.telegram.chat_id", chatID},
		{"notify.telegram.message_template", template},
	}); err != nil {
		return err
	}
	w.println("OK")

	w.print("\nSending test message... ")
	result, err := w.sendTest(ctx)
	if err != nil {
		return err
	}
	if result.Success {
		w.println("OK")
		w.println("\nSetup complete! Check your Telegram for the test message.")
	} else {
		w.println("FAILED")
		w.println("  Error: " + result.Message)
		w.println("  Config was saved. You can fix and retry with: claude-remote-collector notify")
	}

	w.println("")
	enabled, err := w.askAutoNotify(ctx, "Enable auto-notify on session capture? (Y/n): ")
	if err != nil {
		return err
	}
	if enabled {
		w.println("Auto-notify enabled. New sessions will be sent to Telegram automatically.")
	} else {
		w.println("Auto-notify disabled. Use 'claude-remote-collector notify' to send manually.")
	}

	w.println("\nConfig saved to: " + w.app.config.Path())
	return nil
}

func (w *setupWizard) webhook(ctx context.Context) error {
	w.println("=== Webhook Notification Setup ===")
	w.println("")

	url, err := w.ask("Webhook URL: ")
	if err != nil {
		return err
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.New("invalid URL, must start with http:// or https://")
	}

	method, err := w.ask("HTTP method (POST/GET) [POST]: ")
	if err != nil {
		return err
	}
	method = strings.ToUpper(method)
	if method == "" {
		method = domain.DefaultWebhookMethod
	}

	if err := w.save(ctx, domain.BackendWebhook, [][2]string{
		{"notify.webhook.url", url},
		{"notify.webhook.method", method},
	}); err != nil {
		return err
	}

	w.print("\nSending test request... ")
	result, err := w.sendTest(ctx)
	if err != nil {
		return err
	}
	if result.Success {
		w.println("OK")
	} else {
		w.println("FAILED (" + result.Message + ")")
	}

	if _, err := w.askAutoNotify(ctx, "\nEnable auto-notify? (Y/n): "); err != nil {
		return err
	}

	w.println("\nSetup complete! Config saved to: " + w.app.config.Path())
	return nil
}

func (w *setupWizard) ntfy(ctx context.Context) error {
	w.println("=== ntfy.sh Notification Setup ===")
	w.println("")
	w.println("ntfy.sh sends push notifications to your phone.")
	w.println("Install the ntfy app: https://ntfy.sh")
	w.println("")

	topic, err := w.ask("Topic name (e.g. claude-sessions): ")
	if err != nil {
		return err
	}
	if topic == "" {
		return errors.New("topic is required")
	}

	server, err := w.ask("Server URL [" + domain.DefaultNtfyServer + "]: ")
	if err != nil {
		return err
	}
	if server == "" {
		server = domain.DefaultNtfyServer
	}

	priority, err := w.ask("Priority (min/low/default/high/max) [default]: ")
	if err != nil {
		return err
	}
	if priority == "" {
		priority = domain.DefaultNtfyPriority
	}

	if err := w.save(ctx, domain.BackendNtfy, [][2]string{
		{"notify.ntfy.topic", topic},
		{"notify.ntfy.server", server},
		{"notify.ntfy.priority", priority},
	}); err != nil {
		return err
	}

	w.print("\nSending test notification... ")
	result, err := w.sendTest(ctx)
	if err != nil {
		return err
	}
	if result.Success {
		w.println("OK")
		w.println("Check your ntfy app for topic '" + topic + "'")
	} else {
		w.println("FAILED (" + result.Message + ")")
	}

	if _, err := w.askAutoNotify(ctx, "\nEnable auto-notify? (Y/n): "); err != nil {
		return err
	}

	w.println("\nSetup complete! Config saved to: " + w.app.config.Path())
	return nil
}

// save enables notifications, selects backend and stores its settings.
func (w *setupWizard) save(ctx context.Context, backend domain.Backend, settings [][2]string) error {
	all := append([][2]string{
		{"notify.enabled", "true"},
		{"notify.backend", string(backend)},
	}, settings...)

	for _, kv := range all {
		if err := w.app.config.Set(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save %s: %w", kv[0], err)
		}
	}

	return nil
}

func (w *setupWizard) sendTest(ctx context.Context) (domain.NotifyResult, error) {
	cfg, err := w.app.config.Load(ctx)
	if err != nil {
		return domain.NotifyResult{}, err
	}

	notifier, err := notify.New(cfg, w.app.notifyOptions)
	if err != nil {
		return domain.NotifyResult{}, err
	}

	return notifier.Send(ctx, setupTestEntry), nil
}

// askAutoNotify turns auto_notify on unless the answer is "n".
func (w *setupWizard) askAutoNotify(ctx context.Context, prompt string) (bool, error) {
	answer, err := w.ask(prompt)
	if err != nil {
		return false, err
	}
	if strings.ToLower(answer) == "n" {
		return false, nil
	}

	if err := w.app.config.Set(ctx, "notify.auto_notify", "true"); err != nil {
		return false, err
	}
	return true, nil
}

func (w *setupWizard) ask(prompt string) (string, error) {
	w.print(prompt)

	line, err := w.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		w.println("\nAborted.")
		return "", errSetupAborted
	}

	return strings.TrimSpace(line), nil
}

func (w *setupWizard) print(s string) {
	_, _ = fmt.Fprint(w.out, s)
}

func (w *setupWizard) println(s string) {
	_, _ = fmt.Fprintln(w.out, s)
}

func (w *setupWizard) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(w.out, format, args...)
}
