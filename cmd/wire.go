package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/claude-remote-collector/internal/adapters/notify"
	statusadapter "github.com/bnema/claude-remote-collector/internal/adapters/render/status"
	tomlrepo "github.com/bnema/claude-remote-collector/internal/adapters/repo/toml"
	"github.com/bnema/claude-remote-collector/internal/adapters/shell"
	"github.com/bnema/claude-remote-collector/internal/adapters/store/jsonl"
	"github.com/bnema/claude-remote-collector/internal/application"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
)

const (
	dataDirEnv        = "CRC_DATA_DIR"
	telegramAPIEnv    = "CRC_TELEGRAM_API_URL"
	defaultDataDir    = ".claude-remote-sessions"
	chatDetectRetries = 3
	chatDetectDelay   = 2 * time.Second
)

type app struct {
	sessions       *application.SessionService
	notifications  *application.NotifyService
	store          *jsonl.Store
	config         *tomlrepo.Repository
	installer      *shell.Installer
	statusRenderer func(application.Overview) (string, error)
	notifyOptions  notify.Options
	chatDetect     chatDetectPolicy
	now            func() time.Time
}

type chatDetectPolicy struct {
	Attempts int
	Delay    time.Duration
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	dataDir := envOrDefault(dataDirEnv, filepath.Join(homeDir, defaultDataDir))
	store, err := jsonl.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	config, err := tomlrepo.NewRepository(dataDir)
	if err != nil {
		return nil, fmt.Errorf("wire config repository: %w", err)
	}

	installer, err := shell.NewInstaller(homeDir)
	if err != nil {
		return nil, fmt.Errorf("wire shell installer: %w", err)
	}

	opts := notify.Options{
		HTTPClient:         http.DefaultClient,
		TelegramAPIBaseURL: os.Getenv(telegramAPIEnv),
	}

	return &app{
		sessions: application.NewSessionService(store, ports.SystemClock{}),
		notifications: application.NewNotifyService(func(cfg domain.Config) (ports.Notifier, error) {
			return notify.New(cfg, opts)
		}),
		store:          store,
		config:         config,
		installer:      installer,
		statusRenderer: statusadapter.Render,
		notifyOptions:  opts,
		chatDetect:     chatDetectPolicy{Attempts: chatDetectRetries, Delay: chatDetectDelay},
		now:            time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
