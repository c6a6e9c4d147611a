package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var ErrChatNotDetected = errors.New("no chat message found for bot")

type Bot struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type update struct {
	Message *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// GetMe validates the bot token and returns the bot identity.
func (n *Notifier) GetMe(ctx context.Context) (Bot, error) {
	var bot Bot
	if err := n.call(ctx, "getMe", &bot); err != nil {
		return Bot{}, err
	}

	return bot, nil
}

// DetectChatID polls getUpdates and returns the chat of the most recent
// message sent to the bot.
func (n *Notifier) DetectChatID(ctx context.Context, attempts int, delay time.Duration) (string, error) {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}

		var updates []update
		if err := n.call(ctx, "getUpdates?limit=5&timeout=5", &updates); err != nil {
			lastErr = err
			continue
		}

		for i := len(updates) - 1; i >= 0; i-- {
			if msg := updates[i].Message; msg != nil && msg.Chat.ID != 0 {
				return strconv.FormatInt(msg.Chat.ID, 10), nil
			}
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", ErrChatNotDetected, lastErr)
	}
	return "", ErrChatNotDetected
}

func (n *Notifier) call(ctx context.Context, method string, out any) error {
	if n.BotToken == "" {
		return errors.New("bot token is empty")
	}

	endpoint, err := n.methodURL(method)
	if err != nil {
		return err
	}

	resp, err := n.client().Do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}
	if resp.Failed() {
		return fmt.Errorf("telegram %s: %s", trimQuery(method), resp.Status)
	}

	var envelope apiResponse
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return fmt.Errorf("decode telegram %s response: %w", trimQuery(method), err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram %s: %s", trimQuery(method), envelope.Description)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode telegram %s result: %w", trimQuery(method), err)
	}

	return nil
}

func trimQuery(method string) string {
	name, _, _ := strings.Cut(method, "?")
	return name
}
