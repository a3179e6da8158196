// Package telegram posts a short summary of each feedback run to a chat.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"essay-feedback/api/internal/feedback"
	"essay-feedback/api/internal/util"
)

// maxMessage keeps messages under the Bot API limit of 4096 characters.
const maxMessage = 3900

type Notifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
	log    *slog.Logger
}

// New authorises the bot against endpoint (tgbotapi.APIEndpoint when empty).
func New(token string, chatID int64, endpoint string, logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Notifier{Bot: bot, ChatID: chatID, log: logger}, nil
}

// Notify sends one message per run. The Bot API client has no context
// support, so a cancelled ctx only skips the send.
func (n *Notifier) Notify(ctx context.Context, run feedback.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.ChatID, util.Truncate(Format(run), maxMessage))
	msg.DisableWebPagePreview = true
	if _, err := n.Bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	n.log.Debug("telegram notified", "chat_id", n.ChatID, "row_page_id", run.RowPageID)
	return nil
}

// Format renders the run summary.
func Format(run feedback.Run) string {
	var b strings.Builder
	switch {
	case !run.WriteOK:
		b.WriteString("⚠️ 回寫 Notion 失敗")
	case run.Degraded:
		b.WriteString("⚠️ 模型回應格式異常")
	default:
		b.WriteString("✅ 批改完成")
	}
	fmt.Fprintf(&b, "\nrow: %s\ntext: %s\nengine: %s (%s)\nstatus: %d",
		run.RowPageID, run.TextPageID, run.Engine, run.Model, run.WriteStatus)
	return b.String()
}
