package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DigestService produces the deliverable digests. The bot is transport only;
// aggregation, fallback and chunking all live behind this interface.
type DigestService interface {
	WeatherDigest(ctx context.Context) ([]string, error)
	NewsDigest(ctx context.Context) ([]string, error)
}

// Bot routes Telegram commands to the digest service and delivers digest
// messages to the configured chat.
type Bot struct {
	api         *tgbotapi.BotAPI
	webhookURL  string
	chatID      int64
	ownerChatID int64
	digests     DigestService
}

// NewBot creates the bot transport.
func NewBot(token, webhookURL string, chatID, ownerChatID int64, digests DigestService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Bot{
		api:         api,
		webhookURL:  webhookURL,
		chatID:      chatID,
		ownerChatID: ownerChatID,
		digests:     digests,
	}, nil
}

// Start registers the webhook and begins handling updates until ctx is done.
// Without a webhook URL the bot only delivers scheduled digests.
func (b *Bot) Start(ctx context.Context) error {
	if b.webhookURL == "" {
		slog.Info("no webhook URL configured, bot commands disabled")
		return nil
	}

	webhook, err := tgbotapi.NewWebhook(b.webhookURL)
	if err != nil {
		return err
	}
	if _, err := b.api.Request(webhook); err != nil {
		return err
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		return err
	}
	if info.LastErrorDate != 0 {
		slog.Warn("telegram webhook reported an earlier error", "error", info.LastErrorMessage)
	}

	updates := b.api.ListenForWebhook("/webhook")
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				b.handleUpdate(ctx, update)
			}
		}
	}()

	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	switch {
	case strings.HasPrefix(text, "/weather"):
		b.deliverDigest(ctx, chatID, "weather", b.digests.WeatherDigest)
	case strings.HasPrefix(text, "/news"):
		b.deliverDigest(ctx, chatID, "news", b.digests.NewsDigest)
	case strings.HasPrefix(text, "/start"), strings.HasPrefix(text, "/help"):
		b.sendPlain(chatID, helpText)
	default:
		b.sendPlain(chatID, "Unknown command. Use /help for available commands.")
	}
}

const helpText = `Lassistant 🤖

Commands:
/weather - today's weather digest
/news - today's news digest
/help - this message

Digests are also delivered automatically on the daily schedule.`

func (b *Bot) deliverDigest(ctx context.Context, chatID int64, kind string, produce func(context.Context) ([]string, error)) {
	messages, err := produce(ctx)
	if err != nil {
		slog.Error("digest production failed", "digest", kind, "error", err.Error())
		b.sendPlain(chatID, fmt.Sprintf("Sorry, the %s digest is unavailable right now.", kind))
		b.NotifyError(fmt.Errorf("%s digest: %w", kind, err))
		return
	}
	b.SendMessages(chatID, messages)
}

// DeliverWeather produces and sends the weather digest to the configured
// chat. Used by the scheduler.
func (b *Bot) DeliverWeather(ctx context.Context) {
	b.deliverDigest(ctx, b.chatID, "weather", b.digests.WeatherDigest)
}

// DeliverNews produces and sends the news digest to the configured chat.
// Used by the scheduler.
func (b *Bot) DeliverNews(ctx context.Context) {
	b.deliverDigest(ctx, b.chatID, "news", b.digests.NewsDigest)
}

// SendMessages delivers a digest's messages in order, as Markdown with link
// previews disabled.
func (b *Bot) SendMessages(chatID int64, messages []string) {
	for _, message := range messages {
		msg := tgbotapi.NewMessage(chatID, message)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = true

		if _, err := b.api.Send(msg); err != nil {
			slog.Error("failed to send telegram message", "error", err.Error())
		}
	}
}

func (b *Bot) sendPlain(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		slog.Error("failed to send telegram message", "error", err.Error())
	}
}

// NotifyError reports an operational error to the owner chat.
func (b *Bot) NotifyError(err error) {
	if b.ownerChatID == 0 {
		return
	}

	text := fmt.Sprintf("Bot Error!\n```\n%v\n```", err)
	msg := tgbotapi.NewMessage(b.ownerChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, sendErr := b.api.Send(msg); sendErr != nil {
		slog.Error("failed to notify owner", "error", sendErr.Error())
	}
}
