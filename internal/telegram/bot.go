package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the slice of tgbotapi the bot needs; *tgbotapi.BotAPI satisfies
// it, and tests substitute a fake.
type BotAPI interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Pipelines is what the router triggers. *pipeline.Runner implements it.
type Pipelines interface {
	Morning(ctx context.Context)
	Afternoon(ctx context.Context)
	Evening(ctx context.Context)
	Motivate(ctx context.Context)
	Fact(ctx context.Context)
	Coach(ctx context.Context, text string)
}

const startText = `🔥 Мотиватор на связи!

Три сообщения в день с реальными фактами из истории:

☀️ 07:00 — Заряд (факты дня + цитата + пинок)
🍽 13:00 — Перезарядка (бизнес-совет + стартап + юмор)
🌙 21:00 — Рефлексия (история преодоления + вопрос)

/morning /afternoon /evening — вызвать вручную
/motivate — мотивация сейчас
/fact — 5 фактов про сегодняшний день

Или просто напиши — отвечу как коуч.`

// Connect authorizes against the Telegram API and returns the live client.
func Connect(token string) (BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	log.Printf("[telegram] authorized as @%s", api.Self.UserName)
	return api, nil
}

type Bot struct {
	api    BotAPI
	chatID int64
	sender *Sender
	pipes  Pipelines
	cancel context.CancelFunc
}

func NewBot(api BotAPI, chatID int64, sender *Sender, pipes Pipelines) *Bot {
	return &Bot{api: api, chatID: chatID, sender: sender, pipes: pipes}
}

// Start begins long-polling for updates. Handling is synchronous on the
// polling goroutine, independent of the scheduler's context.
func (b *Bot) Start(ctx context.Context) {
	ctx, b.cancel = context.WithCancel(ctx)

	// Commands queued while the bot was down are stale; discard them instead
	// of replaying the backlog on restart.
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		log.Printf("[telegram] drop pending updates: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case update := <-updates:
				if update.Message == nil {
					continue
				}
				b.handleMessage(ctx, update.Message)
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("[telegram] polling started")
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.api.StopReceivingUpdates()
	log.Printf("[telegram] stopped")
}

// handleMessage gates on the authorized chat and routes commands and free
// text to pipelines. Anyone else is dropped without a reply.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil || msg.Chat.ID != b.chatID {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	switch command(text) {
	case "start":
		b.sender.SendLong(startText)
	case "morning":
		b.sender.SendLong("☀️ Секунду...")
		b.pipes.Morning(ctx)
	case "afternoon":
		b.sender.SendLong("🍽 Секунду...")
		b.pipes.Afternoon(ctx)
	case "evening":
		b.sender.SendLong("🌙 Секунду...")
		b.pipes.Evening(ctx)
	case "motivate":
		b.pipes.Motivate(ctx)
	case "fact":
		b.sender.SendLong("🔍 Ищу факты...")
		b.pipes.Fact(ctx)
	default:
		b.pipes.Coach(ctx, text)
	}
}

// command extracts a leading /command name, tolerating the @botname suffix
// Telegram appends in some clients. Returns "" for plain text.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd
}
