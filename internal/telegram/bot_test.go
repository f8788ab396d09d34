package telegram

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type pipesRecorder struct {
	morning, afternoon, evening, motivate, fact int
	coachTexts                                  []string
}

func (p *pipesRecorder) Morning(context.Context)   { p.morning++ }
func (p *pipesRecorder) Afternoon(context.Context) { p.afternoon++ }
func (p *pipesRecorder) Evening(context.Context)   { p.evening++ }
func (p *pipesRecorder) Motivate(context.Context)  { p.motivate++ }
func (p *pipesRecorder) Fact(context.Context)      { p.fact++ }
func (p *pipesRecorder) Coach(_ context.Context, text string) {
	p.coachTexts = append(p.coachTexts, text)
}

func newTestBot(chatID int64) (*Bot, *fakeAPI, *pipesRecorder) {
	api := &fakeAPI{}
	pipes := &pipesRecorder{}
	sender := &Sender{api: api, chatID: chatID}
	return NewBot(api, chatID, sender, pipes), api, pipes
}

func message(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func TestHandleMessage_IgnoresOtherSenders(t *testing.T) {
	bot, api, pipes := newTestBot(42)

	bot.handleMessage(context.Background(), message(999, "/morning"))
	bot.handleMessage(context.Background(), message(999, "hello"))

	if api.calls != 0 {
		t.Errorf("expected no outbound messages, got %d", api.calls)
	}
	if pipes.morning != 0 || len(pipes.coachTexts) != 0 {
		t.Errorf("pipeline invoked for unauthorized sender")
	}
}

func TestHandleMessage_Start(t *testing.T) {
	bot, api, _ := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "/start"))
	if len(api.sent) != 1 || !strings.Contains(api.sent[0], "/motivate") {
		t.Errorf("expected capability summary, got %v", api.sent)
	}
}

func TestHandleMessage_ManualSlotSendsAckFirst(t *testing.T) {
	bot, api, pipes := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "/morning"))

	if pipes.morning != 1 {
		t.Fatalf("morning pipeline calls = %d, want 1", pipes.morning)
	}
	if len(api.sent) != 1 || !strings.Contains(api.sent[0], "Секунду") {
		t.Errorf("expected acknowledgement chunk, got %v", api.sent)
	}

	bot.handleMessage(context.Background(), message(42, "/afternoon"))
	bot.handleMessage(context.Background(), message(42, "/evening"))
	if pipes.afternoon != 1 || pipes.evening != 1 {
		t.Errorf("afternoon=%d evening=%d, want 1 each", pipes.afternoon, pipes.evening)
	}
}

func TestHandleMessage_MotivateHasNoAck(t *testing.T) {
	bot, api, pipes := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "/motivate"))
	if pipes.motivate != 1 {
		t.Errorf("motivate calls = %d, want 1", pipes.motivate)
	}
	if len(api.sent) != 0 {
		t.Errorf("motivate should not send an ack, got %v", api.sent)
	}
}

func TestHandleMessage_FactSendsAck(t *testing.T) {
	bot, api, pipes := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "/fact"))
	if pipes.fact != 1 {
		t.Errorf("fact calls = %d, want 1", pipes.fact)
	}
	if len(api.sent) != 1 || !strings.Contains(api.sent[0], "факты") {
		t.Errorf("expected search ack, got %v", api.sent)
	}
}

func TestHandleMessage_FreeTextRoutesToCoach(t *testing.T) {
	bot, _, pipes := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "тяжёлый день сегодня"))
	if len(pipes.coachTexts) != 1 || pipes.coachTexts[0] != "тяжёлый день сегодня" {
		t.Errorf("coach texts = %v", pipes.coachTexts)
	}
}

func TestHandleMessage_EmptyTextIgnored(t *testing.T) {
	bot, api, pipes := newTestBot(42)
	bot.handleMessage(context.Background(), message(42, "   "))
	if api.calls != 0 || len(pipes.coachTexts) != 0 {
		t.Errorf("blank message should be dropped")
	}
}

func TestStart_DropsPendingBacklog(t *testing.T) {
	bot, api, _ := newTestBot(42)
	bot.Start(context.Background())
	defer bot.Stop()

	if len(api.requests) != 1 {
		t.Fatalf("requests = %d, want the backlog drop", len(api.requests))
	}
	cfg, ok := api.requests[0].(tgbotapi.DeleteWebhookConfig)
	if !ok || !cfg.DropPendingUpdates {
		t.Errorf("expected deleteWebhook dropping pending updates, got %#v", api.requests[0])
	}
	if api.requestsAtPoll != 1 {
		t.Errorf("backlog must be dropped before polling starts")
	}
}

func TestCommand(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/morning", "morning"},
		{"/morning@motivator_bot", "morning"},
		{"/fact now", "fact"},
		{"plain text", ""},
		{"not /a command", ""},
	}
	for _, c := range cases {
		if got := command(c.in); got != c.want {
			t.Errorf("command(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
