package telegram

import (
	"log"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// Telegram caps messages at 4096 chars; stay under it.
	MaxMessageLen = 4000

	chunkPause = 300 * time.Millisecond

	// Placeholder goes out when a pipeline produced nothing, so a triggered
	// run never ends in silence.
	Placeholder = "Мотиватор задумался..."
)

// Split cuts text into chunks of at most maxLen bytes, preferring a blank
// line boundary, then a line boundary, then a hard cut. Boundary newlines
// are stripped from the start of the remainder; concatenating the chunks
// with those separators restored reproduces the input. Empty input becomes
// the placeholder, so the result always has at least one chunk.
func Split(text string, maxLen int) []string {
	if text == "" {
		text = Placeholder
	}
	if len(text) <= maxLen {
		return []string{text}
	}

	// Leading newlines would otherwise read as a boundary at index 0 and
	// ride along on the first chunk.
	text = strings.TrimLeft(text, "\n")
	if text == "" {
		return []string{Placeholder}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}
		cut := strings.LastIndex(text[:maxLen], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:maxLen], "\n")
		}
		if cut <= 0 {
			cut = maxLen
			// Hard cut: back off to a rune boundary.
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	return chunks
}

// Sender delivers arbitrarily long text to the one authorized chat,
// chunk by chunk with a short pause between sends. Delivery is best-effort:
// a failed chunk is logged and the rest still go out.
type Sender struct {
	api    BotAPI
	chatID int64
	pause  time.Duration
}

func NewSender(api BotAPI, chatID int64) *Sender {
	return &Sender{api: api, chatID: chatID, pause: chunkPause}
}

func (s *Sender) SendLong(text string) {
	for i, chunk := range Split(text, MaxMessageLen) {
		if i > 0 && s.pause > 0 {
			time.Sleep(s.pause)
		}
		if _, err := s.api.Send(tgbotapi.NewMessage(s.chatID, chunk)); err != nil {
			log.Printf("[telegram] send: %v", err)
		}
	}
}
