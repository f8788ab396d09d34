// Package pipeline wires one message run end to end: fact digest → persona
// prompt → generation → chunked delivery. Every failure inside a run
// degrades to a fallback message or a logged skip; nothing propagates out.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/misha/motivator/internal/clock"
	"github.com/misha/motivator/internal/llm"
	"github.com/misha/motivator/internal/persona"
)

type FactSource interface {
	Fetch(ctx context.Context, month, day int) string
}

type Sender interface {
	SendLong(text string)
}

type Runner struct {
	facts FactSource
	gen   llm.Client
	send  Sender
	now   func() time.Time
}

func New(facts FactSource, gen llm.Client, send Sender, now func() time.Time) *Runner {
	return &Runner{facts: facts, gen: gen, send: send, now: now}
}

func (r *Runner) Morning(ctx context.Context) {
	r.runSlot(ctx, persona.Morning, func(date string) string {
		return fmt.Sprintf("☀️ %s\n\nМотиватор думает... Но ты не думай — действуй!", date)
	})
}

func (r *Runner) Afternoon(ctx context.Context) {
	r.runSlot(ctx, persona.Afternoon, func(string) string {
		return "🍽 Сделай одну вещь которую откладывал. Прямо сейчас."
	})
}

func (r *Runner) Evening(ctx context.Context) {
	r.runSlot(ctx, persona.Evening, func(string) string {
		return "🌙 Чем сегодня будешь гордиться через год? Отдыхай."
	})
}

// runSlot runs one scheduled persona. A failed generation still reaches the
// recipient as the slot's canned fallback.
func (r *Runner) runSlot(ctx context.Context, p persona.Spec, fallback func(date string) string) {
	now := r.now()
	date := clock.DisplayDate(now)
	digest := r.facts.Fetch(ctx, int(now.Month()), now.Day())

	system, user := persona.Compose(p, date, digest)
	text, err := r.generate(ctx, system, user, p.MaxTokens)
	if err != nil {
		log.Printf("pipeline[%s]: generate: %v", p.Name, err)
		r.send.SendLong(fallback(date))
		return
	}
	r.send.SendLong(text)
}

// Motivate sends a single-fact ad-hoc message; on failure it stays silent.
func (r *Runner) Motivate(ctx context.Context) {
	r.runQuiet(ctx, persona.Motivate)
}

// Fact sends the 5-fact digest message; on failure it stays silent
// (the router already sent an acknowledgement).
func (r *Runner) Fact(ctx context.Context) {
	r.runQuiet(ctx, persona.Fact)
}

func (r *Runner) runQuiet(ctx context.Context, p persona.Spec) {
	now := r.now()
	date := clock.DisplayDate(now)
	digest := r.facts.Fetch(ctx, int(now.Month()), now.Day())

	system, user := persona.Compose(p, date, digest)
	text, err := r.generate(ctx, system, user, p.MaxTokens)
	if err != nil {
		log.Printf("pipeline[%s]: generate: %v", p.Name, err)
		return
	}
	r.send.SendLong(text)
}

// Coach answers free text with time-of-day context. No fact fetch here.
func (r *Runner) Coach(ctx context.Context, userText string) {
	now := r.now()
	system, user, maxTokens := persona.ComposeCoach(clock.DayPart(now), now.Format("15:04"), userText)

	text, err := r.generate(ctx, system, user, maxTokens)
	if err != nil {
		log.Printf("pipeline[coach]: generate: %v", err)
		return
	}
	r.send.SendLong(text)
}

func (r *Runner) generate(ctx context.Context, system, user string, maxTokens int) (string, error) {
	return r.gen.Generate(ctx, llm.Request{System: system, User: user, MaxTokens: maxTokens})
}
