package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultBaseURL = "https://en.wikipedia.org/api/rest_v1/feed/onthisday"

const (
	eventsHeader = "СОБЫТИЯ ЭТОГО ДНЯ В ИСТОРИИ:"
	birthsHeader = "РОДИЛИСЬ В ЭТОТ ДЕНЬ:"

	// Fallback tells the model to lean on its own knowledge rather than
	// invent facts when both feeds came back empty or broken.
	Fallback = "Факты не загрузились. Используй свои знания о событиях этого дня."
)

const (
	maxSelectedEvents = 10
	maxOtherEvents    = 5
	maxBirths         = 8
)

// Keyword sets for relevance scoring. Matching is case-insensitive
// substring, so stems like "entrepren" cover the whole word family.
var eventKeywords = []string{
	"compan", "invent", "found", "launch", "patent", "discover",
	"first", "record", "billion", "million", "startup", "technolog",
	"israel", "revolution", "independ", "nobel", "space", "comput",
	"internet", "phone", "electric", "medicine", "women", "rights",
	"freedom", "surviv", "overcame", "bankrupt", "fail", "success",
	"entrepren", "business", "market", "apple", "google", "amazon",
	"tesla", "microsoft", "war", "peace", "treaty",
}

var birthKeywords = []string{
	"entrepren", "business", "invent", "found", "ceo",
	"billion", "scientist", "pioneer", "leader", "nobel",
	"author", "philosoph", "israel", "engineer", "vision",
}

// Gateway queries the Wikipedia "on this day" feed and turns it into a
// bounded digest for the prompt. Every failure path degrades to text —
// Fetch never returns an error to its caller.
type Gateway struct {
	http    *http.Client
	baseURL string

	// The scheduler goroutine and the bot's polling goroutine can both
	// reach Fetch, and rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

func New() *Gateway {
	return &Gateway{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: defaultBaseURL,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type feedEntry struct {
	Text string `json:"text"`
	Year *int   `json:"year,omitempty"`
}

func (e feedEntry) line() string {
	if e.Year != nil {
		return fmt.Sprintf("- [%d] %s", *e.Year, e.Text)
	}
	return "- " + e.Text
}

type feedResponse struct {
	Events []feedEntry `json:"events"`
	Births []feedEntry `json:"births"`
}

// Fetch builds the fact digest for (month, day). Each endpoint fails
// independently: a broken events feed still leaves the births section, and
// only when both are empty does the canned fallback go out.
func (g *Gateway) Fetch(ctx context.Context, month, day int) string {
	var b strings.Builder

	events, err := g.fetchFeed(ctx, "events", month, day)
	if err != nil {
		log.Printf("facts: events feed: %v", err)
	} else if lines := g.selectEvents(events.Events); len(lines) > 0 {
		b.WriteString(eventsHeader + "\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}

	births, err := g.fetchFeed(ctx, "births", month, day)
	if err != nil {
		log.Printf("facts: births feed: %v", err)
	} else if lines := selectBirths(births.Births); len(lines) > 0 {
		b.WriteString("\n" + birthsHeader + "\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}

	if b.Len() == 0 {
		return Fallback
	}
	return b.String()
}

func (g *Gateway) fetchFeed(ctx context.Context, category string, month, day int) (*feedResponse, error) {
	url := fmt.Sprintf("%s/%s/%02d/%02d", g.baseURL, category, month, day)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "MotivatorBot/1.0")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s: status %s", category, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &feed, nil
}

// selectEvents keeps every keyword match (up to 10, original order) and tops
// the list up with at most 5 of the rest. The top-up is shuffled so the same
// filler facts do not recur in the same position every day.
func (g *Gateway) selectEvents(entries []feedEntry) []string {
	var selected, other []feedEntry
	for _, e := range entries {
		if matchesAny(e.Text, eventKeywords) {
			selected = append(selected, e)
		} else {
			other = append(other, e)
		}
	}

	g.mu.Lock()
	g.rng.Shuffle(len(other), func(i, j int) {
		other[i], other[j] = other[j], other[i]
	})
	g.mu.Unlock()

	if len(selected) > maxSelectedEvents {
		selected = selected[:maxSelectedEvents]
	}
	if len(other) > maxOtherEvents {
		other = other[:maxOtherEvents]
	}

	lines := make([]string, 0, len(selected)+len(other))
	for _, e := range selected {
		lines = append(lines, e.line())
	}
	for _, e := range other {
		lines = append(lines, e.line())
	}
	return lines
}

// selectBirths is a hard filter: births with no business or science
// relevance are dropped, never retained as filler.
func selectBirths(entries []feedEntry) []string {
	var lines []string
	for _, e := range entries {
		if !matchesAny(e.Text, birthKeywords) {
			continue
		}
		lines = append(lines, e.line())
		if len(lines) == maxBirths {
			break
		}
	}
	return lines
}

func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
