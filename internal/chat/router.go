package chat

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jharkhand-tourism-mvp/server/internal/knowledge"
	logx "github.com/jharkhand-tourism-mvp/server/pkg/logger"
)

// DefaultUserID is used when a chat request carries no user id.
const DefaultUserID = "default"

const (
	greetingReply = "👋 Hello! Welcome to Jharkhand Tourism Chatbot. How can I help you today?"
	noPlacesReply = "I couldn't find any places matching your interests."
	apologyReply  = "❌ Sorry, I had trouble processing your request."

	defaultDays     = 3
	defaultInterest = "nature"
)

var (
	planDayRe = regexp.MustCompile(`plan.*day`)
	daysRe    = regexp.MustCompile(`(\d+)\s*day`)
)

// Responder produces a conversational reply and never fails outward.
type Responder interface {
	Reply(ctx context.Context, message string) string
}

// Router decides how an inbound chat message is answered: one-shot greeting,
// knowledge-base itinerary, direct place lookup, or LLM fallback.
type Router struct {
	kb      *knowledge.Base
	greeted GreetedStore
	llm     Responder
}

func NewRouter(kb *knowledge.Base, greeted GreetedStore, llm Responder) *Router {
	return &Router{kb: kb, greeted: greeted, llm: llm}
}

// Handle routes a single chat message to a reply. It never returns an error:
// conversational failures are absorbed into fixed reply strings.
func (r *Router) Handle(ctx context.Context, userID, message string) string {
	if userID == "" {
		userID = DefaultUserID
	}
	msg := strings.ToLower(message)

	// The first message from any user id is always consumed by the greeting,
	// regardless of its content.
	first, err := r.greeted.Greet(ctx, userID)
	if err != nil {
		logx.Warn().Err(err).Str("user_id", userID).Msg("greeted store unavailable, skipping greeting gate")
	} else if first {
		return greetingReply
	}

	if strings.Contains(msg, "itinerary") || planDayRe.MatchString(msg) {
		return r.itinerary(msg)
	}

	for _, name := range r.kb.Names() {
		if strings.Contains(msg, name) {
			place, _ := r.kb.Get(name)
			return fmt.Sprintf("%s: %s", capitalize(name), place.Description)
		}
	}

	if r.llm == nil {
		return apologyReply
	}
	return r.llm.Reply(ctx, msg)
}

// itinerary builds a day-by-day plan from the knowledge base. Matching is
// plain substring on the lowercased message; the semantics are intentionally
// simple and must not be upgraded to fuzzy matching.
func (r *Router) itinerary(msg string) string {
	days := defaultDays
	if m := daysRe.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			days = n
		}
	}

	var matched []knowledge.Interest
	for _, interest := range r.kb.Interests() {
		if strings.Contains(msg, interest.Name) {
			matched = append(matched, interest)
		}
	}
	if len(matched) == 0 {
		for _, interest := range r.kb.Interests() {
			if interest.Name == defaultInterest {
				matched = append(matched, interest)
				break
			}
		}
	}

	var candidates []string
	for _, interest := range matched {
		candidates = append(candidates, interest.Places...)
	}
	if len(candidates) == 0 {
		candidates = r.kb.Names()
	}
	if len(candidates) == 0 {
		return noPlacesReply
	}

	blocks := make([]string, 0, days)
	for i := 0; i < days; i++ {
		name := candidates[i%len(candidates)]
		place, _ := r.kb.Get(name)
		blocks = append(blocks, dayBlock(i+1, name, place))
	}
	return strings.Join(blocks, "\n\n")
}

func dayBlock(day int, name string, place knowledge.Place) string {
	return fmt.Sprintf(
		"Day %d\n📍 %s - %s\n🕒 Best time: %s\n🎯 Activities: %s",
		day,
		capitalize(name),
		orNA(place.Description),
		orNA(place.BestTime),
		orNA(place.Activities),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
