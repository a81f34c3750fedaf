package responder

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Eliza is the local pattern responder. It matches the input against a
// fixed rule list, reflects pronouns in the captured fragment and rotates
// through each rule's responses so repeated prompts do not repeat verbatim.
// Given the same input and rotation state the reply is deterministic, and
// it never fails.
type Eliza struct {
	rules    []elizaRule
	rotation []int
	fallback int
}

type elizaRule struct {
	pattern   *regexp.Regexp
	responses []string
}

var elizaRules = []elizaRule{
	{regexp.MustCompile(`(?i)\b(?:hello|hi|hey)\b`), []string{
		"Hello. How are you feeling today?",
		"Hi there. What would you like to talk about?",
	}},
	{regexp.MustCompile(`(?i)\bi need (.+)`), []string{
		"Why do you need %s?",
		"Would it really help you to get %s?",
		"Are you sure you need %s?",
	}},
	{regexp.MustCompile(`(?i)\bwhy don'?t you (.+)`), []string{
		"Do you really think I don't %s?",
		"Perhaps eventually I will %s.",
	}},
	{regexp.MustCompile(`(?i)\bwhy can'?t i (.+)`), []string{
		"Do you think you should be able to %s?",
		"What would it take for you to %s?",
	}},
	{regexp.MustCompile(`(?i)\bi can'?t (.+)`), []string{
		"How do you know you can't %s?",
		"Have you tried?",
	}},
	{regexp.MustCompile(`(?i)\bi(?:'m| am) (.+)`), []string{
		"How long have you been %s?",
		"How do you feel about being %s?",
	}},
	{regexp.MustCompile(`(?i)\byou(?:'re| are) (.+)`), []string{
		"Why do you say I am %s?",
		"What makes you think I am %s?",
	}},
	{regexp.MustCompile(`(?i)\bbecause\b`), []string{
		"Is that the real reason?",
		"What other reasons come to mind?",
	}},
	{regexp.MustCompile(`(?i)\bsorry\b`), []string{
		"There is no need to apologize.",
		"What feelings do you have when you apologize?",
	}},
	{regexp.MustCompile(`(?i)\bmy (.+)`), []string{
		"Tell me more about your %s.",
		"Why do you mention your %s?",
	}},
	{regexp.MustCompile(`(?i)\bcomputer\b`), []string{
		"Do computers worry you?",
		"What do you think about machines?",
	}},
	{regexp.MustCompile(`(?i)^yes\b`), []string{
		"You seem quite sure.",
		"Can you elaborate on that?",
	}},
	{regexp.MustCompile(`(?i)^no\b`), []string{
		"Why not?",
		"Are you saying no just to be negative?",
	}},
	{regexp.MustCompile(`(?i)\byou (.+)`), []string{
		"We were discussing you, not me.",
		"Why do you say that I %s?",
	}},
}

var elizaFallbacks = []string{
	"Please tell me more.",
	"Let's change focus a bit. Tell me about your day.",
	"Can you elaborate on that?",
	"I see. And what does that tell you?",
	"How does that make you feel?",
}

var elizaReflections = map[string]string{
	"am":     "are",
	"was":    "were",
	"i":      "you",
	"i'd":    "you would",
	"i've":   "you have",
	"i'll":   "you will",
	"i'm":    "you are",
	"my":     "your",
	"are":    "am",
	"you'd":  "I would",
	"you've": "I have",
	"you'll": "I will",
	"you're": "I am",
	"your":   "my",
	"yours":  "mine",
	"you":    "me",
	"me":     "you",
	"myself": "yourself",
}

func NewEliza() *Eliza {
	return &Eliza{
		rules:    elizaRules,
		rotation: make([]int, len(elizaRules)),
	}
}

func (e *Eliza) Respond(_ context.Context, text string) (string, error) {
	input := strings.TrimRight(strings.TrimSpace(text), ".!?")

	for i, rule := range e.rules {
		m := rule.pattern.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		response := rule.responses[e.rotation[i]%len(rule.responses)]
		e.rotation[i]++
		if strings.Contains(response, "%s") && len(m) > 1 {
			return fmt.Sprintf(response, reflect(m[1])), nil
		}
		return response, nil
	}

	response := elizaFallbacks[e.fallback%len(elizaFallbacks)]
	e.fallback++
	return response, nil
}

// reflect swaps first and second person so captured fragments read
// naturally when echoed back ("my job" -> "your job").
func reflect(fragment string) string {
	words := strings.Fields(strings.ToLower(fragment))
	for i, w := range words {
		if r, ok := elizaReflections[w]; ok {
			words[i] = r
		}
	}
	return strings.Join(words, " ")
}

var _ Responder = (*Eliza)(nil)
