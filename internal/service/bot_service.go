package service

import (
	"strings"

	"valor-assist/internal/dto"
)

type Intent string

const (
	IntentClaimStatus Intent = "claim_status"
	IntentFileClaim   Intent = "file_claim"
	IntentAppeal      Intent = "appeal"
	IntentDocuments   Intent = "documents"
	IntentRating      Intent = "rating"
	IntentHelp        Intent = "help"
	IntentGreeting    Intent = "greeting"
	IntentUnknown     Intent = "unknown"
)

// IntentRule matches when every group in AllOf has at least one keyword
// present in the message. Rules are checked in order; the first match wins.
type IntentRule struct {
	Intent Intent
	AllOf  [][]string
}

type BotResponse struct {
	Intent      Intent
	Message     string
	Suggestions []string
}

// DefaultIntentRules lists intents from most to least specific.
func DefaultIntentRules() []IntentRule {
	return []IntentRule{
		{Intent: IntentClaimStatus, AllOf: [][]string{{"claim"}, {"status"}}},
		{Intent: IntentFileClaim, AllOf: [][]string{{"file", "submit"}}},
		{Intent: IntentAppeal, AllOf: [][]string{{"appeal"}}},
		{Intent: IntentDocuments, AllOf: [][]string{{"document", "evidence"}}},
		{Intent: IntentRating, AllOf: [][]string{{"rating", "disability"}}},
		{Intent: IntentHelp, AllOf: [][]string{{"help"}}},
		{Intent: IntentGreeting, AllOf: [][]string{{"hello", "hi", "hey"}}},
	}
}

func DefaultBotResponses() map[Intent]BotResponse {
	return map[Intent]BotResponse{
		IntentClaimStatus: {
			Message: "You can check the status of your VA claim online at VA.gov or by calling 1-800-827-1000. If you share your claim details with our team, we can help you understand where it stands.",
			Suggestions: []string{
				"How long does a claim take?",
				"What do the claim phases mean?",
				"Talk to a claims specialist",
			},
		},
		IntentFileClaim: {
			Message: "To file a disability claim you will need your DD-214, medical records showing a current diagnosis, and evidence connecting it to your service. Our intake form walks you through each step.",
			Suggestions: []string{
				"Start my claim",
				"What documents do I need?",
				"What is an intent to file?",
			},
		},
		IntentAppeal: {
			Message: "If you disagree with a VA decision you generally have one year to request a Supplemental Claim, a Higher-Level Review, or a Board Appeal. We can help you choose the right lane.",
			Suggestions: []string{
				"Which appeal option is right for me?",
				"What is a Higher-Level Review?",
				"Draft a notice of disagreement",
			},
		},
		IntentDocuments: {
			Message: "Strong claims usually include service treatment records, current medical evidence, buddy statements, and a nexus letter from a provider. We can generate templates for personal and buddy statements.",
			Suggestions: []string{
				"Generate a buddy statement",
				"What is a nexus letter?",
				"Upload a decision letter",
			},
		},
		IntentRating: {
			Message: "VA disability ratings range from 0 to 100 percent in 10 percent steps. Multiple conditions are combined using VA math rather than added together.",
			Suggestions: []string{
				"How is a combined rating calculated?",
				"Can I get an increase?",
				"What is TDIU?",
			},
		},
		IntentHelp: {
			Message: "I can help with filing a claim, checking claim status, appeals, evidence, and disability ratings. What would you like to know?",
			Suggestions: []string{
				"File a new claim",
				"Check my claim status",
				"Speak with a representative",
			},
		},
		IntentGreeting: {
			Message: "Hello, and thank you for your service. I'm the Valor Assist bot. How can I help with your VA benefits today?",
			Suggestions: []string{
				"File a claim",
				"Check claim status",
				"Learn about appeals",
			},
		},
		IntentUnknown: {
			Message: "I'm not sure I understood that. A member of our team can help, or you can choose one of the topics below.",
			Suggestions: []string{
				"File a claim",
				"Check claim status",
				"Talk to a specialist",
			},
		},
	}
}

// Bot is a keyword classifier over a rule table. It holds no state, so one
// instance is shared by every thread.
type Bot struct {
	rules     []IntentRule
	responses map[Intent]BotResponse
}

func NewBot(rules []IntentRule, responses map[Intent]BotResponse) *Bot {
	return &Bot{rules: rules, responses: responses}
}

func NewDefaultBot() *Bot {
	return NewBot(DefaultIntentRules(), DefaultBotResponses())
}

func (b *Bot) Classify(message string) Intent {
	text := strings.ToLower(message)
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '\'')
	})

	for _, rule := range b.rules {
		if ruleMatches(rule, text, words) {
			return rule.Intent
		}
	}
	return IntentUnknown
}

func ruleMatches(rule IntentRule, text string, words []string) bool {
	if len(rule.AllOf) == 0 {
		return false
	}
	for _, group := range rule.AllOf {
		if !groupMatches(group, text, words) {
			return false
		}
	}
	return true
}

// Keywords of three letters or fewer must match a whole word so that "hi"
// does not fire on "this".
func groupMatches(group []string, text string, words []string) bool {
	for _, keyword := range group {
		if len(keyword) > 3 {
			if strings.Contains(text, keyword) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == keyword {
				return true
			}
		}
	}
	return false
}

func (b *Bot) Respond(intent Intent) BotResponse {
	resp, ok := b.responses[intent]
	if !ok {
		resp = b.responses[IntentUnknown]
	}
	resp.Intent = intent
	resp.Suggestions = append([]string(nil), resp.Suggestions...)
	return resp
}

// Reply maps a conversation to the bot's answer. History is accepted so a
// richer rule set can use it; the keyword rules only read the last message.
func (b *Bot) Reply(_ []dto.ChatHistoryMessage, message string) BotResponse {
	return b.Respond(b.Classify(message))
}
