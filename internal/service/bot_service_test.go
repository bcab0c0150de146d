package service

import (
	"reflect"
	"testing"
)

func TestBotClassify(t *testing.T) {
	bot := NewDefaultBot()

	tests := []struct {
		message string
		want    Intent
	}{
		{"What is the status of my claim?", IntentClaimStatus},
		{"I want to file an appeal on my claim status", IntentClaimStatus},
		{"How do I submit a claim?", IntentFileClaim},
		{"I'd like to appeal my decision", IntentAppeal},
		{"What evidence should I include?", IntentDocuments},
		{"How is my disability rating calculated?", IntentRating},
		{"Can you help me?", IntentHelp},
		{"Hi there", IntentGreeting},
		{"this is about something else", IntentUnknown},
		{"", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := bot.Classify(tt.message); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestBotClaimStatusHasPriority(t *testing.T) {
	bot := NewDefaultBot()

	// Matches file, appeal, document, rating, help and greeting keywords too.
	msg := "Hello, help me check my claim STATUS, appeal, file, document, rating"
	resp := bot.Reply(nil, msg)

	if resp.Intent != IntentClaimStatus {
		t.Fatalf("Intent = %q, want claim_status", resp.Intent)
	}
	want := DefaultBotResponses()[IntentClaimStatus].Suggestions
	if !reflect.DeepEqual(resp.Suggestions, want) {
		t.Errorf("Suggestions = %v, want %v", resp.Suggestions, want)
	}
}

func TestBotEveryIntentHasResponse(t *testing.T) {
	responses := DefaultBotResponses()
	if len(responses) != 8 {
		t.Errorf("len(responses) = %d, want 8", len(responses))
	}
	for _, rule := range DefaultIntentRules() {
		if _, ok := responses[rule.Intent]; !ok {
			t.Errorf("intent %q has no response", rule.Intent)
		}
	}
}

func TestBotCustomRules(t *testing.T) {
	rules := []IntentRule{{Intent: "gi_bill", AllOf: [][]string{{"gi bill", "education"}}}}
	responses := map[Intent]BotResponse{
		"gi_bill":     {Message: "GI Bill info", Suggestions: []string{"Chapter 33"}},
		IntentUnknown: {Message: "fallback"},
	}
	bot := NewBot(rules, responses)

	if got := bot.Reply(nil, "Tell me about the GI Bill"); got.Message != "GI Bill info" {
		t.Errorf("Reply() = %+v", got)
	}
	if got := bot.Reply(nil, "claim status"); got.Intent != IntentUnknown || got.Message != "fallback" {
		t.Errorf("Reply() = %+v, want unknown fallback", got)
	}
}

func TestBotRespondCopiesSuggestions(t *testing.T) {
	bot := NewDefaultBot()
	first := bot.Respond(IntentHelp)
	first.Suggestions[0] = "mutated"

	if second := bot.Respond(IntentHelp); second.Suggestions[0] == "mutated" {
		t.Error("Respond() shares the suggestion slice between calls")
	}
}
