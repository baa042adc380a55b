package useCases

import (
	"testing"

	"github.com/larriantoniy/tg_order_bot/internal/domain"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		intent  Intent
		payload string
	}{
		{name: "start", text: "/start", intent: IntentStart},
		{name: "order with payload", text: "/order Margherita; Salami", intent: IntentAddItems, payload: "Margherita; Salami"},
		{name: "order with empty payload", text: "/order ", intent: IntentAddItems, payload: ""},
		{name: "order with tab separator", text: "/order\tHawaii", intent: IntentAddItems, payload: "Hawaii"},
		{name: "order without separator", text: "/orderHawaii", intent: IntentNone},
		{name: "bare order", text: "/order", intent: IntentNone},
		{name: "multiline order ignored", text: "/order Hawaii\nSalami", intent: IntentNone},
		{name: "orders is show", text: "/orders", intent: IntentShow},
		{name: "remove", text: "/remove", intent: IntentRemove},
		{name: "cancel", text: "/cancel", intent: IntentCancel},
		{name: "submit", text: "/submit", intent: IntentSubmit},
		{name: "help", text: "/help", intent: IntentHelp},
		{name: "case sensitive", text: "/Start", intent: IntentNone},
		{name: "trailing space", text: "/start ", intent: IntentNone},
		{name: "leading text", text: "please /start", intent: IntentNone},
		{name: "plain chat", text: "who wants pizza?", intent: IntentNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cmd := Classify(domain.Message{Text: tt.text, HasText: true})
			if cmd.Intent != tt.intent {
				t.Fatalf("expected intent %s, got %s", tt.intent, cmd.Intent)
			}
			if cmd.Payload != tt.payload {
				t.Fatalf("expected payload %q, got %q", tt.payload, cmd.Payload)
			}
		})
	}
}

func TestClassify_NoText(t *testing.T) {
	t.Parallel()

	cmd := Classify(domain.Message{Text: "/start", HasText: false})
	if cmd.Intent != IntentNone {
		t.Fatalf("expected none for message without text, got %s", cmd.Intent)
	}
}

func TestSplitFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{name: "single", payload: "Hawaii", want: []string{"Hawaii"}},
		{name: "all delimiters", payload: "A; B and C & D", want: []string{"A", " B", "C", "D"}},
		{name: "empty payload kept", payload: "", want: []string{""}},
		{name: "trailing empty dropped", payload: "A;", want: []string{"A"}},
		{name: "leading empty kept", payload: ";A", want: []string{"", "A"}},
		{name: "inner empty kept", payload: "A;;B", want: []string{"A", "", "B"}},
		{name: "word boundary for and", payload: "Calzone andalusia", want: []string{"Calzone andalusia"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := SplitFragments(tt.payload)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %q, got %q", tt.want, got)
				}
			}
		})
	}
}
