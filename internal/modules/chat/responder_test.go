// README: Prompt assembly and degraded-mode responder tests.
package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"mawad/internal/ai"
	"mawad/internal/modules/agent"
)

type fakeAI struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestBuildPromptIncludesAllowList(t *testing.T) {
	ident := agent.Identity{Name: "أحمد", Phone: "0512345678"}
	prompt := buildPrompt([]string{"العميل: أبغى أسمنت"}, ident, []string{"عمان", "العراق"})

	if !strings.Contains(prompt, "عمان, العراق") {
		t.Fatal("allow-list not rendered into prompt")
	}
	if strings.Contains(prompt, locationsPlaceholder) {
		t.Fatal("placeholder left unsubstituted")
	}
	if !strings.Contains(prompt, "الاسم: أحمد\nالجوال: 0512345678\n") {
		t.Fatal("identity lines missing")
	}
	if !strings.HasSuffix(prompt, "\nالبائع:") {
		t.Fatal("seller cue missing")
	}
}

func TestBuildPromptNoRestrictions(t *testing.T) {
	prompt := buildPrompt(nil, agent.Identity{}, nil)
	if !strings.Contains(prompt, noRestrictions) {
		t.Fatal("empty allow-list must render the unrestricted marker")
	}
}

func TestRespondTrimsReply(t *testing.T) {
	client := &fakeAI{reply: "  أهلاً وسهلاً  \n"}
	got := Respond(context.Background(), client, []string{"العميل: مرحبا"}, agent.Identity{}, nil)
	if got != "أهلاً وسهلاً" {
		t.Fatalf("got %q", got)
	}
}

func TestRespondUnavailableBackend(t *testing.T) {
	client := &fakeAI{err: ai.ErrUnavailable}
	got := Respond(context.Background(), client, nil, agent.Identity{}, nil)
	if got != msgAIUnavailable {
		t.Fatalf("got %q, want unavailable message", got)
	}
}

func TestRespondTransportError(t *testing.T) {
	client := &fakeAI{err: errors.New("rpc: deadline exceeded")}
	got := Respond(context.Background(), client, nil, agent.Identity{}, nil)
	if got != msgAIError {
		t.Fatalf("got %q, want retry message", got)
	}
}
