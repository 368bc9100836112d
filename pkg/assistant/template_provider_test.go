package assistant

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateProviderReflectsLastUserMessage(t *testing.T) {
	provider := NewTemplateProvider("Daksha")

	reply, err := provider.Chat(context.Background(), []Message{
		{Role: "user", Content: "I keep postponing the hard tasks."},
		{Role: "assistant", Content: "Tell me more."},
		{Role: "user", Content: "Mornings are the worst."},
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !strings.Contains(reply, "Mornings are the worst.") {
		t.Errorf("reply %q does not reflect the last user message", reply)
	}
}

func TestTemplateProviderGreetsWithoutHistory(t *testing.T) {
	provider := NewTemplateProvider("")

	reply, err := provider.Chat(context.Background(), nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !strings.Contains(reply, "Daksha") {
		t.Errorf("reply %q does not use the default assistant name", reply)
	}
}

func TestTemplateProviderTruncatesLongMessages(t *testing.T) {
	provider := NewTemplateProvider("Daksha")

	long := strings.Repeat("a", 400)
	reply, err := provider.Chat(context.Background(), []Message{{Role: "user", Content: long}})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if strings.Contains(reply, long) {
		t.Error("reply contains the full untruncated message")
	}
	if !strings.Contains(reply, strings.Repeat("a", 200)+"...") {
		t.Error("reply does not contain the truncated message")
	}
}
