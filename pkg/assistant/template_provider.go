package assistant

import (
	"context"
	"fmt"
	"strings"
)

// TemplateProvider is a deterministic assistant backend used when no model
// server is configured. It reflects the latest user message back with a
// journaling prompt so the conversation flow stays exercisable offline.
type TemplateProvider struct {
	Name string
}

var _ Provider = &TemplateProvider{}

func NewTemplateProvider(name string) *TemplateProvider {
	if name == "" {
		name = "Daksha"
	}
	return &TemplateProvider{Name: name}
}

func (t *TemplateProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	var lastUser string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			lastUser = strings.TrimSpace(history[i].Content)
			break
		}
	}

	if lastUser == "" {
		return fmt.Sprintf("Hi, I'm %s. What would you like to reflect on today?", t.Name), nil
	}

	return fmt.Sprintf("You wrote: %q. What stands out to you most about that, and why?", truncate(lastUser, 200)), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
