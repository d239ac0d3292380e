package analytics

import (
	"context"

	"github.com/dozr/sleeptrack/internal/entry"
)

// Completer is the chat-completion gateway contract. Implementations report
// failures as sentinel strings in the returned text, never as errors.
type Completer interface {
	Complete(ctx context.Context, prompt string) string
}

type Service struct {
	entries *entry.Service
	llm     Completer
}

func NewService(entries *entry.Service, llm Completer) *Service {
	return &Service{entries: entries, llm: llm}
}

// AnalyzeEntry asks the model for an assessment of a single sleep entry.
// The entry id is trusted as given; there is no ownership check against the
// calling user.
func (s *Service) AnalyzeEntry(ctx context.Context, entryID string) (string, error) {
	e, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return "", err
	}
	prompt, err := BuildEntryPrompt(e)
	if err != nil {
		return "", err
	}
	return StripReasoning(s.llm.Complete(ctx, prompt)), nil
}

// AnalyzeAllForUser asks the model for a multi-day assessment over every
// entry the user owns. An empty history still produces a prompt.
func (s *Service) AnalyzeAllForUser(ctx context.Context, userID string) (string, error) {
	entries, err := s.entries.GetAllForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	prompt, err := BuildEntriesPrompt(entries)
	if err != nil {
		return "", err
	}
	return StripReasoning(s.llm.Complete(ctx, prompt)), nil
}
