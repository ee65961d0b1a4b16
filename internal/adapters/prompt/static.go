package prompt

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/jiranismart/jirani-cli/internal/ports"
)

// Static answers from values fixed up front, typically command flags.
// Labels without an answer go to Fallback, or cancel when it is nil.
type Static struct {
	Answers   map[string]string
	Confirmed bool
	Fallback  ports.Prompter
}

var _ ports.Prompter = Static{}

func (s Static) Prompt(ctx context.Context, label string) (string, error) {
	if answer, ok := s.Answers[label]; ok {
		return answer, nil
	}
	if s.Fallback != nil {
		return s.Fallback.Prompt(ctx, label)
	}

	return "", domain.ErrCancelled
}

func (s Static) Confirm(ctx context.Context, question string) (bool, error) {
	if s.Confirmed || s.Fallback == nil {
		return s.Confirmed, nil
	}

	return s.Fallback.Confirm(ctx, question)
}
