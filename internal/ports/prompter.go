package ports

import "context"

// Prompter asks the user for a value or a yes/no answer. Both return
// domain.ErrCancelled when the user backs out.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
}
