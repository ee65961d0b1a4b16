package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jiranismart/jirani-cli/internal/adapters/prompt"
	"github.com/jiranismart/jirani-cli/internal/adapters/render/dashboard"
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in: run `jirani auth login` first")

// busy runs task behind a spinner on stderr. Plain output skips the spinner.
func (a *app) busy(cmd *cobra.Command, label string, task func(context.Context) error) error {
	if a.plain {
		return task(cmd.Context())
	}

	return withSpinner(cmd.Context(), cmd.ErrOrStderr(), label, task)
}

// signIn restores the stored session on view and loads what it shows.
func (a *app) signIn(cmd *cobra.Command, view domain.ViewID) error {
	err := a.busy(cmd, "Loading dashboard...", func(ctx context.Context) error {
		return a.service.Bootstrap(ctx, view)
	})
	if errors.Is(err, domain.ErrNoSession) {
		return errNotSignedIn
	}

	return err
}

// signInAs is signIn for commands that only make sense for one role family.
func (a *app) signInAs(cmd *cobra.Command, family domain.RoleFamily, view domain.ViewID) error {
	if err := a.signIn(cmd, view); err != nil {
		return err
	}

	role := a.service.Snapshot().Role()
	if role.Family() != family {
		return fmt.Errorf("%s is a %s command; signed in as %s", cmd.CommandPath(), family, role)
	}

	return nil
}

func (a *app) printScreen(cmd *cobra.Command) error {
	screen := application.Project(a.service.Snapshot(), a.service.BaseURL(cmd.Context()))

	rendered, err := a.renderer(screen, dashboard.RenderOptions{Width: a.width, Plain: a.plain})
	if err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// perform runs one dashboard action with flag answers filled in, asks the
// terminal for anything missing, and prints the resulting dashboard. The
// dashboard is printed even when the action fails so its alert is visible.
func (a *app) perform(cmd *cobra.Command, action application.Action, answers map[string]string, confirmed bool) error {
	a.service.SetPrompter(prompt.Static{Answers: answers, Confirmed: confirmed, Fallback: a.terminal})

	err := a.service.Perform(cmd.Context(), action)
	if printErr := a.printScreen(cmd); printErr != nil && err == nil {
		err = printErr
	}

	return err
}

// flagAnswers maps prompt labels to flag values. Optional flags always
// answer; required ones answer only when set, so the terminal asks for the
// rest.
func flagAnswers(cmd *cobra.Command, labels map[string]string, optional ...string) map[string]string {
	answers := map[string]string{}
	isOptional := map[string]bool{}
	for _, name := range optional {
		isOptional[name] = true
	}

	for name, label := range labels {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if flag.Changed || isOptional[name] {
			answers[label] = flag.Value.String()
		}
	}

	return answers
}
