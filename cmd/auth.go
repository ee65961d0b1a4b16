package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jiranismart/jirani-cli/internal/adapters/prompt"
	"github.com/jiranismart/jirani-cli/internal/application"
	"github.com/jiranismart/jirani-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAuthCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign in, register and recover your account",
	}

	cmd.AddCommand(
		newAuthLoginCmd(a),
		newAuthRegisterCmd(a),
		newAuthForgotCmd(a),
		newAuthResetCmd(a),
		newAuthLogoutCmd(a),
		newAuthWhoamiCmd(a),
	)

	return cmd
}

// runForm answers the form from flags, asks the terminal for the rest and
// prints the resulting screen. Form failures show up as the screen notice.
func (a *app) runForm(cmd *cobra.Command, answers map[string]string, submit func(context.Context) error) error {
	a.service.SetPrompter(prompt.Static{Answers: answers, Fallback: a.terminal})

	err := submit(cmd.Context())
	if printErr := a.printScreen(cmd); printErr != nil && err == nil {
		err = printErr
	}

	return err
}

func newAuthLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and show your dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := flagAnswers(cmd, map[string]string{
				"phone":    application.LabelPhone,
				"role":     application.LabelRole,
				"password": application.LabelPassword,
			})
			return a.runForm(cmd, answers, a.service.PromptLogin)
		},
	}

	cmd.Flags().String("phone", "", "Phone number, 07XXXXXXXX or +2547XXXXXXXX")
	cmd.Flags().String("role", "", "Role: Buyer, Seller, Biker, Bodaboda, Mechanic, Road assistant or Agent")
	cmd.Flags().String("password", "", "Password (asked when omitted)")

	return cmd
}

func newAuthRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := flagAnswers(cmd, map[string]string{
				"name":              application.LabelName,
				"phone":             application.LabelPhone,
				"role":              application.LabelRole,
				"password":          application.LabelPassword,
				"confirm":           application.LabelConfirmPassword,
				"business-category": application.LabelBusinessType,
				"detail":            application.LabelDetail,
			}, "business-category", "detail")
			if _, ok := answers[application.LabelConfirmPassword]; !ok {
				if password, ok := answers[application.LabelPassword]; ok {
					answers[application.LabelConfirmPassword] = password
				}
			}

			return a.runForm(cmd, answers, a.service.PromptRegister)
		},
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("role", "", "Role (default Buyer when left empty)")
	cmd.Flags().String("password", "", "Password, at least 6 characters")
	cmd.Flags().String("confirm", "", "Password confirmation (defaults to --password)")
	cmd.Flags().String("business-category", "", "Sellers: business category (default General)")
	cmd.Flags().String("detail", "", "Bikers, agents and mechanics: vehicle, region or specialty")

	return cmd
}

func newAuthForgotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forgot",
		Short: "Send a password reset code to your phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := flagAnswers(cmd, map[string]string{"phone": application.LabelPhone})
			return a.runForm(cmd, answers, a.service.PromptForgotPassword)
		},
	}

	cmd.Flags().String("phone", "", "Phone number")

	return cmd
}

func newAuthResetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with the code you received",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			answers := flagAnswers(cmd, map[string]string{
				"phone":    application.LabelPhone,
				"code":     application.LabelCode,
				"password": application.LabelNewPassword,
				"confirm":  application.LabelConfirmNew,
			})
			if _, ok := answers[application.LabelConfirmNew]; !ok {
				if password, ok := answers[application.LabelNewPassword]; ok {
					answers[application.LabelConfirmNew] = password
				}
			}

			return a.runForm(cmd, answers, a.service.PromptResetPassword)
		},
	}

	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("code", "", "Verification code")
	cmd.Flags().String("password", "", "New password")
	cmd.Flags().String("confirm", "", "New password confirmation (defaults to --password)")

	return cmd
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.service.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

type whoamiOutput struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Role      string         `json:"role"`
	Stats     map[string]any `json:"stats"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
	Expired   bool           `json:"expired"`
}

func newAuthWhoamiCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.service.Whoami(cmd.Context())
			if errors.Is(err, domain.ErrNoSession) {
				return errNotSignedIn
			}
			if err != nil {
				return err
			}

			out := whoamiOutput{
				ID:      info.User.ID.Value,
				Name:    info.User.Name,
				Phone:   info.User.Phone,
				Role:    string(info.User.Role),
				Stats:   info.Stats,
				Expired: info.Expired(a.now()),
			}
			if !info.ExpiresAt.IsZero() {
				out.ExpiresAt = &info.ExpiresAt
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			lines := []string{
				fmt.Sprintf("name:  %s", out.Name),
				fmt.Sprintf("role:  %s", out.Role),
				fmt.Sprintf("phone: %s", out.Phone),
				fmt.Sprintf("id:    %s", out.ID),
			}
			switch {
			case out.ExpiresAt == nil:
				lines = append(lines, "token: no expiry")
			case out.Expired:
				lines = append(lines, "token: expired "+out.ExpiresAt.Format(time.RFC3339))
			default:
				lines = append(lines, "token: expires "+out.ExpiresAt.Format(time.RFC3339))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
