package application

import (
	"context"

	"github.com/jiranismart/jirani-cli/internal/domain"
)

// Prompt labels. Front ends that already hold some answers, such as command
// flags, key them by these labels.
const (
	LabelName            = "Full Name"
	LabelPhone           = "Phone"
	LabelRole            = "Role"
	LabelPassword        = "Password"
	LabelConfirmPassword = "Confirm Password"
	LabelBusinessType    = "Business Category"
	LabelDetail          = "Details"
	LabelCode            = "Verification Code"
	LabelNewPassword     = "New Password"
	LabelConfirmNew      = "Confirm New Password"
	LabelBaseURL         = "API base URL"

	LabelSearch      = "Search product e.g. milk, bread, charger"
	LabelCategory    = "Category"
	LabelIssue       = "Issue"
	LabelRegion      = "Region"
	LabelVehicle     = "Vehicle Details"
	LabelProductName = "Name"
	LabelPrice       = "Price"
	LabelStock       = "Stock Quantity"
	LabelDescription = "Description"
	LabelNewStock    = "New stock quantity:"
	LabelAmount      = "Amount"
)

// PromptLogin collects the login form through the prompter, signs in and
// loads the role's landing view.
func (a *App) PromptLogin(ctx context.Context) error {
	values, err := a.ask(ctx, LabelPhone, LabelRole, LabelPassword)
	if err != nil {
		return err
	}

	if err := a.Login(ctx, LoginForm{Phone: values[0], Role: values[1], Password: values[2]}); err != nil {
		return err
	}

	return a.LoadView(ctx)
}

// PromptRegister asks for the extra detail only when the chosen role uses
// one.
func (a *App) PromptRegister(ctx context.Context) error {
	values, err := a.ask(ctx, LabelName, LabelPhone, LabelRole, LabelPassword, LabelConfirmPassword)
	if err != nil {
		return err
	}

	form := RegisterForm{Name: values[0], Phone: values[1], Role: values[2], Password: values[3], ConfirmPassword: values[4]}

	var extra []string
	switch domain.NormalizeRoleName(form.Role) {
	case "seller":
		extra, err = a.ask(ctx, LabelBusinessType)
		if err == nil {
			form.BusinessCategory = extra[0]
		}
	case "biker", "agent", "mechanic":
		extra, err = a.ask(ctx, LabelDetail)
		if err == nil {
			form.Detail = extra[0]
		}
	}
	if err != nil {
		return err
	}

	return a.Register(ctx, form)
}

func (a *App) PromptForgotPassword(ctx context.Context) error {
	values, err := a.ask(ctx, LabelPhone)
	if err != nil {
		return err
	}

	return a.ForgotPassword(ctx, ForgotForm{Phone: values[0]})
}

func (a *App) PromptResetPassword(ctx context.Context) error {
	values, err := a.ask(ctx, LabelPhone, LabelCode, LabelNewPassword, LabelConfirmNew)
	if err != nil {
		return err
	}

	return a.ResetPassword(ctx, ResetForm{Phone: values[0], Code: values[1], NewPassword: values[2], ConfirmNewPassword: values[3]})
}

// PromptBaseURL asks for a backend address and saves it as the override.
func (a *App) PromptBaseURL(ctx context.Context) error {
	values, err := a.ask(ctx, LabelBaseURL)
	if err != nil {
		return err
	}

	_, err = a.SaveBaseURL(ctx, values[0])
	return err
}
