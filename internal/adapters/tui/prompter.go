package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jiranismart/jirani-cli/internal/domain"
)

// promptRequestMsg asks the running program to collect one answer. Flows
// block on reply from their own goroutine while the update loop keeps going.
type promptRequestMsg struct {
	label   string
	confirm bool
	reply   chan promptReply
}

type promptReply struct {
	value     string
	cancelled bool
}

// channelPrompter bridges ports.Prompter onto the program's message loop.
type channelPrompter struct {
	send func(tea.Msg)
}

func (p channelPrompter) Prompt(ctx context.Context, label string) (string, error) {
	return p.ask(ctx, label, false)
}

func (p channelPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	answer, err := p.ask(ctx, question, true)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p channelPrompter) ask(ctx context.Context, label string, confirm bool) (string, error) {
	reply := make(chan promptReply, 1)
	p.send(promptRequestMsg{label: label, confirm: confirm, reply: reply})

	select {
	case r := <-reply:
		if r.cancelled {
			return "", domain.ErrCancelled
		}
		return r.value, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
