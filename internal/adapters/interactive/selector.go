package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// Confirm asks a yes/no question. Non-interactive runs never prompt and count as confirmed.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return true, nil
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

// SelectOne lets the user pick one of options with fuzzy search
func (s *SelectorAdapter) SelectOne(ctx context.Context, options []string, prompt string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nothing to select from")
	}
	if len(options) == 1 {
		return options[0], nil
	}
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return options[index], nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var (
	_ usecase.Confirmer = (*SelectorAdapter)(nil)
	_ usecase.Selector  = (*SelectorAdapter)(nil)
)
