package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/impact/internal/model"
	"github.com/charmbracelet/huh"
)

// AskAction is the interactive prompt used by `impact add` when text or
// weight is missing.
func AskAction(prefill string) (string, int, error) {
	text := prefill
	weight := 0

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Action").
				Placeholder("Add a new action").
				Value(&text).
				Validate(nonBlank),
			huh.NewSelect[int]().
				Title("Impact").
				Options(huh.NewOptions(model.Weights()...)...).
				Value(&weight).
				Validate(pickedWeight),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", 0, err
	}
	return text, weight, nil
}

func pickedWeight(w int) error {
	if !model.ValidWeight(w) {
		return fmt.Errorf("pick an impact from %d to %d", model.MinWeight, model.MaxWeight)
	}
	return nil
}

func nonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("text is required")
	}
	return nil
}
