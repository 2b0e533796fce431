package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// runForm runs the fields as a single-group form with key help shown.
func runForm(fields ...huh.Field) error {
	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true).Run()
}

// promptString asks for a line of text. An empty answer returns defaultVal,
// which is shown as the placeholder.
func promptString(title, description, defaultVal string) (string, error) {
	var value string
	inp := huh.NewInput().Title(title).Value(&value)
	if description != "" {
		inp = inp.Description(description)
	}
	if defaultVal != "" {
		inp = inp.Placeholder(defaultVal)
	}

	if err := runForm(inp); err != nil {
		return "", err
	}
	if value == "" {
		return defaultVal, nil
	}
	return value, nil
}

// promptPassword asks for a secret with hidden input. Empty answers are returned as-is.
func promptPassword(title, description string) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value)
	if description != "" {
		inp = inp.Description(description)
	}

	if err := runForm(inp); err != nil {
		return "", err
	}
	return value, nil
}

// promptInt asks for an integer in [min, max]; an empty answer keeps current.
func promptInt(title string, current, min, max int) (int, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		Placeholder(strconv.Itoa(current)).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%q is not a number", s)
			}
			if n < min || n > max {
				return fmt.Errorf("must be between %d and %d", min, max)
			}
			return nil
		})

	if err := runForm(inp); err != nil {
		return current, err
	}
	if value == "" {
		return current, nil
	}
	return strconv.Atoi(value)
}

// promptSelect shows a single-select list and returns the chosen value.
func promptSelect[T comparable](title string, options []SelectOption[T], defaultIdx int) (T, error) {
	var value T

	huhOpts := make([]huh.Option[T], len(options))
	for i, opt := range options {
		huhOpts[i] = huh.NewOption(opt.Label, opt.Value)
	}
	if defaultIdx >= 0 && defaultIdx < len(options) {
		huhOpts[defaultIdx] = huhOpts[defaultIdx].Selected(true)
	}

	sel := huh.NewSelect[T]().Title(title).Options(huhOpts...).Value(&value)
	if err := runForm(sel); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// promptConfirm asks a yes/no question.
func promptConfirm(title string, defaultYes bool) (bool, error) {
	value := defaultYes
	c := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)

	if err := runForm(c); err != nil {
		return false, err
	}
	return value, nil
}

// SelectOption is a labelled choice for promptSelect.
type SelectOption[T any] struct {
	Label string
	Value T
}
