// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

// 💬 Prompter asks the user questions
type Prompter interface {
	// Select returns the index of the chosen option
	Select(label string, options []string) (int, error)
	// Input returns the entered text, def when left empty
	Input(label, def string) (string, error)
	// Confirm asks a yes/no question
	Confirm(label string, def bool) (bool, error)
}

var _ Prompter = PtermPrompter{}

// PtermPrompter prompts on the terminal.
type PtermPrompter struct{}

func (PtermPrompter) Select(label string, options []string) (int, error) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText(label).
		WithOptions(options).
		WithMaxHeight(len(options)).
		Show()
	if err != nil {
		return -1, errors.Errorf("reading selection: %w", err)
	}
	for i, o := range options {
		if o == choice {
			return i, nil
		}
	}
	return -1, errors.Errorf("unknown selection %q", choice)
}

func (PtermPrompter) Input(label, def string) (string, error) {
	value, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(label).
		WithDefaultValue(def).
		Show()
	if err != nil {
		return "", errors.Errorf("reading input: %w", err)
	}
	if value == "" {
		return def, nil
	}
	return value, nil
}

func (PtermPrompter) Confirm(label string, def bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultText(label).
		WithDefaultValue(def).
		Show()
	if err != nil {
		return false, errors.Errorf("reading confirmation: %w", err)
	}
	return ok, nil
}

// The helpers below prompt through the configured Prompter and copy each
// answer to the transcript, since terminal prompts bypass the console
// writer.

func (a *App) choose(label string, options []string) (int, error) {
	choice, err := a.opts.Prompter.Select(label, options)
	if err != nil {
		return -1, err
	}
	if choice >= 0 && choice < len(options) {
		a.echo(label, options[choice])
	}
	return choice, nil
}

func (a *App) ask(label, def string) (string, error) {
	value, err := a.opts.Prompter.Input(label, def)
	if err != nil {
		return "", err
	}
	a.echo(label, value)
	return value, nil
}

func (a *App) confirm(label string, def bool) (bool, error) {
	ok, err := a.opts.Prompter.Confirm(label, def)
	if err != nil {
		return false, err
	}
	answer := "no"
	if ok {
		answer = "yes"
	}
	a.echo(label, answer)
	return ok, nil
}

func (a *App) echo(label, answer string) {
	if a.opts.Transcript != nil {
		fmt.Fprintf(a.opts.Transcript, "? %s %s\n", label, answer)
	}
}
