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
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// menuState is a node of the interactive menu.
type menuState int

const (
	stateMain menuState = iota
	statePickJob
	stateManual
	stateExit
)

const (
	itemRunJob = iota
	itemRunAll
	itemManual
	itemDryRun
	itemInit
	itemLogs
	itemExit
)

func (a *App) mainItems() []string {
	dry := "off"
	if a.dryRun {
		dry = "on"
	}
	return []string{
		itemRunJob: "Run a job",
		itemRunAll: "Run all jobs",
		itemManual: "Manual copy",
		itemDryRun: fmt.Sprintf("Dry run: %s", dry),
		itemInit:   "Create job file",
		itemLogs:   "Open log folder",
		itemExit:   "Exit",
	}
}

// 🔄 Menu runs the interactive loop until Exit is chosen. Action failures
// are reported and the menu is shown again; only a failing prompt ends the
// loop early.
func (a *App) Menu(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	state := stateMain

	for state != stateExit {
		logger.Debug().Int("state", int(state)).Msg("menu")

		var err error
		switch state {
		case stateMain:
			state, err = a.menuMain(ctx)
		case statePickJob:
			state, err = a.menuPickJob(ctx)
		case stateManual:
			state, err = a.menuManual(ctx)
		}
		if err != nil {
			return err
		}
	}

	a.opts.Logger.Info("bye")
	return nil
}

func (a *App) menuMain(ctx context.Context) (menuState, error) {
	choice, err := a.choose("What would you like to do?", a.mainItems())
	if err != nil {
		return stateExit, err
	}

	switch choice {
	case itemRunJob:
		if err := a.requireJobs(); err != nil {
			a.opts.Logger.Error(err.Error())
			return stateMain, nil
		}
		return statePickJob, nil
	case itemRunAll:
		_, err := a.RunAll(ctx)
		a.report(err)
	case itemManual:
		return stateManual, nil
	case itemDryRun:
		a.dryRun = !a.dryRun
	case itemInit:
		path, err := a.CreateConfig(ctx, "")
		if err == nil && path != "" {
			err = a.UseConfig(ctx, path)
		}
		a.report(err)
	case itemLogs:
		a.report(a.OpenLogs(ctx))
	case itemExit:
		return stateExit, nil
	}

	return stateMain, nil
}

func (a *App) menuPickJob(ctx context.Context) (menuState, error) {
	names := a.registry.Names()
	options := append(append([]string{}, names...), "Back")

	choice, err := a.choose("Which job?", options)
	if err != nil {
		return stateExit, err
	}
	if choice >= len(names) {
		return stateMain, nil
	}

	_, err = a.RunJob(ctx, names[choice])
	a.report(err)
	return stateMain, nil
}

func (a *App) menuManual(ctx context.Context) (menuState, error) {
	source, err := a.ask("Source folder", "")
	if err != nil {
		return stateExit, err
	}
	destination, err := a.ask("Destination folder", "")
	if err != nil {
		return stateExit, err
	}
	mirror, err := a.confirm("Mirror (delete files missing from the source)?", false)
	if err != nil {
		return stateExit, err
	}

	_, err = a.RunManual(ctx, source, destination, mirror)
	a.report(err)
	return stateMain, nil
}

func (a *App) report(err error) {
	if err != nil {
		a.opts.Logger.Error(err.Error())
	}
}
