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
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/robomirror/pkg/config"
	"github.com/walteh/robomirror/pkg/log"
	"github.com/walteh/robomirror/pkg/robocopy"
	"github.com/walteh/robomirror/pkg/robocopy/robocopytest"
)

// Tests in this file change the process working directory and must not run
// in parallel.

// 💬 scriptedPrompter answers prompts from a fixed script
type scriptedPrompter struct {
	t       *testing.T
	selects []int
	inputs  []string
	confirm []bool
	labels  []string
}

func (p *scriptedPrompter) Select(label string, options []string) (int, error) {
	p.labels = append(p.labels, label)
	if len(p.selects) == 0 {
		return -1, io.EOF
	}
	choice := p.selects[0]
	p.selects = p.selects[1:]
	require.Less(p.t, choice, len(options), "scripted choice out of range for %q", label)
	return choice, nil
}

func (p *scriptedPrompter) Input(label, def string) (string, error) {
	p.labels = append(p.labels, label)
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	if v == "" {
		return def, nil
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(label string, def bool) (bool, error) {
	p.labels = append(p.labels, label)
	if len(p.confirm) == 0 {
		return false, io.EOF
	}
	v := p.confirm[0]
	p.confirm = p.confirm[1:]
	return v, nil
}

func getwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return realpath(t, wd)
}

func realpath(t *testing.T, p string) string {
	t.Helper()
	out, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return out
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

type fixture struct {
	root    string
	invoke  string
	cfgDir  string
	fake    *robocopytest.Fake
	console *bytes.Buffer
	prompt  *scriptedPrompter
	// cwds records the working directory at each tool invocation
	cwds []string
}

func newFixture(t *testing.T, cfg string) *fixture {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	root := realpath(t, t.TempDir())
	f := &fixture{
		root:    root,
		invoke:  filepath.Join(root, "invoke"),
		cfgDir:  filepath.Join(root, "cfg"),
		console: &bytes.Buffer{},
		prompt:  &scriptedPrompter{t: t},
	}
	require.NoError(t, os.MkdirAll(f.invoke, 0755))
	require.NoError(t, os.MkdirAll(f.cfgDir, 0755))
	if cfg != "" {
		writeFiles(t, f.cfgDir, map[string]string{config.DefaultFileName: cfg})
	}

	f.fake = &robocopytest.Fake{ExitCode: func(robocopy.Options) (int, bool) {
		wd, err := os.Getwd()
		if err == nil {
			f.cwds = append(f.cwds, wd)
		}
		return 0, false
	}}
	return f
}

func (f *fixture) options(mode Mode) Options {
	return Options{
		Mode:       mode,
		ConfigPath: filepath.Join(f.cfgDir, config.DefaultFileName),
		WorkingDir: f.invoke,
		LogDir:     filepath.Join(f.root, "logs"),
		Tool:       f.fake,
		Logger:     log.New(f.console, zerolog.Nop()),
		Prompter:   f.prompt,
	}
}

const docsConfig = `{"jobs":[
	{"name":"Docs","source":"./a","destination":"./b","mirror":true},
	{"name":"Music","source":"./m","destination":"./mb","mirror":false}
]}`

func TestRunRelativePathsAndWorkingDirectory(t *testing.T) {
	start := getwd(t)
	f := newFixture(t, docsConfig)
	writeFiles(t, f.cfgDir, map[string]string{"a/one.txt": "1"})

	err := Run(context.Background(), f.options(RunNamedJob{Name: "Docs"}))
	require.NoError(t, err)

	calls := f.fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, filepath.Join(f.cfgDir, "a"), calls[0][0], "source resolves against the job file directory")
	assert.Equal(t, filepath.Join(f.cfgDir, "b"), calls[0][1])
	assert.FileExists(t, filepath.Join(f.cfgDir, "b", "one.txt"))

	require.Len(t, f.cwds, 1)
	assert.Equal(t, f.cfgDir, realpath(t, f.cwds[0]), "jobs run inside the job file directory")
	assert.Equal(t, start, getwd(t), "working directory restored")
}

func TestRunRestoresWorkingDirectoryOnFailure(t *testing.T) {
	start := getwd(t)

	t.Run("job_not_found", func(t *testing.T) {
		f := newFixture(t, docsConfig)
		err := Run(context.Background(), f.options(RunNamedJob{Name: "Nope"}))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrJobNotFound)
		assert.Contains(t, err.Error(), "available: Docs, Music")
		assert.Empty(t, f.fake.Calls())
		assert.Equal(t, start, getwd(t))
	})

	t.Run("invalid_job_file", func(t *testing.T) {
		f := newFixture(t, `{"jobs":[{"name":"Docs","source":"./a"}]}`)
		err := Run(context.Background(), f.options(RunAllJobs{}))
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrJobValidation)
		assert.Empty(t, f.fake.Calls(), "no job runs when validation fails")
		assert.Equal(t, start, getwd(t))
	})

	t.Run("tool_panics", func(t *testing.T) {
		f := newFixture(t, docsConfig)
		opts := f.options(RunNamedJob{Name: "Docs"})
		opts.Tool = panicTool{}
		assert.Panics(t, func() { _ = Run(context.Background(), opts) })
		assert.Equal(t, start, getwd(t))
	})
}

type panicTool struct{}

func (panicTool) Run(context.Context, []string) (robocopy.Result, error) {
	panic("tool exploded")
}

func TestRunConfigErrors(t *testing.T) {
	t.Run("explicit_config_missing", func(t *testing.T) {
		f := newFixture(t, "")
		err := Run(context.Background(), f.options(RunAllJobs{}))
		assert.ErrorIs(t, err, config.ErrConfigNotFound)
		assert.Empty(t, f.fake.Calls())
	})

	t.Run("explicit_config_missing_in_every_mode", func(t *testing.T) {
		modes := []Mode{
			RunNamedJob{Name: "Docs"},
			RunManual{Source: "src", Destination: "dst"},
			OpenLogs{},
			Interactive{},
		}
		for _, mode := range modes {
			f := newFixture(t, "")
			launched := false
			opts := f.options(mode)
			opts.Launcher = func(string, ...string) error {
				launched = true
				return nil
			}

			err := Run(context.Background(), opts)
			assert.ErrorIs(t, err, config.ErrConfigNotFound, "%T", mode)
			assert.Empty(t, f.fake.Calls(), "%T must not run anything", mode)
			assert.False(t, launched, "%T must not open anything", mode)
			assert.Empty(t, f.prompt.labels, "%T must not prompt", mode)
		}
	})

	t.Run("explicit_config_present_for_manual_run", func(t *testing.T) {
		f := newFixture(t, docsConfig)
		writeFiles(t, f.invoke, map[string]string{"src/x.txt": "x"})

		err := Run(context.Background(), f.options(RunManual{Source: "src", Destination: "dst"}))
		require.NoError(t, err)

		calls := f.fake.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, filepath.Join(f.invoke, "src"), calls[0][0], "manual paths still resolve against the invocation directory")
	})

	t.Run("explicit_config_is_the_init_target", func(t *testing.T) {
		f := newFixture(t, "")

		err := Run(context.Background(), f.options(CreateConfig{Path: filepath.Join(f.cfgDir, config.DefaultFileName)}))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(f.cfgDir, config.DefaultFileName))
	})

	t.Run("malformed", func(t *testing.T) {
		f := newFixture(t, `{"tasks":[]}`)
		err := Run(context.Background(), f.options(RunAllJobs{}))
		assert.ErrorIs(t, err, config.ErrMalformedConfig)
	})

	t.Run("no_job_file_found", func(t *testing.T) {
		f := newFixture(t, "")
		opts := f.options(RunNamedJob{Name: "Docs"})
		opts.ConfigPath = ""
		err := Run(context.Background(), opts)
		assert.ErrorIs(t, err, ErrNoConfigLoaded)
	})

	t.Run("empty_registry", func(t *testing.T) {
		f := newFixture(t, `{"jobs":[]}`)
		err := Run(context.Background(), f.options(RunNamedJob{Name: "Docs"}))
		assert.ErrorIs(t, err, ErrNoConfigLoaded)
		err = Run(context.Background(), f.options(RunAllJobs{}))
		assert.ErrorIs(t, err, ErrNoConfigLoaded)
	})

	t.Run("found_in_invocation_directory", func(t *testing.T) {
		f := newFixture(t, "")
		writeFiles(t, f.invoke, map[string]string{
			config.DefaultFileName: `{"backupJobs":[{"name":"Old","source":"./s","destination":"./d"}]}`,
			"s/x.txt":              "x",
		})
		opts := f.options(RunNamedJob{Name: "Old"})
		opts.ConfigPath = ""
		require.NoError(t, Run(context.Background(), opts))

		calls := f.fake.Calls()
		require.Len(t, calls, 1)
		assert.Contains(t, calls[0], "/MIR", "legacy jobs always mirror")
	})
}

func TestRunAllReportsEveryJob(t *testing.T) {
	f := newFixture(t, `{"jobs":[
		{"name":"A","source":"./missing","destination":"./outA","mirror":true},
		{"name":"B","source":"./src","destination":"./outB","mirror":false}
	]}`)
	writeFiles(t, f.cfgDir, map[string]string{"src/f.txt": "f"})

	err := Run(context.Background(), f.options(RunAllJobs{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJobsFailed)
	assert.Contains(t, err.Error(), "A")
	assert.NotContains(t, err.Error(), "B")

	assert.Len(t, f.fake.Calls(), 2, "B still runs after A failed")
	assert.FileExists(t, filepath.Join(f.cfgDir, "outB", "f.txt"))
	assert.Contains(t, f.console.String(), "2 job(s): 1 ok, 0 warning, 1 failed")
}

func TestRunManual(t *testing.T) {
	f := newFixture(t, "")
	writeFiles(t, f.invoke, map[string]string{"here/x.txt": "x"})

	err := Run(context.Background(), f.options(RunManual{Source: "here", Destination: "there", Mirror: false}))
	require.NoError(t, err)

	calls := f.fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, filepath.Join(f.invoke, "here"), calls[0][0], "manual paths resolve against the invocation directory")
	assert.Equal(t, "/E", calls[0][2])
	assert.FileExists(t, filepath.Join(f.invoke, "there", "x.txt"))

	a, err := New(f.options(nil))
	require.NoError(t, err)
	_, err = a.RunManual(context.Background(), "here", " ", true)
	assert.ErrorIs(t, err, ErrUsage)
}

func TestRunDryFlag(t *testing.T) {
	f := newFixture(t, docsConfig)
	writeFiles(t, f.cfgDir, map[string]string{"a/one.txt": "1"})

	opts := f.options(RunNamedJob{Name: "Docs"})
	opts.DryRun = true
	require.NoError(t, Run(context.Background(), opts))

	calls := f.fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/L", calls[0][len(calls[0])-1])
	assert.NoDirExists(t, filepath.Join(f.cfgDir, "b"))
}

func TestCreateConfig(t *testing.T) {
	t.Run("prompted_path", func(t *testing.T) {
		f := newFixture(t, "")
		f.prompt.inputs = []string{"new/jobs.json"}

		require.NoError(t, Run(context.Background(), f.options(CreateConfig{})))

		_, err := config.Load(context.Background(), filepath.Join(f.invoke, "new", "jobs.json"))
		require.NoError(t, err)
	})

	t.Run("default_path", func(t *testing.T) {
		f := newFixture(t, "")
		f.prompt.inputs = []string{""}

		require.NoError(t, Run(context.Background(), f.options(CreateConfig{})))
		assert.FileExists(t, filepath.Join(f.invoke, config.DefaultFileName))
	})

	t.Run("existing_file_kept_without_confirmation", func(t *testing.T) {
		f := newFixture(t, "")
		writeFiles(t, f.invoke, map[string]string{"jobs.json": "mine"})
		f.prompt.confirm = []bool{false}

		require.NoError(t, Run(context.Background(), f.options(CreateConfig{Path: "jobs.json"})))

		data, err := os.ReadFile(filepath.Join(f.invoke, "jobs.json"))
		require.NoError(t, err)
		assert.Equal(t, "mine", string(data))
		assert.Contains(t, f.console.String(), "kept existing")
	})

	t.Run("existing_file_replaced_after_confirmation", func(t *testing.T) {
		f := newFixture(t, "")
		writeFiles(t, f.invoke, map[string]string{"jobs.json": "mine"})
		f.prompt.confirm = []bool{true}

		require.NoError(t, Run(context.Background(), f.options(CreateConfig{Path: "jobs.json"})))

		data, err := os.ReadFile(filepath.Join(f.invoke, "jobs.json"))
		require.NoError(t, err)
		assert.Equal(t, config.Template(), data)
	})
}

func TestOpenLogs(t *testing.T) {
	f := newFixture(t, "")
	var opened []string
	opts := f.options(OpenLogs{})
	opts.Launcher = func(name string, args ...string) error {
		opened = append(opened, args...)
		return nil
	}

	require.NoError(t, Run(context.Background(), opts))
	assert.Equal(t, []string{filepath.Join(f.root, "logs")}, opened)
	assert.DirExists(t, filepath.Join(f.root, "logs"))

	opts.Launcher = func(string, ...string) error { return errors.New("no browser") }
	assert.Error(t, Run(context.Background(), opts))
}

func TestNewResolvesRelativeLogDir(t *testing.T) {
	f := newFixture(t, "")
	opts := f.options(OpenLogs{})
	opts.LogDir = "my-logs"

	a, err := New(opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.invoke, "my-logs"), a.LogDir())
	assert.True(t, strings.HasPrefix(a.LogDir(), f.invoke))
}
