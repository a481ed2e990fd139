/*
Package app turns a selected mode into job runs.

	  flags ──▶ ModeFromFlags ──▶ Mode
	                               │
	                               ▼
	  ┌──────────────────────── App.Run ───────────────────────────┐
	  │ config.Resolve ─▶ workdir.Enter ─▶ config.Load ─▶ dispatch │
	  │                      (restored on every exit path)         │
	  └──────────────┬──────────────┬──────────────┬───────────────┘
	                 ▼              ▼              ▼
	             RunJob/RunAll   RunManual   CreateConfig/OpenLogs
	                 │              │
	                 └──────┬───────┘
	                        ▼
	                operation.Runner

🎯 Modes:
- RunNamedJob, RunAllJobs and Interactive load the job file
- RunManual, CreateConfig and OpenLogs never touch it

🔄 Interactive:
Menu is a small state machine (main, pick job, manual) built on the same
primitives as the flag modes. Each choice builds a fresh request, so a
previous run never leaks into the next one. Failed actions are reported and
the menu returns; only Exit or a failing prompt leaves it.

⚡ Errors:
Configuration problems surface before any job runs. A fatal job never stops
a batch; once everything ran, Run returns ErrJobsFailed naming the failed
jobs.
*/
package app
