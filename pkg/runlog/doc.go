/*
Package runlog owns everything written to the log directory.

	logs/
	├── robomirror_20250301-101500123_Docs.log     one per run
	├── robomirror_20250301-101731004_manual.log
	└── session_20250301-101459870.log             one per invocation

🎯 Per-run logs

CreateJobLog creates the file and its header before the tool starts, the
tool appends its own report through /LOG+, and AppendFooter closes it with
the exit code and its meaning. Existing logs are never truncated: a name
that is taken gets a numeric suffix.

🧹 Rotation

Prune keeps the most recent files for a glob pattern and removes the rest.
It is run after every job for run logs and once per session for
transcripts.
*/
package runlog
