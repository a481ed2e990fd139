/*
Package robocopy wraps the Windows robocopy utility as an opaque collaborator.

The package never reimplements copying. It only knows how to talk to the
tool and how to read its answer:

	┌─────────────┐   Args()    ┌──────────────┐   Run()   ┌──────────────┐
	│   Options   │ ──────────▶ │  []string    │ ────────▶ │  Tool (Exec) │
	│ src dst ... │             │ /MIR /R:3 .. │           │   robocopy   │
	└─────────────┘             └──────────────┘           └──────┬───────┘
	                                                               │ exit code
	                                                               ▼
	                                                       ┌──────────────┐
	                                                       │  Classify()  │
	                                                       │   Outcome    │
	                                                       └──────────────┘

🎯 Exit codes

Codes 0 through 7 are bit flags: 1 files copied, 2 extra files in the
destination, 4 mismatched entries. Any combination below 8 is a success;
the mismatch bit is shown as a warning. 8 and above is Fatal, and so is a
tool that cannot be started (code -1).

🔄 Testing

The robocopytest subpackage provides Fake, an in-process Tool that parses
the same arguments and emulates copy, purge, list-only and the exit bits on
a real directory tree.
*/
package robocopy
