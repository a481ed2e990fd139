/*
Package operation runs mirror jobs through the external tool.

	+-------------+      +-------------+      +-------------+
	|   Request   | ---> |   Runner    | ---> |   Result    |
	| src dst ... |      |  (one job)  |      |  outcome    |
	+-------------+      +------+------+      +-------------+
	                            |
	          +-----------------+-----------------+
	          |                 |                 |
	  runlog.CreateJobLog   robocopy.Tool    runlog.Prune
	   runlog.AppendFooter

🎯 Purpose:
- Turn a resolved request into one tool invocation with a log file
- Classify the exit code and report it
- Keep the log directory bounded

🔄 Flow:
1. Create the log directory and write the header
2. Build the argument list and run the tool synchronously
3. Classify the exit code and append the footer
4. Print the result and prune old logs

⚡ Failure semantics:
Run never returns an error. A log directory that cannot be written means the
tool runs without /LOG+, and a tool that cannot be started is a Fatal
outcome with code -1. RunAll always runs every request.

🔍 Example:

	runner, err := operation.NewRunner(operation.Options{
		Tool:   &robocopy.Exec{Stdout: os.Stdout},
		LogDir: "logs",
	})
	res := runner.Run(ctx, operation.RequestForJob(job, reg.BaseDir(), false))
*/
package operation
