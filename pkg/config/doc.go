/*
Package config locates, parses and validates robomirror job files.

	            +-------------+
	            |  Registry   |
	            | (ordered)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Finds the job file (explicit path, working directory, optional install dir)
- Parses it with the parser registered for its extension
- Validates every job entry, all or nothing
- Keeps jobs in file order, since "run all" executes in that order

🔄 Flow:
1. Resolve picks the file path
2. Load reads it and hands the bytes to a Parser
3. The Parser produces a Document of raw entries
4. Validate checks required fields and builds the Registry

📝 Schemas:

	{ "jobs": [ { "name": "Docs", "source": "./a", "destination": "./b", "mirror": true } ] }

The legacy layout uses "backupJobs" and has no "mirror" field; legacy jobs
always mirror. Relative paths are resolved against the job file's directory.

🔍 Example:

	path, err := config.Resolve(ctx, config.ResolveOptions{Explicit: flagPath})
	if err != nil {
		return err // wraps ErrConfigNotFound
	}
	reg, err := config.Load(ctx, path)
	if err != nil {
		return err // wraps ErrMalformedConfig or ErrJobValidation
	}
	for _, job := range reg.Jobs() {
		src, dst := job.Resolve(reg.BaseDir())
		...
	}
*/
package config
