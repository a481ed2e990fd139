/*
Package status summarizes the results of a batch of jobs.

	+-------------+      +-------------+      +-------------+
	|  []Result   | ---> |   Summary   | ---> |    table    |
	| (operation) |      |  (counts)   |      |   (pterm)   |
	+-------------+      +-------------+      +-------------+

🎯 Purpose:
- Classify each result as ok, warning or failed
- Render one row per job in file order
- Report which jobs failed so the caller can set the exit code

Exit codes 4 to 7 carry the mismatch bit and are shown as warnings; they
still count as successful runs.
*/
package status
