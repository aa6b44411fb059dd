/*
Package status counts the outcomes of a batch run and formats progress.

	+-------------+      +-------------+
	|   Runner    | ---> |    Tally    |
	| (outcomes)  |      |  (counts)   |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |  Formatter  |
	                     | (messages)  |
	                     +-------------+

🎯 Purpose:
- Count succeeded, skipped and failed pairs per operation kind
- Count failures per class (not_found, decode, io)
- Log progress at the start and end of a batch
- Render a summary table for the console

🤝 Interfaces:
- operation.Reporter: Tally receives every outcome
- operation.Progress: Tally is told when the batch begins and ends
- Formatter: turns outcomes and progress into messages
*/
package status
