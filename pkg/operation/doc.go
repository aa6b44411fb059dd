/*
Package operation applies an ordered list of image operations to a batch of files.

	+-------------+      +-------------+      +-------------+
	|   Runner    | ---> |  Executor   | ---> |  Reporter   |
	| (files×ops) |      | (one pair)  |      | (log/tally) |
	+-------------+      +------+------+      +-------------+
	                            |
	                     +------+------+
	                     |   imaging   |
	                     | (codec/px)  |
	                     +-------------+

🎯 Purpose:
- Define the closed set of operations: Stretch, Negate, Remove, Copy
- Apply one operation to one file and describe the result as an Outcome
- Walk files outer, operations inner, without ever aborting the batch

🔄 Flow:
1. The caller discovers files (see package discover)
2. Runner.Run loops over files, then operations, in the order given
3. Executor.Execute re-checks the file on disk, then decodes, transforms and writes
4. Each Outcome goes to every Reporter as soon as it exists

⚠️ Failures:
- ErrNotFound: the file is gone, usually removed by an earlier Remove
- ErrDecode: the bytes are not a PNG or JPEG the codec understands
- ErrIO: reading, writing, creating or deleting failed

Remove always writes a synced backup before deleting. Stretch and Negate
overwrite the file in place with no backup; they write through a temp file and
a rename so a failed encode never truncates the original.

🔍 Example:

	exec, _ := operation.NewExecutor(operation.ExecutorOptions{
		Fs:        afero.NewOsFs(),
		Codec:     imaging.NewStdCodec(0),
		BackupDir: "/var/backups/imgbatch",
	})
	runner, _ := operation.NewRunner(operation.Options{Executor: exec})
	outcomes := runner.Run(ctx, files, []operation.Operation{operation.Negate{}})
*/
package operation
