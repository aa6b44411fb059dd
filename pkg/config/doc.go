/*
Package config loads and validates imgbatch batch configuration.

	            +-------------+
	            |   Config    |
	            | (a batch)   |
	            +------+------+
	                   |
	   +-------+-------+-------+--------+
	   |       |               |        |
	+--+---+ +-+----+      +---+--+ +---+------+
	| JSON | | YAML |      | HCL  | | ParseArgs|
	+------+ +------+      +------+ +----------+

🎯 Purpose:
- Read a batch from a config file or from command-line tokens
- Validate it and fill in defaults
- Hand the ordered operation list to package operation

🔄 Flow:
1. LoadConfig picks a Parser by file extension (.imgbatch tries YAML, then HCL)
2. Relative paths are resolved against the config file's directory
3. The caller applies flag overrides
4. Validate checks required fields and sets defaults
5. Operations builds the []operation.Operation

⚙️ Defaults:
- backup_dir: $XDG_STATE_HOME/imgbatch/backups
- jpeg_quality: 95

🔍 Example:

	# batch.yaml
	source: ./photos
	recursive: true
	exclude: ["thumbs", "raw/*.png"]
	operations:
	  - kind: negate
	  - kind: stretch
	    factor: 0.5
	  - kind: copy
	    target: ./out

	cfg, err := config.LoadConfig(ctx, "batch.yaml")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}
	ops, err := cfg.BuildOperations()
*/
package config
