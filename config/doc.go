// Package config builds a logger from YAML and NLOG_* environment
// variables.
//
//	level: warn
//	format: json
//	output: file
//	file:
//	  path: /var/log/app.log
//	  maxSize: 50
//	  processLock: true
//
// Load decodes the file over Default with yaml.v3, then lets cleanenv
// apply environment overrides such as NLOG_LEVEL=debug. Build turns the
// result into a ready *logger.Logger.
package config
