// Package logger provides structured logging for tablekit using zerolog.
//
// Library packages never configure logging themselves; they ask for a
// component logger and the CLI decides level, format and destination.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("lazytable")
//	log.Debug("replayed call", logger.Fields(logger.FieldOperation, "tab_header", logger.FieldStep, 2))
package logger
