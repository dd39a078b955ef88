// Package logging provides structured logging configuration.
//
// This package wraps log/slog to give every component the same logger
// surface. It supports configurable log levels and output formats.
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("mock registered", "name", "useToast")
//
// Components that accept a logger default to logging.Nop(), which discards
// all output, so logging stays opt-in inside test runs.
package logging
