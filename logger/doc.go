// Package logger provides structured logging for ssekit using zerolog.
//
// It supports JSON and console output formats, log level configuration,
// and component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.NewDefault("ssekit").WithComponent("client")
//	log.Info("stream connected", logger.Fields("session_id", id))
package logger
