// Package logger provides a small wrapper around zap to offer:
//   - a sugared logger with a console encoder (time, level, caller, message),
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - a writer-backed constructor so tests can capture output,
//   - key-value helpers (DebugKV, InfoKV, WarnKV, ErrorKV).
//
// Services accept a context and extract the logger from it, so a caller
// decides where the output goes without touching process-wide state.
package logger
