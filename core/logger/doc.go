// Package logger provides structured logging built on Go's standard slog
// package: a small factory for JSON or text handlers and a set of nil-safe
// attribute helpers for the identifiers this codebase logs most.
//
// # Basic Usage
//
//	import "github.com/zoptal/authkit/core/logger"
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"}, nil)
//
//	log.Info("user logged in",
//		logger.Component("auth"),
//		logger.UserID(userID),
//		logger.SessionID(sessionID),
//	)
//
// # Attribute Helpers
//
// Helpers return the empty Attr for zero values, so call sites never need
// nil checks:
//
//	log.Error("operation failed", logger.Error(err)) // safe even when err is nil
//
// Identifier helpers (UserID, SessionID, RequestID) follow the same rule
// for nil UUIDs and empty strings, keeping log records free of empty keys.
package logger
