// Package logging provides structured logging for scoreboard sessions.
//
// It wraps Go's log/slog to write JSON lines, one per board operation or
// rejection, so a session can be replayed and filtered after the fact.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (session ID, match teams)
//   - Size-based rotation with optional gzip compression
//   - Reading and filtering a session log by level, team or operation
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	boardLog := logger.WithSession(id)
//	boardLog.Info("match started", "home", "Spain", "away", "Brazil")
//
// With rotation:
//
//	logger, err := logging.NewLoggerWithRotation(dir, "DEBUG", logging.RotationConfig{
//	    MaxSizeMB:  5,
//	    MaxBackups: 2,
//	    Compress:   true,
//	})
//
// Reading a log back:
//
//	entries, err := logging.ReadLog(filepath.Join(dir, logging.FileName))
//	spain := logging.FilterLogs(entries, logging.LogFilter{Team: "Spain"})
package logging
