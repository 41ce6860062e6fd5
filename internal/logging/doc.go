// Package logging provides structured logging for the architect binaries.
//
// It wraps a process-wide zap logger that is silent unless a level is given
// explicitly or through ARCHITECT_LOG_LEVEL:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The interactive application logs to a file instead of stdout:
//
//	logging.InitializeToFile("", filepath.Join(stateDir, "architect.log"))
//
// Domain helpers (LogGeneration, LogHandshake, LogHTTPRequest) keep field
// names consistent between the TUI, the CLI and the portal server.
package logging
