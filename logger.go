package webviewbridge

import "log/slog"

// NopLogger returns a logger whose handler drops every record without
// formatting it. Bridges use it when no logger is configured.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// loggerOrNop returns logger, or NopLogger when it is nil.
func loggerOrNop(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NopLogger()
	}

	return logger
}
