package scrollview

import (
	"log/slog"
	"os"
)

// logLevel controls the log level for scrollview debug logging.
// Default is LevelInfo, which suppresses Debug messages.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables verbose/debug logging for the layout core
// and watchers. Call this from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// layoutLogger is the logger for layout and watcher debugging.
var layoutLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
