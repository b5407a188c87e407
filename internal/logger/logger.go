package logger

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

// New returns a logger for the given level and format. Unknown values fall back to debug/console.
// The logger is passed explicitly to whoever needs it; there is no package-level instance.
func New(level, format string) *Logger {
	return newZapLogger(level, format)
}
