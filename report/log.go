package report

// Enumeration of the different log levels.
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors
	LogLevelWarning        // errors and warnings
	LogLevelVerbose        // errors, warnings, and progress messages (DEFAULT)
)

// logLevel is the global output threshold for console printing.
var logLevel = LogLevelVerbose

// Initialize sets the global log level from its command-line name.
func Initialize(loglevelname string) {
	switch loglevelname {
	case "silent":
		logLevel = LogLevelSilent
	case "error":
		logLevel = LogLevelError
	case "warn":
		logLevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		logLevel = LogLevelVerbose
	}
}

// logEnabled reports whether output at the given level should be printed.
func logEnabled(level int) bool {
	return logLevel >= level
}
