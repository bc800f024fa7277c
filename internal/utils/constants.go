package utils

const (
	// ApplicationName names the binary in help text and messages.
	ApplicationName = "treebrowse"
	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the fatal log of a failed command.
	ApplicationExecutionFailedMessage = ApplicationName + " failed"
)
