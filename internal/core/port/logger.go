package port

// Fields carries structured data attached to a log entry.
type Fields map[string]interface{}

// LoggerPort is the contract every logging backend implements.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields returns a new logger with the given fields already attached.
	WithFields(fields Fields) LoggerPort
}
