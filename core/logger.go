package core

// Logger is any service that can log application events.
// Error implementations may inspect args for an error to report and a user.User
// to attach to the report.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
