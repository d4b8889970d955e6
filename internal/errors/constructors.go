package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *RestVizError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *RestVizError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file invalid").
		WithContext("path", path)
}

func ConfigRequired(field string) *RestVizError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *RestVizError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Goal errors

// GoalExecutionFailed is the single failure signal a goal raises. The message
// is the cause's own message so callers see the underlying failure verbatim.
func GoalExecutionFailed(goal string, cause error) *RestVizError {
	msg := "goal execution failed"
	if cause != nil {
		msg = cause.Error()
	}
	return Wrap(cause, CategoryGoal, SeverityFatal, msg).
		WithContext("goal", goal)
}

func UnknownGoal(name string) *RestVizError {
	return New(CategoryValidation, SeverityFatal, "unknown goal").
		WithContext("goal", name)
}

func WorkspaceError(operation string, cause error) *RestVizError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "filesystem operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *RestVizError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
