package errors

// Convenience functions for common error patterns

// Caller contract errors

func InvalidArgument(message string) *TransformError {
	return New(CategoryValidation, SeverityFatal, message)
}

func UnsupportedContentType(typeName string) *TransformError {
	return New(CategoryUnsupported, SeverityFatal, "content attribute applied to a non-string value").
		WithContext("type", typeName)
}

// Configuration errors

func ConfigNotFound(path string) *TransformError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *TransformError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ConfigInvalid(field, reason string) *TransformError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Infrastructure errors

func FileError(operation, path string, cause error) *TransformError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "file operation failed").
		WithContext("operation", operation).
		WithContext("path", path)
}

func StorageError(operation string, cause error) *TransformError {
	return Wrap(cause, CategoryStorage, SeverityFatal, "link store operation failed").
		WithContext("operation", operation)
}

func RenderError(file string, cause error) *TransformError {
	return Wrap(cause, CategoryInternal, SeverityFatal, "markup rendering failed").
		WithContext("file", file)
}

func InternalError(message string, cause error) *TransformError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
