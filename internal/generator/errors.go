package generator

import "fmt"

// DirectoryCreationError reports a failure to create the report output
// root. It is the only pre-pipeline error that aborts a build.
type DirectoryCreationError struct {
	// Path is the directory that could not be created.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("failed to create output directory %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *DirectoryCreationError) Unwrap() error {
	return e.Err
}
