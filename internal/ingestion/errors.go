package ingestion

import "fmt"

// FileError reports a résumé source that could not be ingested
type FileError struct {
	Path    string
	Message string
	Cause   error
}

func (e *FileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *FileError) Unwrap() error {
	return e.Cause
}
