// Package reader provides document loaders for the ingestion pipeline.
package reader

import "github.com/Shk-aftab/Eurogate/schema"

// Reader is the interface for document loaders.
type Reader interface {
	// LoadData loads documents and returns them as a slice of nodes.
	LoadData() ([]schema.Node, error)
}

// FileReader is a Reader that loads from file paths.
type FileReader interface {
	Reader
	// LoadFromFile loads a document from a specific file path.
	LoadFromFile(filePath string) ([]schema.Node, error)
}

// ReaderMetadata contains metadata about a reader.
type ReaderMetadata struct {
	// Name is the reader name (e.g., "PDFReader", "FAQReader")
	Name string
	// SupportedExtensions lists file extensions this reader supports
	SupportedExtensions []string
	// Description describes what this reader does
	Description string
}

// ReaderWithMetadata is a Reader that provides metadata about itself.
type ReaderWithMetadata interface {
	Reader
	// Metadata returns information about this reader.
	Metadata() ReaderMetadata
}

// ReaderError represents an error during document loading.
type ReaderError struct {
	Source  string
	Message string
	Err     error
}

func (e *ReaderError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Source + ": " + e.Message
}

func (e *ReaderError) Unwrap() error {
	return e.Err
}

// NewReaderError creates a new ReaderError.
func NewReaderError(source, message string, err error) *ReaderError {
	return &ReaderError{
		Source:  source,
		Message: message,
		Err:     err,
	}
}
