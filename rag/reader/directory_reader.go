package reader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shk-aftab/Eurogate/schema"
)

// DirectoryReader walks a directory and loads the document types the
// knowledge base understands: PDFs plus plain text and markdown files.
type DirectoryReader struct {
	// InputDir is the directory to scan.
	InputDir string
	// Recursive determines if subdirectories are searched.
	Recursive bool
	// ExcludeFiles are base names to skip (e.g. structured exports
	// handled by dedicated readers).
	ExcludeFiles []string
}

// NewDirectoryReader creates a reader over the given directory.
func NewDirectoryReader(inputDir string, recursive bool) *DirectoryReader {
	return &DirectoryReader{InputDir: inputDir, Recursive: recursive}
}

// WithExcludeFiles sets base names to skip (fluent API).
func (r *DirectoryReader) WithExcludeFiles(names ...string) *DirectoryReader {
	r.ExcludeFiles = names
	return r
}

// LoadData loads all supported files in the directory.
func (r *DirectoryReader) LoadData() ([]schema.Node, error) {
	if r.InputDir == "" {
		return nil, fmt.Errorf("no input directory specified")
	}

	var nodes []schema.Node
	err := filepath.Walk(r.InputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != r.InputDir && !r.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if r.excluded(filepath.Base(path)) {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			fileNodes, err := NewPDFReader(path).LoadData()
			if err != nil {
				return NewReaderError(path, "failed to load PDF file", err)
			}
			nodes = append(nodes, fileNodes...)
		case ".txt", ".md":
			node, err := r.loadTextFile(path)
			if err != nil {
				return err
			}
			if node != nil {
				nodes = append(nodes, *node)
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return nodes, nil
}

// Metadata returns reader metadata.
func (r *DirectoryReader) Metadata() ReaderMetadata {
	return ReaderMetadata{
		Name:                "DirectoryReader",
		SupportedExtensions: []string{".pdf", ".txt", ".md"},
		Description:         "Loads PDF, text and markdown files from a directory",
	}
}

func (r *DirectoryReader) excluded(name string) bool {
	for _, ex := range r.ExcludeFiles {
		if name == ex {
			return true
		}
	}
	return false
}

func (r *DirectoryReader) loadTextFile(path string) (*schema.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewReaderError(path, "failed to read text file", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	node := schema.NewTextNode(text)
	node.Metadata = map[string]interface{}{
		"file_path": absPath,
		"file_name": filepath.Base(path),
		"file_type": strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	}

	return node, nil
}

var _ Reader = (*DirectoryReader)(nil)
var _ ReaderWithMetadata = (*DirectoryReader)(nil)
