package reader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shk-aftab/Eurogate/schema"
	"github.com/ledongthuc/pdf"
)

// PDFReader reads PDF files and converts them to nodes.
// It uses the ledongthuc/pdf library for text extraction.
type PDFReader struct {
	// InputFiles is a list of PDF file paths to read
	InputFiles []string
	// ExtraMetadata is additional metadata to add to all documents
	ExtraMetadata map[string]interface{}
}

// NewPDFReader creates a new PDFReader for specific files.
func NewPDFReader(inputFiles ...string) *PDFReader {
	return &PDFReader{InputFiles: inputFiles}
}

// WithExtraMetadata sets extra metadata (fluent API).
func (r *PDFReader) WithExtraMetadata(metadata map[string]interface{}) *PDFReader {
	r.ExtraMetadata = metadata
	return r
}

// LoadData loads the PDF files and returns one node per file.
func (r *PDFReader) LoadData() ([]schema.Node, error) {
	var docs []schema.Node
	for _, file := range r.InputFiles {
		fileDocs, err := r.loadFile(file)
		if err != nil {
			return nil, NewReaderError(file, "failed to load PDF file", err)
		}
		docs = append(docs, fileDocs...)
	}
	return docs, nil
}

// LoadFromFile loads a single PDF file.
func (r *PDFReader) LoadFromFile(filePath string) ([]schema.Node, error) {
	return r.loadFile(filePath)
}

// Metadata returns reader metadata.
func (r *PDFReader) Metadata() ReaderMetadata {
	return ReaderMetadata{
		Name:                "PDFReader",
		SupportedExtensions: []string{".pdf"},
		Description:         "Reads PDF files and extracts text content",
	}
}

func (r *PDFReader) loadFile(filePath string) ([]schema.Node, error) {
	f, pdfReader, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}

	var textBuilder strings.Builder
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := pdfReader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Keep going, other pages may still extract.
			continue
		}

		text = strings.TrimSpace(text)
		if text != "" {
			if textBuilder.Len() > 0 {
				textBuilder.WriteString("\n\n")
			}
			textBuilder.WriteString(text)
		}
	}

	fullText := strings.TrimSpace(textBuilder.String())
	if fullText == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	metadata := map[string]interface{}{
		"file_path":   absPath,
		"file_name":   filepath.Base(filePath),
		"file_type":   "pdf",
		"total_pages": numPages,
	}
	for k, v := range r.ExtraMetadata {
		metadata[k] = v
	}

	node := schema.NewTextNode(fullText)
	node.Metadata = metadata

	return []schema.Node{*node}, nil
}

// ExtractTextFromPDF extracts the full plain text of a PDF file.
func ExtractTextFromPDF(filePath string) (string, error) {
	nodes, err := NewPDFReader(filePath).LoadData()
	if err != nil {
		return "", err
	}

	if len(nodes) == 0 {
		return "", fmt.Errorf("no content extracted from PDF")
	}

	var texts []string
	for _, node := range nodes {
		texts = append(texts, node.Text)
	}

	return strings.Join(texts, "\n\n"), nil
}

var _ Reader = (*PDFReader)(nil)
var _ FileReader = (*PDFReader)(nil)
var _ ReaderWithMetadata = (*PDFReader)(nil)
