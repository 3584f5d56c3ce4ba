package reader

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/Shk-aftab/Eurogate/schema"
)

// FAQReader reads a helpdesk FAQ export (Solutions.json) and converts
// each article into a node laid out for retrieval.
type FAQReader struct {
	// FilePath is the path to the FAQ JSON export.
	FilePath string
}

// faqArticle mirrors one article entry in the export.
type faqArticle struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DescUnHTML  string      `json:"desc_un_html"`
}

type faqFolder struct {
	Name     string       `json:"name"`
	Articles []faqArticle `json:"articles"`
}

type faqCategory struct {
	Name       string      `json:"name"`
	AllFolders []faqFolder `json:"all_folders"`
}

type faqEntry struct {
	Category faqCategory `json:"category"`
}

// NewFAQReader creates a new FAQReader.
func NewFAQReader(filePath string) *FAQReader {
	return &FAQReader{FilePath: filePath}
}

// LoadData loads the FAQ export and returns one node per article.
func (r *FAQReader) LoadData() ([]schema.Node, error) {
	data, err := os.ReadFile(r.FilePath)
	if err != nil {
		return nil, NewReaderError(r.FilePath, "failed to read FAQ file", err)
	}

	var entries []faqEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, NewReaderError(r.FilePath, "failed to parse FAQ JSON", err)
	}

	var nodes []schema.Node
	for _, entry := range entries {
		category := entry.Category
		for _, folder := range category.AllFolders {
			for _, article := range folder.Articles {
				answer := article.DescUnHTML
				if answer == "" {
					answer = StripHTML(article.Description)
				}
				answer = strings.TrimSpace(answer)
				if article.Title == "" && answer == "" {
					continue
				}

				text := fmt.Sprintf(
					"FAQ Section\nCategory: %s\nFolder: %s\nQuestion: %s\nAnswer:\n%s\n--- End FAQ ---",
					category.Name, folder.Name, article.Title, answer,
				)

				node := schema.NewTextNode(text)
				node.Metadata = map[string]interface{}{
					"source_type": "FAQ",
					"category":    category.Name,
					"folder":      folder.Name,
					"faq_id":      article.ID.String(),
					"title":       article.Title,
					"file_path":   r.FilePath,
				}
				nodes = append(nodes, *node)
			}
		}
	}

	if len(nodes) == 0 {
		return nil, NewReaderError(r.FilePath, "no FAQ articles found", nil)
	}

	return nodes, nil
}

// Metadata returns reader metadata.
func (r *FAQReader) Metadata() ReaderMetadata {
	return ReaderMetadata{
		Name:                "FAQReader",
		SupportedExtensions: []string{".json"},
		Description:         "Reads helpdesk FAQ JSON exports",
	}
}

// StripHTML removes tags from an HTML fragment and unescapes entities.
// It keeps only the text content, collapsing runs of whitespace.
func StripHTML(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			sb.WriteRune(' ')
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	text := html.UnescapeString(sb.String())
	return strings.Join(strings.Fields(text), " ")
}

var _ Reader = (*FAQReader)(nil)
var _ ReaderWithMetadata = (*FAQReader)(nil)
