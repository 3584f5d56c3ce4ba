package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	resp := s.chat.Chat(r.Context(), req.Query)
	writeJSON(w, http.StatusOK, chatResponse{Response: resp.Response})
}

const maxUploadMemory = 32 << 20

func (s *Server) handleUploadAndChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	query := r.FormValue("query")

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "A file upload is required.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	ext := strings.ToLower(filepath.Ext(header.Filename))

	switch {
	case contentType == "application/pdf" && ext == ".pdf":
		s.servePDFQuote(w, r, file, header)
	case contentType == "text/plain" || ext == ".txt":
		s.serveTextChat(w, r, file, header, query)
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Unsupported file type: %s. Please upload PDF for quotes or TXT for general queries.", contentType))
	}
}

func (s *Server) servePDFQuote(w http.ResponseWriter, r *http.Request, file multipart.File, header *multipart.FileHeader) {
	savedPath, err := s.saveUpload(file, ".pdf")
	if err != nil {
		s.logger.Error("failed to save upload", "file", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save the uploaded file.")
		return
	}
	defer os.Remove(savedPath)

	answer, err := s.pipeline.ProcessFile(r.Context(), savedPath)
	if err != nil {
		s.logger.Error("quote pipeline failed", "file", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process the uploaded PDF.")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) serveTextChat(w http.ResponseWriter, r *http.Request, file multipart.File, header *multipart.FileHeader, query string) {
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read the uploaded file.")
		return
	}

	content := decodeText(data)

	if query == "" {
		query = "Please summarize or analyze this document."
	}

	combined := fmt.Sprintf(
		"--- Start of Uploaded File (%s) Content ---\n%s\n--- End of Uploaded File Content ---\n\nUser Query: %s",
		header.Filename, content, query,
	)

	resp := s.chat.Chat(r.Context(), combined)
	writeJSON(w, http.StatusOK, chatResponse{Response: resp.Response})
}

func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.rebuilder.Rebuild(r.Context()); err != nil {
		s.logger.Error("index rebuild failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Index rebuild failed: %v", err))
		return
	}

	writeJSON(w, http.StatusAccepted, messageResponse{Message: "Index rebuilding process initiated successfully."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// saveUpload writes the upload to the upload directory under a fresh
// uuid name and returns the saved path.
func (s *Server) saveUpload(file multipart.File, ext string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, uuid.New().String()+ext)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return path, nil
}

// decodeText returns the bytes as a string, treating non-UTF-8 input
// as Latin-1.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}
