package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/inkpress/inkpress/pkg/errors"
	"github.com/inkpress/inkpress/pkg/pipeline"
)

// maxBodySize bounds document descriptions at 4 MiB.
const maxBodySize = 4 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRender renders a document description from the request body.
// The body format follows the Content-Type header (application/toml
// for manifests, JSON otherwise); the output format comes from the
// format query parameter and defaults to pdf.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "read request body"))
		return
	}
	if len(body) > maxBodySize {
		s.writeError(w, r, http.StatusRequestEntityTooLarge,
			errors.New(errors.ErrCodeInvalidInput, "document description exceeds %d bytes", maxBodySize))
		return
	}

	opts := pipeline.Options{
		Description:  body,
		SourceFormat: sourceFromContentType(r.Header.Get("Content-Type")),
		Refresh:      r.URL.Query().Get("refresh") == "true",
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatPDF
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.Header().Set("X-Document-Hash", result.DocHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func sourceFromContentType(ct string) string {
	if strings.Contains(ct, "toml") {
		return pipeline.SourceTOML
	}
	if strings.Contains(ct, "json") {
		return pipeline.SourceJSON
	}
	return "" // sniffed from the payload
}

func contentTypeFor(format string) string {
	switch format {
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// statusFor maps pipeline error codes onto HTTP statuses. Anything
// the client could fix is a 400-class response.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeResourceNotFound:
		return http.StatusNotFound
	case errors.ErrCodeStructural,
		errors.ErrCodeUnknownElement,
		errors.ErrCodeInvalidAttribute,
		errors.ErrCodeInvalidColor,
		errors.ErrCodeUnsupportedTransform,
		errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "error", err, "request_id", reqID(r.Context()))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(errors.GetCode(err)),
		RequestID: reqID(r.Context()),
	})
}
