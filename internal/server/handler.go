package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	stockpdf "github.com/porticus-lab/go-stock-pdf"
)

// Plain-text bodies for failed requests.
const (
	msgMethodNotAllowed = "method not allowed"
	msgInvalidFile      = "invalid file"
	msgTooLarge         = "file too large"
	msgProcessing       = "error processing file"
)

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeText(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}
	start := time.Now()

	data, err := s.readUpload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.logger.Info("generate.rejected", fieldsFor(r, zap.Int64("limit", tooLarge.Limit))...)
			writeText(w, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		s.logger.Info("generate.rejected", fieldsFor(r, zap.Error(err))...)
		writeText(w, http.StatusBadRequest, msgInvalidFile)
		return
	}

	res, err := s.conv.Convert(r.Context(), data)
	if err != nil {
		if stockpdf.IsInputError(err) {
			s.logger.Info("generate.invalid", fieldsFor(r, zap.Error(err))...)
			writeText(w, http.StatusBadRequest, msgInvalidFile)
			return
		}
		s.logger.Error("generate.failed", fieldsFor(r, zap.Error(err))...)
		writeText(w, http.StatusInternalServerError, msgProcessing)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": s.opts.Filename}))
	h.Set("Content-Length", strconv.Itoa(res.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := res.WriteTo(w); err != nil {
		s.logger.Warn("generate.write", fieldsFor(r, zap.Error(err))...)
		return
	}

	s.logger.Info("generate.ok", fieldsFor(r,
		zap.Int("input_bytes", len(data)),
		zap.Int("rows", res.Rows()),
		zap.Int("pages", res.Pages()),
		zap.Int("bytes", res.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)...)
}

// readUpload returns the bytes of the configured multipart field. A
// missing or empty field is reported as stockpdf.ErrInvalidUpload.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return nil, fmt.Errorf("%w: %w", stockpdf.ErrInvalidUpload, err)
	}
	defer r.MultipartForm.RemoveAll()

	f, hdr, err := r.FormFile(s.opts.UploadField)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", stockpdf.ErrInvalidUpload, s.opts.UploadField, err)
	}
	defer f.Close()
	if hdr.Size == 0 {
		return nil, fmt.Errorf("%w: field %q is empty", stockpdf.ErrInvalidUpload, s.opts.UploadField)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", stockpdf.ErrInvalidUpload, err)
	}
	return data, nil
}
