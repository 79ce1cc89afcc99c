package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/textextract"
	"github.com/spigell/ats-scorer/internal/types"
)

const (
	resumeField         = "resume"
	resumeTextField     = "resumeText"
	jobDescriptionField = "jobDescription"

	// formOverhead leaves room for text fields next to the uploaded file.
	formOverhead = 1 << 20
)

type uploadResponse struct {
	Message  string               `json:"message"`
	Analysis types.ResumeAnalysis `json:"analysis"`
}

type scanResponse struct {
	Message string `json:"message"`
	types.ScanResult
}

type scoreRequest struct {
	Resume          *types.ResumeProfile   `json:"resume" validate:"required"`
	Text            string                 `json:"text"`
	KeywordAnalysis *types.KeywordAnalysis `json:"keyword_analysis"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, found, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, r, err, "Failed to process resume")
		return
	}
	if !found {
		s.errorResponse(w, r, badRequest("No file uploaded"), "")
		return
	}

	text, err := s.readDocument(data)
	if err != nil {
		s.errorResponse(w, r, err, "Failed to process resume")
		return
	}

	analysis, err := s.analyzer.AnalyzeResume(r.Context(), text)
	if err != nil {
		s.errorResponse(w, r, err, "Failed to process resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, uploadResponse{
		Message:  "Resume analyzed successfully",
		Analysis: analysis,
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	data, found, err := s.readUpload(w, r)
	if err != nil {
		s.errorResponse(w, r, err, "Failed to scan resume")
		return
	}

	jobDescription := r.FormValue(jobDescriptionField)
	if strings.TrimSpace(jobDescription) == "" {
		s.errorResponse(w, r, badRequest("Job description is required"), "")
		return
	}

	var resumeText string
	switch {
	case found:
		if resumeText, err = s.readDocument(data); err != nil {
			s.errorResponse(w, r, err, "Failed to scan resume")
			return
		}
	case strings.TrimSpace(r.FormValue(resumeTextField)) != "":
		resumeText = r.FormValue(resumeTextField)
	default:
		s.errorResponse(w, r, badRequest("Resume text or file is required"), "")
		return
	}

	result, err := s.analyzer.Scan(r.Context(), resumeText, jobDescription)
	if err != nil {
		s.errorResponse(w, r, err, "Failed to scan resume")
		return
	}

	s.jsonResponse(w, http.StatusOK, scanResponse{
		Message:    "Resume scan completed successfully",
		ScanResult: result,
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, r, err, "")
			return
		}
		s.errorResponse(w, r, badRequest("Invalid JSON body"), "")
		return
	}
	if err := types.Validate(req); err != nil {
		s.errorResponse(w, r, badRequest(fmt.Sprintf("Invalid score request: %v", err)), "")
		return
	}

	req.Resume.Normalize()
	s.jsonResponse(w, http.StatusOK, s.scorer.Score(req.Resume, req.Text, req.KeywordAnalysis))
}

// readUpload parses the multipart form and returns the résumé file, if any.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+formOverhead)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, false, err
		}
		return nil, false, badRequest("Invalid multipart form")
	}

	file, header, err := r.FormFile(resumeField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		return nil, false, &RequestError{Status: http.StatusRequestEntityTooLarge, Message: "File too large"}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, false, fmt.Errorf("read upload: %w", err)
	}

	s.requestLogger(r).Debug("resume uploaded",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)
	return data, true, nil
}

// documentText accepts PDF and DOCX uploads only.
func documentText(data []byte) (string, error) {
	mime := textextract.Detect(data)
	if mime != textextract.MIMEPDF && mime != textextract.MIMEDOCX {
		return "", &textextract.UnsupportedTypeError{MIME: mime}
	}
	return textextract.Extract(data)
}
