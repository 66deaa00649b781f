package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"dsrdraft/internal/mapping"
	"dsrdraft/internal/matcher"
	"dsrdraft/internal/pipeline"
	"dsrdraft/internal/report"
)

// handlePopulate runs the full pipeline on uploaded files and streams
// the populated document back. Per-strategy counts travel in response
// headers so clients get the accounting without a second request.
func (s *Server) handlePopulate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse upload: %v", err))
		return
	}

	workDir, err := os.MkdirTemp("", "dsrdraft-run-*")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create workspace")
		return
	}
	defer os.RemoveAll(workDir)

	cfg := s.cfg
	cfg.IntermediateDir = filepath.Join(workDir, "intermediate")
	cfg.IndexPath = filepath.Join(cfg.IntermediateDir, "ib_index.json")
	cfg.OutputPath = filepath.Join(workDir, "populated.docx")
	cfg.ForceReindex = true

	for _, up := range []struct {
		field string
		dst   *string
		name  string
	}{
		{"source", &cfg.SourcePDF, "source.pdf"},
		{"template", &cfg.TemplatePath, "template.docx"},
		{"mapping", &cfg.MappingPath, "mapping.md"},
	} {
		path, err := saveUpload(r, up.field, filepath.Join(workDir, up.name))
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("missing %q upload: %v", up.field, err))
			return
		}
		*up.dst = path
	}

	p := pipeline.New(cfg, s.log)

	idx, err := p.Index(r.Context())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("index source: %v", err))
		return
	}
	outcome, err := p.Match(r.Context(), idx)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("match content: %v", err))
		return
	}
	if err := p.Populate(outcome.Results); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("populate template: %v", err))
		return
	}

	rep := report.Build(outcome.Results)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="populated.docx"`)
	w.Header().Set("X-Fields-Direct", strconv.Itoa(outcome.Counts.Direct))
	w.Header().Set("X-Fields-Synthesis", strconv.Itoa(outcome.Counts.Synthesis))
	w.Header().Set("X-Fields-Unavailable", strconv.Itoa(outcome.Counts.Unavailable))
	w.Header().Set("X-Fields-Errors", strconv.Itoa(outcome.Counts.Errors))
	w.Header().Set("X-Fields-Populated", strconv.Itoa(len(rep.Populated)))

	f, err := os.Open(cfg.OutputPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read output")
		return
	}
	defer f.Close()
	io.Copy(w, f)
}

// handleMappingPreview parses an uploaded mapping document and
// returns the structured field table, so authors can check strategy
// classification before a full run.
func (s *Server) handleMappingPreview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	table, err := mapping.Parse(r.Body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fields": table.Fields(),
		"total":  table.Len(),
	})
}

// handleReportRender turns a matched-content artifact into an HTML
// population report.
func (s *Server) handleReportRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	var content map[string]string
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse matched content: %v", err))
		return
	}

	results := make([]matcher.Result, 0, len(content))
	for name, c := range content {
		results = append(results, matcher.Result{Placeholder: name, Content: c})
	}
	html, err := report.Build(results).HTML()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

func saveUpload(r *http.Request, field, dst string) (string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return dst, copyToFile(file, dst)
}

func copyToFile(src multipart.File, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, src)
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
