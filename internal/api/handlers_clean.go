package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/parser"
	"github.com/go-playground/validator/v10"
)

// jsonOverhead is the allowance for JSON framing on top of MAX_TEXT_BYTES.
const jsonOverhead = 64 << 10

type cleanRequest struct {
	Text    string          `json:"text"`
	Options map[string]bool `json:"options" validate:"dive,keys,optionname,endkeys"`
	Profile string          `json:"profile" validate:"omitempty,profilename"`
}

type optionsResponse struct {
	Options    []string         `json:"options"`
	Profiles   []config.Profile `json:"profiles"`
	Extensions []string         `json:"extensions"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optionsResponse{
		Options:    cleaner.OptionNames(),
		Profiles:   s.profiles.List(),
		Extensions: parser.Extensions(),
	})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxTextBytes+jsonOverhead)

	var req cleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("text exceeds max size (%d bytes)", s.cfg.MaxTextBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if int64(len(req.Text)) > s.cfg.MaxTextBytes {
		jsonError(w, fmt.Sprintf("text exceeds max size (%d bytes)", s.cfg.MaxTextBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		jsonError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	opts, err := s.resolveOptions(req.Profile, req.Options)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := s.orchestrator.CleanText(req.Text, opts)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCleanFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := s.formOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, status, err := s.readUpload(file)
	if err != nil {
		jsonError(w, err.Error(), status)
		return
	}

	res, err := s.orchestrator.CleanFile(r.Context(), data, filename, opts)
	if err != nil {
		s.log.Warn("clean file failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// resolveOptions starts from the named profile, if any, and lets explicit
// options override it.
func (s *Server) resolveOptions(profile string, explicit map[string]bool) (cleaner.Options, error) {
	var opts cleaner.Options
	if profile != "" {
		p, err := s.profiles.Get(profile)
		if err != nil {
			return cleaner.Options{}, err
		}
		opts = p.Options
	}
	opts.Apply(explicit)
	return opts, nil
}

// formOptions reads the profile and any excludeX=true|false fields of a
// multipart form.
func (s *Server) formOptions(r *http.Request) (cleaner.Options, error) {
	explicit := make(map[string]bool)
	for _, name := range cleaner.OptionNames() {
		v := r.FormValue(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cleaner.Options{}, fmt.Errorf("option %s: invalid boolean %q", name, v)
		}
		explicit[name] = b
	}
	return s.resolveOptions(r.FormValue("profile"), explicit)
}

// readUpload reads one uploaded file, enforcing MAX_UPLOAD_BYTES. The status
// is meaningful only when err is non-nil.
func (s *Server) readUpload(file multipart.File) ([]byte, int, error) {
	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, http.StatusInternalServerError, errors.New("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return data, 0, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "optionname":
			msgs = append(msgs, fmt.Sprintf("unknown option %q", e.Value()))
		case "profilename":
			msgs = append(msgs, fmt.Sprintf("invalid profile name %q", e.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation '%s'", e.Field(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
