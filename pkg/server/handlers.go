package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/stackbar/pkg/buildinfo"
	apperrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	pipeline.Options

	// Format selects the single output format; it defaults to svg.
	Format string `json:"format,omitempty"`
}

// Response headers describing a render.
const (
	HeaderRenderID = "X-Render-Id"
	HeaderCache    = "X-Cache"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRender(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	opts := req.Options
	opts.Formats = []string{req.Format}
	opts.Logger = s.logger.With("request", RequestID(r.Context()))

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := result.Artifacts[req.Format]
	h := w.Header()
	h.Set("Content-Type", contentTypes[req.Format])
	h.Set("Content-Length", strconv.Itoa(len(data)))
	h.Set(HeaderRenderID, result.ID)
	if result.CacheInfo.RenderHit {
		h.Set(HeaderCache, "hit")
	} else {
		h.Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) decodeRender(w http.ResponseWriter, r *http.Request) (RenderRequest, error) {
	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody)
		}
		return req, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid request body")
	}

	switch {
	case req.Format != "" && len(req.Formats) > 0:
		return req, apperrors.New(apperrors.ErrCodeInvalidInput, "set either format or formats")
	case len(req.Formats) > 1:
		return req, apperrors.New(apperrors.ErrCodeInvalidInput, "one format per request")
	case len(req.Formats) == 1:
		req.Format = req.Formats[0]
	case req.Format == "":
		req.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(req.Format); err != nil {
		return req, err
	}
	return req, nil
}

// fail answers with the status of the error's code. Internal errors are
// logged and reported without their cause.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	code := string(apperrors.GetCode(err))
	msg := apperrors.UserMessage(err)
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "id", RequestID(r.Context()), "err", err)
		if apperrors.GetCode(err) == "" {
			msg = "internal error"
		}
	}
	writeError(w, r, status, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
