package server

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/hyperjump/fitscout/internal/models"
	"github.com/hyperjump/fitscout/internal/validation"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req models.SizeRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.logger.Debug("size suggest request",
		zap.String("brand", req.Brand),
		zap.String("category", req.Category))

	suggestion, err := s.sizer.Suggest(&req)
	if err != nil {
		s.respondFailure(w, r, "size suggestion failed", err)
		return
	}
	if suggestion.Alternates == nil {
		suggestion.Alternates = []string{}
	}
	s.respondJSON(w, http.StatusOK, suggestion)
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	var req models.FindRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp, err := s.finder.Find(r.Context(), &req)
	if err != nil {
		s.respondFailure(w, r, "find failed", err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"brands": s.store.ListBrands()})
}

// decode reads and validates a JSON body into v, writing a 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		api := verr.ToAPIError()
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   api.Message,
			Code:    api.Code,
			Details: api.Details,
		})
		return false
	}
	return true
}

// respondFailure maps user input errors to 400 and everything else to 500.
func (s *Server) respondFailure(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if models.IsUserError(err) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	message := "internal error"
	if errors.Is(err, models.ErrEmbedderUnavailable) {
		message = models.ErrEmbedderUnavailable.Error()
	}
	s.respondError(w, http.StatusInternalServerError, message)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}
