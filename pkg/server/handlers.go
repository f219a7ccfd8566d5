// pkg/server/handlers.go
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/retailops/warehouse-ingress/pkg/connector"
	"github.com/retailops/warehouse-ingress/pkg/ingress"
	"github.com/retailops/warehouse-ingress/pkg/logging"
)

// maxUploadBytes caps the size of uploaded files held in memory.
const maxUploadBytes = 64 << 20

var errUploadTooLarge = errors.New("uploaded file exceeds the 64 MiB size limit")

// readLimited reads at most limit bytes from r and fails when r holds more,
// so an oversized upload is rejected rather than loaded truncated.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	contents, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(contents)) > limit {
		return nil, errUploadTooLarge
	}
	return contents, nil
}

type queryRequest struct {
	Connection connector.ConnectionDetails `json:"connection_details"`
	Query      string                      `json:"query"`
	Entity     string                      `json:"table_name"`
}

type connectionRequest struct {
	Connection connector.ConnectionDetails `json:"connection_details"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Detail  string `json:"detail"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		s.writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := s.service.RunQuery(r.Context(), req.Entity, req.Query, req.Connection)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entityTag := strings.TrimPrefix(r.URL.Path, "/api/upload/")
	if entityTag == "" || strings.Contains(entityTag, "/") {
		s.writeError(w, http.StatusBadRequest, "upload path must name a target entity")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	contents, err := readLimited(file, maxUploadBytes)
	if err != nil {
		if errors.Is(err, errUploadTooLarge) {
			s.writeError(w, http.StatusBadRequest, err.Error())
		} else {
			s.writeError(w, http.StatusBadRequest, "failed to read uploaded file: "+err.Error())
		}
		return
	}

	result, err := s.service.LoadFile(r.Context(), entityTag, header.Filename, contents)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	details, ok := s.decodeConnection(w, r)
	if !ok {
		return
	}

	result, err := s.service.TestConnection(r.Context(), details)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSourceTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	details, ok := s.decodeConnection(w, r)
	if !ok {
		return
	}

	tables, err := s.service.ListSourceTables(r.Context(), details)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tables":  tables,
	})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"tables": s.service.ListEntities(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeConnection accepts either a bare descriptor or one wrapped in a
// connection_details envelope.
func (s *Server) decodeConnection(w http.ResponseWriter, r *http.Request) (connector.ConnectionDetails, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return connector.ConnectionDetails{}, false
	}

	var wrapped connectionRequest
	if err := json.Unmarshal(body, &wrapped); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return connector.ConnectionDetails{}, false
	}
	if wrapped.Connection != (connector.ConnectionDetails{}) {
		return wrapped.Connection, true
	}

	var bare connector.ConnectionDetails
	if err := json.Unmarshal(body, &bare); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return connector.ConnectionDetails{}, false
	}
	return bare, true
}

// writeServiceError maps a classified pipeline error onto an HTTP status.
// The error message is scrubbed once more before leaving the process.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ingress.IsClientError(err) {
		status = http.StatusBadRequest
	}

	s.logger.Warn("Request failed",
		zap.String("kind", ingress.KindOf(err).String()),
		zap.Int("status", status),
		zap.String("error", logging.Redact(err.Error())))

	s.writeError(w, status, logging.Redact(err.Error()))
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Success: false, Detail: detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}
