package httpapi

import (
	"encoding/json"
	"net/http"

	apperrors "placement-directory/internal/common/errors"
)

type errorBody struct {
	Code      apperrors.ErrorCode `json:"code"`
	Message   string              `json:"message"`
	Details   string              `json:"details,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err as the error envelope. Internal errors never leak
// their cause to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := apperrors.Normalize(err)
	status := apperrors.HTTPStatus(stdErr.Code)

	body := errorBody{
		Code:      stdErr.Code,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		RequestID: RequestIDFrom(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).Error("request failed", map[string]interface{}{
			"path":       r.URL.Path,
			"code":       string(stdErr.Code),
			"request_id": body.RequestID,
		})
		if stdErr.Code == apperrors.ErrCodeInternal {
			body.Details = ""
		}
	}

	writeJSON(w, status, errorEnvelope{Error: body})
}
