package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/parlolabs/parlo/internal/convo"
	"github.com/parlolabs/parlo/internal/eval"
)

// maxAudioBytes caps uploaded utterance recordings (25 MB, the whisper
// endpoint's own file limit).
const maxAudioBytes = 25 << 20

type startRequest struct {
	Level string `json:"level"`
}

type startResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
	Audio     string `json:"audio"`
}

type utteranceResponse struct {
	Transcription string `json:"transcription"`
	Response      string `json:"response"`
	Audio         string `json:"audio"`
}

// startSession handles POST /api/v1/sessions. Selecting a level always opens
// a fresh session.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	level, ok := convo.ParseLevel(req.Level)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid level")
		return
	}

	result, err := s.service.Start(r.Context(), level)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, startResponse{
		SessionID: result.SessionID.String(),
		Response:  result.Greeting,
		Audio:     base64.StdEncoding.EncodeToString(result.Audio),
	})
}

// submitUtterance handles POST /api/v1/sessions/{sessionID}/utterances with a
// multipart "audio" file.
func (s *Server) submitUtterance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio")
		return
	}

	result, err := s.service.SubmitUtterance(r.Context(), id, audio)
	if err != nil {
		if errors.Is(err, convo.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		slog.Error("failed to process utterance", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, utteranceResponse{
		Transcription: result.Transcription,
		Response:      result.Reply,
		Audio:         base64.StdEncoding.EncodeToString(result.Audio),
	})
}

// endSession handles POST /api/v1/sessions/{sessionID}/end. An empty
// transcript is not a failure: the learner simply gets a "nothing to
// evaluate" report.
func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	report, err := s.service.End(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, eval.ErrEmptyTranscript):
			writeJSON(w, http.StatusOK, map[string]any{
				"report": map[string]string{"error": "No speech detected to evaluate"},
			})
		case errors.Is(err, convo.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session not found")
		default:
			slog.Error("failed to evaluate session", "session_id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to evaluate session")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"report": report})
}
