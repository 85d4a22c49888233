package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/caseforge/internal/service"
)

// handleHealth returns campaign counters.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.service.Health())
}

// handleDashboard returns the coverage snapshot.
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.service.Dashboard())
}

type nextInstructionRequest struct {
	AgentID string `json:"agent_id"`
	Topic   string `json:"topic"`
}

// handleNextInstruction plans and returns one authoring instruction.
// GET passes agent_id and topic as query parameters, POST as a JSON body.
func (s *Server) handleNextInstruction(w http.ResponseWriter, r *http.Request) {
	var req nextInstructionRequest
	if r.Method == http.MethodGet {
		req.AgentID = r.URL.Query().Get("agent_id")
		req.Topic = r.URL.Query().Get("topic")
	} else if err := decodeJSONBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if agentID, ok := s.authenticatedAgent(w, r); !ok {
		return
	} else if agentID != "" {
		req.AgentID = agentID
	}

	result, err := s.service.NextInstruction(r.Context(), strings.TrimSpace(req.AgentID), strings.TrimSpace(req.Topic))
	if err != nil {
		s.log.Error("next-instruction failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleSubmitCase records an authored narrative.
func (s *Server) handleSubmitCase(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if agentID, ok := s.authenticatedAgent(w, r); !ok {
		return
	} else if agentID != "" {
		req.AgentID = agentID
	}

	result, err := s.service.SubmitCase(r.Context(), req)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("submit-case failed", zap.Error(err))
		} else {
			s.log.Info("submit-case refused",
				zap.String("instruction_id", req.InstructionID),
				zap.Int("status", status),
				zap.String("reason", err.Error()))
		}
		s.errorResponse(w, status, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

type agentTokenRequest struct {
	AgentID string `json:"agent_id"`
}

// handleAgentToken issues a bearer token for an authoring agent.
func (s *Server) handleAgentToken(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil {
		s.errorResponse(w, http.StatusNotImplemented, "token issuance disabled: no signing key configured")
		return
	}
	var req agentTokenRequest
	if err := decodeJSONBody(r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	agentID := strings.TrimSpace(req.AgentID)
	if agentID == "" {
		s.errorResponse(w, http.StatusBadRequest, "agent_id manquant")
		return
	}
	token, err := s.jwtService.GenerateToken(agentID)
	if err != nil {
		s.log.Error("token generation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"token":    token,
		"agent_id": agentID,
	})
}

// authenticatedAgent validates an optional bearer token. It returns the
// token's agent ID, or empty when no token was presented. A malformed
// or invalid token writes the error response and returns ok=false.
func (s *Server) authenticatedAgent(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" || s.jwtService == nil {
		return "", true
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		s.errorResponse(w, http.StatusUnauthorized, "invalid authorization header format")
		return "", false
	}
	claims, err := s.jwtService.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, err.Error())
		return "", false
	}
	return claims.AgentID, true
}

func decodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
