package http

import (
	"net/http"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
)

// Goals have no owner; every caller sees the same list.

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Goals.List(r.Context())
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(list).Write(w)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	g, err := req.goal()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	created, err := s.svc.Goals.Create(r.Context(), g)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpCreate, "", amqp.KindGoal, created.ID, created.Title, created.TargetAmount.Cents)
	NewJSONResponse().Status(http.StatusCreated).Body(created).Write(w)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	g, err := req.goal()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	updated, err := s.svc.Goals.Update(r.Context(), r.PathValue("id"), g, !req.CurrentAmount.Set)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpUpdate, "", amqp.KindGoal, updated.ID, updated.Title, updated.TargetAmount.Cents)
	NewJSONResponse().Body(updated).Write(w)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.svc.Goals.Delete(r.Context(), id); err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpDelete, "", amqp.KindGoal, id, "", 0)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	amount, err := req.Amount.Require()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	g, err := s.svc.Goals.AddProgress(r.Context(), r.PathValue("id"), amount)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(g).Write(w)
}
