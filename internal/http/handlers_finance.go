package http

import (
	"net/http"

	"fintrack/internal/amqp"
	"fintrack/internal/log"
)

// Budgets

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Finance.ListBudgets(r.Context(), s.owner(r, ""))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(list).Write(w)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	detail, err := s.svc.Finance.BudgetDetail(r.Context(), s.owner(r, ""), r.PathValue("id"))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(detail).Write(w)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	b, err := req.budget()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	created, err := s.svc.Finance.CreateBudget(r.Context(), owner, b)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpCreate, owner, amqp.KindBudget, created.ID, created.Name, created.Amount.Cents)
	NewJSONResponse().Status(http.StatusCreated).Body(created).Write(w)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	b, err := req.budget()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	updated, err := s.svc.Finance.UpdateBudget(r.Context(), owner, r.PathValue("id"), b)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpUpdate, owner, amqp.KindBudget, updated.ID, updated.Name, updated.Amount.Cents)
	NewJSONResponse().Body(updated).Write(w)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	owner, id := s.owner(r, ""), r.PathValue("id")
	if err := s.svc.Finance.DeleteBudget(r.Context(), owner, id); err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpDelete, owner, amqp.KindBudget, id, "", 0)
	w.WriteHeader(http.StatusNoContent)
}

// Expenses

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	budgetID := sanitizeInput(r.URL.Query().Get("budgetId"))
	list, err := s.svc.Finance.ListExpenses(r.Context(), s.owner(r, ""), budgetID)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(list).Write(w)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	e, err := req.expense()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	created, err := s.svc.Finance.CreateExpense(r.Context(), owner, e)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpCreate, owner, amqp.KindExpense, created.ID, created.Name, created.Amount.Cents)
	NewJSONResponse().Status(http.StatusCreated).Body(created).Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	e, err := req.expense()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	updated, err := s.svc.Finance.UpdateExpense(r.Context(), owner, r.PathValue("id"), e)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpUpdate, owner, amqp.KindExpense, updated.ID, updated.Name, updated.Amount.Cents)
	NewJSONResponse().Body(updated).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	owner, id := s.owner(r, ""), r.PathValue("id")
	if err := s.svc.Finance.DeleteExpense(r.Context(), owner, id); err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpDelete, owner, amqp.KindExpense, id, "", 0)
	w.WriteHeader(http.StatusNoContent)
}

// Incomes

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Finance.ListIncomes(r.Context(), s.owner(r, ""))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(list).Write(w)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	in, err := req.income()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	created, err := s.svc.Finance.CreateIncome(r.Context(), owner, in)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpCreate, owner, amqp.KindIncome, created.ID, created.Name, created.Amount.Cents)
	NewJSONResponse().Status(http.StatusCreated).Body(created).Write(w)
}

func (s *Server) handleUpdateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	in, err := req.income()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	owner := s.owner(r, req.CreatedBy)
	updated, err := s.svc.Finance.UpdateIncome(r.Context(), owner, r.PathValue("id"), in)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpUpdate, owner, amqp.KindIncome, updated.ID, updated.Name, updated.Amount.Cents)
	NewJSONResponse().Body(updated).Write(w)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	owner, id := s.owner(r, ""), r.PathValue("id")
	if err := s.svc.Finance.DeleteIncome(r.Context(), owner, id); err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.events.LogRecordWritten(r.Context(), log.OpDelete, owner, amqp.KindIncome, id, "", 0)
	w.WriteHeader(http.StatusNoContent)
}
