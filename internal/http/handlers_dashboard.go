package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/log"
	"fintrack/internal/planner"
	"fintrack/internal/transfer"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard.Build(r.Context(), s.owner(r, ""))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(d).Write(w)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	view, err := s.svc.Dashboard.Insights(r.Context(), s.owner(r, ""))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	NewJSONResponse().Body(view).Write(w)
}

// handleExport streams the owner's records as JSON (default) or XLSX.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "xlsx" {
		BadRequestError("format must be json or xlsx").Write(w)
		return
	}

	snap, err := s.svc.Transfer.Export(r.Context(), s.owner(r, ""))
	if err != nil {
		FromError(r, err).Write(w)
		return
	}

	var buf bytes.Buffer
	contentType := "application/json"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = transfer.WriteXLSX(&buf, snap)
	} else {
		err = transfer.WriteJSON(&buf, snap)
	}
	if err != nil {
		FromError(r, fmt.Errorf("encode %s export: %w", format, err)).Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Records exported",
		log.FieldOwnerID, snap.User,
		log.FieldOperation, log.OpExport,
		"format", format,
		"bytes", buf.Len())

	filename := fmt.Sprintf("fintrack-export-%s.%s", snap.ExportDate.Format(time.DateOnly), format)
	NewJSONResponse().
		Header("Content-Disposition", `attachment; filename="`+filename+`"`).
		Raw(contentType, buf.Bytes()).
		Write(w)
}

func (s *Server) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	var bulk transfer.Bulk
	if err := decodeJSON(w, r, maxImportBytes, &bulk); err != nil {
		FromError(r, err).Write(w)
		return
	}
	bulk.Normalize()
	if bulk.Empty() {
		BadRequestError("nothing to import").Write(w)
		return
	}

	owner := s.owner(r, bulk.CreatedBy)
	res, err := s.svc.Transfer.Import(r.Context(), owner, bulk)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.logger.InfoContext(r.Context(), "Bulk import accepted",
		log.FieldOwnerID, owner,
		log.FieldOperation, log.OpImport,
		"created", res.Budgets+res.Expenses+res.Incomes,
		"skipped", res.Skipped)
	NewJSONResponse().Status(http.StatusCreated).Body(res).Write(w)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	owner := s.owner(r, "")
	n, err := s.svc.Transfer.DeleteAll(r.Context(), owner)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.logger.WarnContext(r.Context(), "Owner data deleted",
		log.FieldOwnerID, owner,
		log.FieldOperation, log.OpPurge,
		"rows", n)
	NewJSONResponse().Body(map[string]int64{"deleted": n}).Write(w)
}

// handlePlan computes a budget plan and, when asked, saves it as budgets.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		FromError(r, err).Write(w)
		return
	}
	income, err := req.MonthlyIncome.Require()
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	categories := req.Categories
	if len(categories) == 0 {
		categories = planner.DefaultCategories()
	}
	plan, err := planner.Build(income, categories)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	if !req.Save {
		NewJSONResponse().Body(map[string]any{"plan": plan}).Write(w)
		return
	}

	owner := s.owner(r, req.CreatedBy)
	created, err := s.svc.Finance.ApplyPlan(r.Context(), owner, plan)
	if err != nil {
		FromError(r, err).Write(w)
		return
	}
	s.logger.InfoContext(r.Context(), "Budget plan saved",
		log.FieldOwnerID, owner,
		log.FieldOperation, log.OpPlan,
		"budgets", len(created))
	NewJSONResponse().Status(http.StatusCreated).Body(map[string]any{
		"plan":    plan,
		"budgets": created,
	}).Write(w)
}
