package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hruskam/roomledger/internal/group"
	"github.com/hruskam/roomledger/pkg/middleware"
	"github.com/hruskam/roomledger/pkg/response"
)

// Handler handles HTTP requests for expense and debt operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByGroup)
	r.Get("/{id}", h.GetByID)
	r.Get("/export", h.ExportCSV)

	// Debts
	r.Get("/debts", h.ListMyDebts)
	r.Post("/debts/{debtId}/settle", h.SettleDebt)

	return r
}

// Create handles POST /expenses
// @Summary      Create an expense
// @Description  Record an expense and split it into debts with the selected strategy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	exp, err := h.service.CreateExpense(r.Context(), payerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, group.ErrGroupNotFound):
			response.NotFound(w, "Group not found")
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrPayerNotMember),
			errors.Is(err, ErrParticipantNotMember):
			response.BadRequest(w, err.Error())
		default:
			response.BadRequest(w, err.Error())
		}
		return
	}

	response.JSON(w, http.StatusCreated, ToResponse(exp))
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense with the debts it generated
// @Tags         expenses
// @Produce      json
// @Param        id path int true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	exp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, "Expense not found")
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	response.JSON(w, http.StatusOK, ToResponse(exp))
}

// ListByGroup handles GET /expenses?group_id={id}
// @Summary      List group expenses
// @Tags         expenses
// @Produce      json
// @Param        group_id query int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	expenses, err := h.service.ListByGroup(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, "Group not found")
			return
		}
		response.InternalError(w, "Failed to list expenses")
		return
	}

	resp := make([]*ExpenseResponse, len(expenses))
	for i, exp := range expenses {
		resp[i] = ToResponse(exp)
	}

	response.JSON(w, http.StatusOK, resp)
}

// ListMyDebts handles GET /expenses/debts
// @Summary      List the caller's debts
// @Description  Debts where the caller is debtor or creditor; unsettled_only=true filters settled ones out
// @Tags         debts
// @Produce      json
// @Param        unsettled_only query bool false "Only unsettled debts"
// @Success      200 {object} response.APIResponse{data=[]DebtResponse}
// @Router       /expenses/debts [get]
func (h *Handler) ListMyDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	unsettledOnly := r.URL.Query().Get("unsettled_only") == "true"

	debts, err := h.service.ListDebtsByUser(r.Context(), userID, unsettledOnly)
	if err != nil {
		response.InternalError(w, "Failed to list debts")
		return
	}

	resp := make([]*DebtResponse, len(debts))
	for i, d := range debts {
		resp[i] = ToDebtResponse(d)
	}

	response.JSON(w, http.StatusOK, resp)
}

// SettleDebt handles POST /expenses/debts/{debtId}/settle
// @Summary      Settle a debt
// @Description  Mark a debt as settled and notify the active channels; irreversible
// @Tags         debts
// @Produce      json
// @Param        debtId path int true "Debt ID"
// @Success      200 {object} response.APIResponse{data=DebtResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /expenses/debts/{debtId}/settle [post]
func (h *Handler) SettleDebt(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing user identity")
		return
	}

	debtID, err := strconv.ParseInt(chi.URLParam(r, "debtId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid debt ID")
		return
	}

	d, err := h.service.SettleDebt(r.Context(), debtID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrDebtNotFound):
			response.NotFound(w, "Debt not found")
		case errors.Is(err, ErrAlreadySettled):
			response.Conflict(w, err.Error())
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to settle debt")
		}
		return
	}

	response.JSON(w, http.StatusOK, ToDebtResponse(d))
}

// ExportCSV handles GET /expenses/export?group_id={id}
// @Summary      Export group expenses as CSV
// @Description  One line per expense: description, amount, date, payer name
// @Tags         expenses
// @Produce      text/csv
// @Param        group_id query int true "Group ID"
// @Success      200 {string} string "CSV payload"
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/export [get]
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.URL.Query().Get("group_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	if err := h.service.ExportCSV(r.Context(), groupID, w); err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, "Group not found")
			return
		}
		response.InternalError(w, "Failed to export expenses")
		return
	}
}
