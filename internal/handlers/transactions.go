package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"expensepro/internal/middleware"
	"expensepro/internal/models"
	"expensepro/internal/money"
	"expensepro/internal/services"
	"expensepro/internal/store"

	"github.com/go-chi/chi/v5"
)

type transactionPayload struct {
	UserID      string              `json:"user_id"`
	Type        string              `json:"type"`
	Amount      string              `json:"amount"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	CostCenter  string              `json:"cost_center"`
	Ledger      string              `json:"ledger"`
	Approver    string              `json:"approver"`
	Attachments []models.Attachment `json:"attachments"`
}

func transactionFilterFromQuery(r *http.Request) store.TransactionFilter {
	q := r.URL.Query()
	filter := store.TransactionFilter{
		UserID:    q.Get("user_id"),
		Type:      q.Get("type"),
		Status:    q.Get("status"),
		Approver:  q.Get("approver"),
		CreatedBy: q.Get("created_by"),
		DateStart: q.Get("date_start"),
		DateEnd:   q.Get("date_end"),
	}
	if month, err := strconv.Atoi(q.Get("month")); err == nil {
		filter.Month = month
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		filter.Year = year
	}
	return filter
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	txns, err := h.transactions.List(r.Context(), actor, transactionFilterFromQuery(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, txns)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseMinor(payload.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	txn, err := h.transactions.Create(r.Context(), services.CreateTransactionRequest{
		Actor:       actor,
		UserID:      payload.UserID,
		Type:        payload.Type,
		Amount:      amount,
		Date:        payload.Date,
		Description: payload.Description,
		Category:    payload.Category,
		CostCenter:  payload.CostCenter,
		Ledger:      payload.Ledger,
		Approver:    payload.Approver,
		Attachments: payload.Attachments,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, txn)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	txn, err := h.transactions.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var payload transactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.ParseMinor(payload.Amount)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	txn, err := h.transactions.Update(r.Context(), services.UpdateTransactionRequest{
		Actor:       actor,
		ID:          chi.URLParam(r, "id"),
		Type:        payload.Type,
		Amount:      amount,
		Date:        payload.Date,
		Description: payload.Description,
		Category:    payload.Category,
		CostCenter:  payload.CostCenter,
		Ledger:      payload.Ledger,
		Approver:    payload.Approver,
		Attachments: payload.Attachments,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.transactions.Delete(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type statusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

func (h *Handler) SetTransactionStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	txn, err := h.transactions.SetStatus(r.Context(), actor, chi.URLParam(r, "id"), req.Status, req.Comment)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

type bulkItemResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) BulkTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "no ids given")
		return
	}
	var results []services.BulkResult
	switch req.Action {
	case "approve":
		results = h.transactions.BulkSetStatus(r.Context(), actor, req.IDs, models.StatusApproved)
	case "reject":
		results = h.transactions.BulkSetStatus(r.Context(), actor, req.IDs, models.StatusRejected)
	case "delete":
		results = h.transactions.BulkDelete(r.Context(), actor, req.IDs)
	default:
		respondError(w, http.StatusBadRequest, "unknown bulk action")
		return
	}
	items := make([]bulkItemResult, 0, len(results))
	for _, result := range results {
		item := bulkItemResult{ID: result.ID, OK: result.Err == nil}
		if result.Err != nil {
			item.Error = result.Err.Error()
		}
		items = append(items, item)
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := h.export.TransactionsCSV(r.Context(), actor, transactionFilterFromQuery(r), w); err != nil {
		h.log.Error().Err(err).Msg("transaction csv export failed")
	}
}
