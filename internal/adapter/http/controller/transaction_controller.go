package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/middleware"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/domain"
	"github.com/mockqv/Lumina-Bank/internal/usecase/service_interfaces"
)

const (
	statementDateLayout      = "2006-01-02"
	defaultStatementPageSize = 20
)

type TransactionController struct {
	service          service_interfaces.TransactionService
	statementService service_interfaces.StatementService
}

func NewTransactionController(service service_interfaces.TransactionService, statementService service_interfaces.StatementService) *TransactionController {
	return &TransactionController{service: service, statementService: statementService}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /transactions", wrap(authMiddleware, c.createTransaction))
	mux.Handle("GET /transactions/recent", wrap(authMiddleware, c.listRecent))
	mux.Handle("GET /accounts/{id}/transactions", wrap(authMiddleware, c.listTransactions))
	mux.Handle("GET /accounts/{id}/statement", wrap(authMiddleware, c.getStatement))
}

func (c *TransactionController) createTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateTransaction(r.Context(), userID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Account not found or access denied":
			status = http.StatusNotFound
		case "Insufficient funds":
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *TransactionController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.ListTransactions(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if response.Message == "Account not found or access denied" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) listRecent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response := commons.ErrorResponse[[]models.TransactionResponse]("validation failed", "limit must be an integer")
			writeJSON(w, http.StatusBadRequest, response)
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		limit = parsed
	}

	response, err := c.service.GetRecent(r.Context(), userID, limit)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) getStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	query, err := parseStatementQuery(r)
	if err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.StatementResponse]("validation failed", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.statementService.GetStatement(r.Context(), userID, query)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Account not found or access denied":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

// parseStatementQuery reads the calendar-date range off the URL. Both dates
// are inclusive on the wire; the end date is pushed forward one day so the
// query range can stay half-open internally.
func parseStatementQuery(r *http.Request) (models.StatementQuery, error) {
	values := r.URL.Query()
	query := models.StatementQuery{
		AccountID: r.PathValue("id"),
		Page:      1,
		PageSize:  defaultStatementPageSize,
	}

	startDate, err := time.Parse(statementDateLayout, values.Get("startDate"))
	if err != nil {
		return query, errors.New("startDate must be a date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(statementDateLayout, values.Get("endDate"))
	if err != nil {
		return query, errors.New("endDate must be a date in YYYY-MM-DD format")
	}
	query.StartDate = startDate
	query.EndDate = endDate.AddDate(0, 0, 1)

	if raw := values.Get("type"); raw != "" {
		txType := domain.TransactionType(raw)
		if !txType.Valid() {
			return query, errors.New("type must be credit or debit")
		}
		query.Type = &txType
	}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, errors.New("page must be an integer")
		}
		query.Page = page
	}
	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return query, errors.New("pageSize must be an integer")
		}
		query.PageSize = pageSize
	}

	return query, nil
}
