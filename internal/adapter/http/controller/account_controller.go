package controller

import (
	"net/http"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/middleware"
	"github.com/mockqv/Lumina-Bank/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("GET /accounts", wrap(authMiddleware, c.listAccounts))
	mux.Handle("GET /accounts/{id}", wrap(authMiddleware, c.getAccount))
	mux.Handle("GET /balance", wrap(authMiddleware, c.getBalance))
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.ListAccounts(r.Context(), userID)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"), userID)
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

func (c *AccountController) getBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.GetBalance(r.Context(), userID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if response.Message == "No account found for this user" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
