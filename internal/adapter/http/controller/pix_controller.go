package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mockqv/Lumina-Bank/internal/adapter/http/middleware"
	"github.com/mockqv/Lumina-Bank/internal/adapter/http/models"
	"github.com/mockqv/Lumina-Bank/internal/commons"
	"github.com/mockqv/Lumina-Bank/internal/usecase/service_interfaces"
)

type PixController struct {
	service service_interfaces.PixService
}

func NewPixController(service service_interfaces.PixService) *PixController {
	return &PixController{service: service}
}

func (c *PixController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /pix/keys", wrap(authMiddleware, c.createKey))
	mux.Handle("GET /pix/keys", wrap(authMiddleware, c.listKeys))
	mux.Handle("GET /pix/keys/primary", wrap(authMiddleware, c.getPrimaryKey))
	mux.Handle("GET /pix/keys/details", wrap(authMiddleware, c.getKeyDetails))
	mux.Handle("PATCH /pix/keys/{id}", wrap(authMiddleware, c.updateKeyStatus))
	mux.Handle("DELETE /pix/keys/{id}", wrap(authMiddleware, c.deleteKey))
	mux.Handle("POST /pix/transfer", wrap(authMiddleware, c.createTransfer))
}

func (c *PixController) createKey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreatePixKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.PixKeyResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreateKey(r.Context(), userID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Pix key value is already registered":
			status = http.StatusConflict
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *PixController) listKeys(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.ListKeys(r.Context(), userID)
	if err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusInternalServerError, response)
		logResponse(r, http.StatusInternalServerError, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *PixController) updateKeyStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.UpdatePixKeyStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.PixKeyResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.UpdateKeyStatus(r.Context(), r.PathValue("id"), userID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Pix key not found or access denied":
			status = http.StatusNotFound
		case "Pix key value is already registered":
			status = http.StatusConflict
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *PixController) deleteKey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.DeleteKey(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if response.Message == "Pix key not found or access denied" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *PixController) getKeyDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetKeyDetails(r.Context(), r.URL.Query().Get("key"))
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Pix key not found":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *PixController) getPrimaryKey(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	response, err := c.service.GetPrimaryKey(r.Context(), userID)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if response.Message == "No active pix key for this user" {
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *PixController) createTransfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.PixTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreatePixTransfer(r.Context(), userID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Recipient not found", "No account found for this user", "Recipient has no account", "Account not found or access denied":
			status = http.StatusNotFound
		case "Cannot transfer to yourself":
			status = http.StatusUnprocessableEntity
		case "Insufficient funds":
			status = http.StatusUnprocessableEntity
		case "Transfer key not found, expired, or already used":
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}
