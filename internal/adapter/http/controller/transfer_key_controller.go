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

type TransferKeyController struct {
	service service_interfaces.TransferKeyService
}

func NewTransferKeyController(service service_interfaces.TransferKeyService) *TransferKeyController {
	return &TransferKeyController{service: service}
}

func (c *TransferKeyController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /transfer-keys", wrap(authMiddleware, c.create))
	mux.Handle("GET /transfer-keys/{key}", wrap(authMiddleware, c.get))
}

func (c *TransferKeyController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateTransferKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CreateTransferKeyResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Create(r.Context(), userID, req)
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *TransferKeyController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		logError(r, err, nil)
		status := http.StatusInternalServerError
		switch response.Message {
		case "validation failed":
			status = http.StatusBadRequest
		case "Transfer key not found or expired":
			status = http.StatusNotFound
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
