package handlers

import (
	"net/http"

	"kgraph/pkg/common"
	pkgerrors "kgraph/pkg/errors"

	"go.uber.org/zap"
)

// responder writes JSON bodies and routes failures through the error handler
type responder struct {
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h responder) respondError(w http.ResponseWriter, r *http.Request, err error) {
	h.errors.Handle(w, r, err)
}

func (h responder) badRequest(w http.ResponseWriter, r *http.Request, message string) {
	h.errors.HandleStatus(w, r, http.StatusBadRequest, message)
}

func (h responder) notFound(w http.ResponseWriter, r *http.Request, resource string) {
	h.errors.Handle(w, r, pkgerrors.NewNotFoundError(resource))
}
