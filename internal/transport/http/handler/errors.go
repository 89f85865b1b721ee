package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"rfphub/internal/app"
	"rfphub/internal/transport/http/response"
)

// serviceError translates the app-level taxonomy into HTTP status codes.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrValidation), errors.Is(err, app.ErrDuplicate):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrConflict):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrExtraction):
		response.Error(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, app.ErrInvalidCredential):
		response.Error(c, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("unhandled service error: %v", err)
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
