package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rmahat/seatledger/repository"
	"github.com/rmahat/seatledger/service"
)

func ok(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func fail(ctx *gin.Context, code int, message string, err error) {
	var data interface{}
	if err != nil {
		data = err.Error()
	}
	ctx.JSON(code, gin.H{
		"status":  "error",
		"message": message,
		"data":    data,
	})
}

// failErr maps the error taxonomy onto HTTP codes. A failed operation has no
// partial side effects, so the client may retry or re-fetch authoritative
// state.
func failErr(ctx *gin.Context, message string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		fail(ctx, http.StatusNotFound, message, err)
	case errors.Is(err, repository.ErrConflict):
		fail(ctx, http.StatusConflict, message, err)
	case errors.Is(err, repository.ErrStoreUnavailable):
		fail(ctx, http.StatusServiceUnavailable, message, err)
	case errors.Is(err, service.ErrInvalidSignature), errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrMissingField):
		fail(ctx, http.StatusBadRequest, message, err)
	default:
		fail(ctx, http.StatusInternalServerError, message, err)
	}
}
