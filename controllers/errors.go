package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"articlelike/repository"

	"github.com/gin-gonic/gin"
)

// respondError writes the JSON error body matching err and records it on the context.
func respondError(ctx *gin.Context, err error) {
	_ = ctx.Error(err)

	switch {
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrDuplicate):
		ctx.JSON(http.StatusConflict, gin.H{"error": "already liked"})
	case errors.Is(err, repository.ErrInvalidReference):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "user or article does not exist"})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || v == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}
