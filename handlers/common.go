package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"catalog/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ListRequest struct {
	Skip   int    `form:"skip"`
	Limit  int    `form:"limit"`
	Search string `form:"search"`
}

func (r *ListRequest) Defaults() {
	if r.Skip < 0 {
		r.Skip = 0
	}
	if r.Limit <= 0 {
		r.Limit = 100
	}
}

type IDRequest struct {
	ID uint64 `json:"id" binding:"required"`
}

type IDQueryRequest struct {
	ID uint64 `form:"id" binding:"required"`
}

// ConflictError is raised by the pre-write uniqueness checks so the caller
// gets a message naming the offending value. The unique indexes remain the
// final backstop against concurrent writers.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func respondError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var invalid *models.ValidationError
	var conflict *ConflictError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error(), "missing_ids": notFound.IDs})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// A concurrent writer won the race past our pre-check
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		log.Print(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFoundError(entity string, id uint64) *models.NotFoundError {
	return &models.NotFoundError{Entity: entity, IDs: []uint64{id}}
}

func validationError(msg string) *models.ValidationError {
	return &models.ValidationError{Msg: msg}
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}
