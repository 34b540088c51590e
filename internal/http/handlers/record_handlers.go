package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/wifiattend/domain"
	"github.com/you/wifiattend/internal/infrastructure/repositories"
)

// RecordStore is the storage behind the record endpoints
type RecordStore interface {
	List(ctx context.Context, collection string, q repositories.ListQuery) (any, error)
	Create(ctx context.Context, collection string, body []byte) (any, error)
	Get(ctx context.Context, collection, id string) (any, error)
	Delete(ctx context.Context, collection, id string) error
}

// RecordHandlers serves the json-server style collection API
type RecordHandlers struct {
	store RecordStore
}

// NewRecordHandlers creates new record handlers
func NewRecordHandlers(store RecordStore) *RecordHandlers {
	return &RecordHandlers{store: store}
}

// List handles GET /:collection with equality filters, _sort, _order and _limit
func (h *RecordHandlers) List(c *gin.Context) {
	q := repositories.ListQuery{Filters: map[string]string{}}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "_sort":
			q.Sort = values[0]
		case "_order":
			q.Order = values[0]
		case "_limit":
			limit, err := strconv.Atoi(values[0])
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "_limit must be a number"})
				return
			}
			q.Limit = limit
		default:
			q.Filters[key] = values[0]
		}
	}

	records, err := h.store.List(c.Request.Context(), c.Param("collection"), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create handles POST /:collection
func (h *RecordHandlers) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
		return
	}

	record, err := h.store.Create(c.Request.Context(), c.Param("collection"), body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Get handles GET /:collection/:id
func (h *RecordHandlers) Get(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("collection"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Delete handles DELETE /:collection/:id
func (h *RecordHandlers) Delete(c *gin.Context) {
	err := h.store.Delete(c.Request.Context(), c.Param("collection"), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrUnknownCollection), errors.Is(err, domain.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrInvalidQuery), errors.Is(err, repositories.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("recordstore: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
