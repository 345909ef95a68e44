package webserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/formgate/formgate/src/intake/data"
	"github.com/formgate/formgate/src/intake/store"
	"github.com/formgate/formgate/src/intake/types"
	"github.com/formgate/formgate/src/shared/form"
)

type Submissions struct {
	store  store.Store
	rdb    *redis.Client
	schema form.Schema
}

func NewSubmissions(st store.Store, rdb *redis.Client, schema form.Schema) Submissions {
	return Submissions{store: st, rdb: rdb, schema: schema}
}

// atEOF reports whether the body held exactly one JSON value; trailing
// content after the object is a parse error.
func atEOF(dec *json.Decoder) bool {
	var trailing any
	return dec.Decode(&trailing) == io.EOF
}

// Create records one forwarded submission. The payload is re-validated
// from scratch: the hop from the gateway crosses a network boundary and
// its verdict is not trusted here.
func (h Submissions) Create(c *gin.Context) {
	var raw map[string]any
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&raw); err != nil || raw == nil || !atEOF(dec) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "request body must be a JSON object",
		})
		return
	}

	fields, ferrs := h.schema.Validate(raw)
	if len(ferrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  ferrs,
		})
		return
	}

	fields = h.schema.Sanitize(fields)

	sub := types.Submission{
		Name:    fields["name"],
		Email:   fields["email"],
		Subject: fields["subject"],
		Message: fields["message"],
	}

	// The insert runs to completion even if the gateway hangs up first;
	// a record for an undelivered response is accepted semantics.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.store.Create(ctx, &sub); err != nil {
		log.Printf("submission insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "submission could not be stored",
		})
		return
	}

	if h.rdb != nil {
		if err := data.PublishAccepted(ctx, h.rdb, map[string]any{
			"id":    sub.ID,
			"email": sub.Email,
			"time":  sub.CreatedAt.Unix(),
		}); err != nil {
			log.Printf("publish submission %d: %v", sub.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      sub.ID,
		"message": "submission recorded",
	})
}

func (h Submissions) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid submission id"})
		return
	}

	sub, err := h.store.Get(c.Request.Context(), id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "submission not found"})
		return
	}
	if err != nil {
		log.Printf("submission lookup %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": sub})
}

func (h Submissions) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	subs, err := h.store.List(c.Request.Context(), limit)
	if err != nil {
		log.Printf("submission list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissions": subs})
}
