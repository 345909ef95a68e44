package webserver

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/formgate/formgate/src/gateway/intake"
	"github.com/formgate/formgate/src/shared/form"
)

type Submit struct {
	client *intake.Client
	schema form.Schema
}

// atEOF reports whether the body held exactly one JSON value; trailing
// content after the object is a parse error.
func atEOF(dec *json.Decoder) bool {
	var trailing any
	return dec.Decode(&trailing) == io.EOF
}

func NewSubmit(client *intake.Client, schema form.Schema) Submit {
	return Submit{client: client, schema: schema}
}

// Create accepts one submission attempt: parse, validate, forward. The
// intake service is only reached with a payload that already passed the
// schema; anything it still rejects is mirrored back verbatim.
func (s Submit) Create(c *gin.Context) {
	if ct := c.ContentType(); !strings.HasPrefix(ct, "application/json") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Content-Type must be application/json",
		})
		return
	}

	var raw map[string]any
	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&raw); err != nil || raw == nil || !atEOF(dec) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "request body must be a JSON object",
		})
		return
	}

	fields, ferrs := s.schema.Validate(raw)
	if len(ferrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  ferrs,
		})
		return
	}

	res, err := s.client.Submit(c.Request.Context(), fields)
	if err != nil {
		log.Printf("submit %s: intake unreachable: %v", c.GetString("request_id"), err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "submission could not be processed, try again later",
		})
		return
	}

	if !res.Accepted {
		// Second-tier rejection; the payload changed in flight or the
		// tiers disagree on the schema. Mirror the field errors.
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "validation failed",
			"errors":  res.Errors,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "submission accepted",
		"id":      res.ID,
	})
}
