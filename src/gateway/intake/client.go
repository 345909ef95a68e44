package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/formgate/formgate/src/shared/form"
)

// Client talks to the intake service. No retries: a failed forward is the
// caller's problem to surface.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Result is the intake verdict for one forwarded submission. Accepted and
// Errors are mutually exclusive; transport-level failures come back as a
// plain error instead.
type Result struct {
	Accepted bool
	ID       uint64
	Message  string
	Errors   []form.FieldError
}

type intakeResponse struct {
	Success bool              `json:"success"`
	ID      uint64            `json:"id"`
	Message string            `json:"message"`
	Errors  []form.FieldError `json:"errors"`
}

// Submit forwards the validated fields. A 400 maps to a rejected Result
// carrying the intake's field errors; any 5xx or transport failure is
// returned as an error for the gateway to translate into 502.
func (c *Client) Submit(ctx context.Context, fields map[string]string) (Result, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/submissions", bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		var body intakeResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Result{}, fmt.Errorf("decode intake response: %w", err)
		}
		return Result{Accepted: true, ID: body.ID, Message: body.Message}, nil

	case resp.StatusCode == http.StatusBadRequest:
		var body intakeResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return Result{}, fmt.Errorf("decode intake response: %w", err)
		}
		return Result{Accepted: false, Message: body.Message, Errors: body.Errors}, nil

	default:
		return Result{}, fmt.Errorf("intake returned status %d", resp.StatusCode)
	}
}
