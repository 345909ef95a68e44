package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formgate/formgate/src/intake/store"
	"github.com/formgate/formgate/src/intake/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStore mimics the MySQL store: monotonic ids, store-assigned
// created_at, read-committed visibility.
type memStore struct {
	mu      sync.Mutex
	nextID  uint64
	rows    map[uint64]types.Submission
	failing error
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uint64]types.Submission)}
}

func (m *memStore) Create(ctx context.Context, sub *types.Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing != nil {
		return m.failing
	}
	m.nextID++
	sub.ID = m.nextID
	sub.CreatedAt = time.Now()
	m.rows[sub.ID] = *sub
	return nil
}

func (m *memStore) Get(ctx context.Context, id uint64) (*types.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sub, nil
}

func (m *memStore) List(ctx context.Context, limit int) ([]types.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Submission
	for _, sub := range m.rows {
		out = append(out, sub)
	}
	return out, nil
}

func postSubmission(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/v1/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreate_AcceptedAndPersisted(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		ID      uint64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotZero(t, resp.ID)

	saved, err := st.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)
	assert.Equal(t, "ada@example.com", saved.Email)
	assert.Equal(t, "hi", saved.Message)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestCreate_SanitizesBeforePersisting(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"  Ada  ","email":"ada@example.com","message":"1 < 2 & <b>bold</b>"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	saved, err := st.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ada", saved.Name)
	assert.NotContains(t, saved.Message, "<b>")
	assert.Contains(t, saved.Message, "&lt;")
	assert.Contains(t, saved.Message, "&amp;")
}

func TestCreate_StrippedMarkupPersistedTrimmed(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"<b> hi </b>"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	saved, err := st.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "hi", saved.Message)
}

func TestCreate_RevalidatesForwardedPayload(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	// A gateway bug or a hostile peer on the internal network sends a
	// payload that never passed validation.
	rec := postSubmission(r, `{"name":"Ada","email":"tampered","message":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"MALFORMED"`)
	assert.Empty(t, st.rows, "rejected submission must not leave a row")
}

func TestCreate_MissingFieldNoWrite(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
	assert.Contains(t, rec.Body.String(), `"field":"message"`)
	assert.Empty(t, st.rows)
}

func TestCreate_StorageFailureIs500(t *testing.T) {
	st := newMemStore()
	st.failing = errors.New("connection lost during commit")
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	// Generic message: internal detail stays in the log.
	assert.NotContains(t, rec.Body.String(), "connection lost")
}

func TestCreate_BodyNotObject(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.rows)
}

func TestCreate_TrailingContentRejected(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"hi"} extra`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, st.rows)
}

func TestCreate_DuplicateContentCreatesNewRecord(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	body := `{"name":"Ada","email":"ada@example.com","message":"hi"}`
	first := postSubmission(r, body)
	second := postSubmission(r, body)
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Len(t, st.rows, 2, "no dedup key: each accepted call is a new record")
}

func TestCreate_ConcurrentSubmissionsGetDistinctIDs(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	const n = 20
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
			if rec.Code != http.StatusCreated {
				t.Errorf("unexpected status %d", rec.Code)
				return
			}
			var resp struct {
				ID uint64 `json:"id"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Errorf("decode: %v", err)
				return
			}
			ids <- resp.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Len(t, st.rows, n, "no lost writes")
}

func TestGet_FoundAndNotFound(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	rec := postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"hi"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	req := httptest.NewRequest("GET", "/v1/submissions/1", nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Contains(t, got.Body.String(), `"email":"ada@example.com"`)

	req = httptest.NewRequest("GET", "/v1/submissions/999", nil)
	got = httptest.NewRecorder()
	r.ServeHTTP(got, req)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestList_ReturnsSubmissions(t *testing.T) {
	st := newMemStore()
	r := New(st, nil)

	_ = postSubmission(r, `{"name":"Ada","email":"ada@example.com","message":"one"}`)
	_ = postSubmission(r, `{"name":"Bob","email":"bob@example.com","message":"two"}`)

	req := httptest.NewRequest("GET", "/v1/submissions?limit=10", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Submissions []types.Submission `json:"submissions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Submissions, 2)
}
