package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"phonebook/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := New(server.URL+"/", WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("localhost:3001")
	assert.Error(t, err)

	_, err = New("ftp://example.com")
	assert.Error(t, err)

	c, err := New("http://localhost:3001/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3001", c.BaseURL())
}

func TestFetchAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/persons", r.URL.Path)
		writeJSON(w, http.StatusOK, []models.Contact{
			{ID: "1", Name: "Ann", Number: "123"},
			{ID: "2", Name: "Bob", Number: "555"},
		})
	})

	contacts, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Bob", contacts[1].Name)
}

func TestFetchAll_NullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null"))
	})

	contacts, err := c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

func TestFetchAll_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "fetch", netErr.Op)
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestCreate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/persons", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, map[string]string{"name": "Bob", "number": "555"}, in, "the provisional id stays local")

		writeJSON(w, http.StatusCreated, models.Contact{ID: "42", Name: in["name"], Number: in["number"]})
	})

	created, err := c.Create(context.Background(), models.Contact{ID: "7", Name: "Bob", Number: "555"})
	require.NoError(t, err)
	assert.Equal(t, models.Contact{ID: "42", Name: "Bob", Number: "555"}, created)
}

func TestCreate_Validation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "number is required"})
	})

	_, err := c.Create(context.Background(), models.Contact{Name: "Bob"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "number is required", vErr.Message)
	assert.Equal(t, http.StatusBadRequest, vErr.Status)
	assert.Equal(t, KindValidation, Classify(err))
}

func TestCreate_ValidationWithoutBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := c.Create(context.Background(), models.Contact{Name: "Bob"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Conflict", vErr.Message)
}

func TestCreate_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.Create(context.Background(), models.Contact{Name: "Bob", Number: "1"})
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestCreate_BadJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{"))
	})

	_, err := c.Create(context.Background(), models.Contact{Name: "Bob", Number: "1"})
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestUpdate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/persons/1", r.URL.Path)

		var in models.Contact
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, models.Contact{ID: "1", Name: "Ann", Number: "999"}, in)
		writeJSON(w, http.StatusOK, in)
	})

	updated, err := c.Update(context.Background(), models.Contact{ID: "1", Name: "Ann", Number: "999"})
	require.NoError(t, err)
	assert.Equal(t, "999", updated.Number)
}

func TestUpdate_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown id"})
	})

	_, err := c.Update(context.Background(), models.Contact{ID: "1", Name: "Ann", Number: "999"})
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "1", nfErr.ID)
	assert.Equal(t, KindNotFound, Classify(err))
}

func TestDelete(t *testing.T) {
	var called bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/persons/a%2Fb", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Delete(context.Background(), "a/b"))
	assert.True(t, called)
}

func TestDelete_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(context.Background(), "1")
	assert.Equal(t, KindNotFound, Classify(err))
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	WithTimeout(20 * time.Millisecond)(c)

	_, err := c.FetchAll(context.Background())
	assert.Equal(t, KindNetwork, Classify(err))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindNetwork, Classify(assert.AnError))
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}
