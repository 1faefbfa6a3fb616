package commentary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGenerator_Remark(t *testing.T) {
	t.Run("Returns the generated text on success", func(t *testing.T) {
		// Given: a generator endpoint echoing the outcome
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req request
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "circle won", req.Outcome)

			_ = json.NewEncoder(w).Encode(response{Text: "What a finish for circle!"})
		}))
		defer server.Close()

		gen := NewHTTP(server.URL)

		// When: asking for a remark
		text := gen.Remark(context.Background(), "circle won")

		// Then: the generated text comes back
		assert.Equal(t, "What a finish for circle!", text)
	})

	t.Run("Falls back on a non-200 response", func(t *testing.T) {
		// Given: a broken generator endpoint
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		gen := NewHTTP(server.URL)

		// When/Then: the static fallback is returned
		assert.Equal(t, FallbackText, gen.Remark(context.Background(), "draw"))
	})

	t.Run("Falls back when the endpoint is unreachable", func(t *testing.T) {
		// Given: a generator pointing at a closed port
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		gen := NewHTTP(server.URL)

		assert.Equal(t, FallbackText, gen.Remark(context.Background(), "draw"))
	})

	t.Run("Falls back on an empty generated text", func(t *testing.T) {
		// Given: a generator that answers with nothing useful
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(response{})
		}))
		defer server.Close()

		gen := NewHTTP(server.URL)

		assert.Equal(t, FallbackText, gen.Remark(context.Background(), "cross won"))
	})
}

func TestStaticGenerator_Remark(t *testing.T) {
	gen := NewStatic()

	assert.Equal(t, FallbackText, gen.Remark(context.Background(), "anything"))
}
