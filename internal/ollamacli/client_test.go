package ollamacli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAppliesLatestTag(t *testing.T) {
	t.Parallel()

	require.Equal(t, "phi3:mini", normalize("phi3:mini"))
	require.Equal(t, "goekdenizguelmez/JOSIEFIED-Qwen3:latest", normalize("goekdenizguelmez/JOSIEFIED-Qwen3"))
}

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &Client{api: api.NewClient(u, srv.Client())}
}

func TestMissingComparesTagInsensitively(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{"name": "phi3:mini"},
				{"name": "goekdenizguelmez/JOSIEFIED-Qwen3:latest"},
			},
		})
	}))

	missing, err := client.Missing(context.Background(), []string{
		"phi3:mini",
		"goekdenizguelmez/JOSIEFIED-Qwen3",
		"qwen3:8b",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"qwen3:8b"}, missing)
}

func TestListSurfacesServerErrors(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))

	_, err := client.List(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "ollama list")
}

func TestHasReflectsShowOutcome(t *testing.T) {
	t.Parallel()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/show", r.URL.Path)

		var req api.ShowRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Model == "phi3-mini-json:latest" {
			json.NewEncoder(w).Encode(map[string]any{"modelfile": "FROM phi3:mini"})
			return
		}
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))

	ctx := context.Background()
	require.True(t, client.Has(ctx, "phi3-mini-json:latest"))
	require.False(t, client.Has(ctx, "phi3-mini-agent:latest"))
}
