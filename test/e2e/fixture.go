package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/hollowaydev/spyglass/internal/history"
)

// stubBackend serves a deterministic slice of the inventory search API.
// Queries containing "widget" get hits in every group; everything else is
// an empty result set.
func stubBackend() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query().Get("q")

		results := map[string][]map[string]string{}
		if q == "widget" || q == "wid" || q == "wi" {
			results["catalog"] = []map[string]string{
				{"url": "https://inv.example/catalog/7", "title": "Blue Widget", "subtitle": "SKU 7"},
			}
			results["sales"] = []map[string]string{
				{"url": "https://inv.example/sales/3", "title": "SO-3", "subtitle": "Acme • open"},
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"q": q, "results": results})
	}))
}

// seedHistory pre-populates the history database so the recent panel has
// something to show at startup.
func seedHistory(homeDir string) error {
	dataDir := filepath.Join(homeDir, ".spyglass")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	st, err := history.NewStore(filepath.Join(dataDir, "spyglass.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	return st.RecordQuery("hex bolt")
}
