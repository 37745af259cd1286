package reportserver

import (
	"database/sql"
	"io"
	"net/http"

	"mmc/internal/report"
)

// NewHandler builds the HTTP handler serving the rendered report and the
// raw DuckDB file for offline inspection.
func NewHandler(db *sql.DB, dbPath string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", serveReportPage(db))
	if dbPath != "" {
		mux.Handle("/data/stats.duckdb", serveDatabase(dbPath))
	}
	return mux
}

// serveReportPage renders the progress report from live query results.
func serveReportPage(db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data, err := report.Collect(r.Context(), db)
		if err != nil {
			http.Error(w, "report query failed", http.StatusInternalServerError)
			return
		}
		html, err := report.RenderHTML(r.Context(), data)
		if err != nil {
			http.Error(w, "report render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, html)
	})
}

// serveDatabase serves the DuckDB file from disk.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
