package http

import "net/http"

// Static page shells. The real UI assets live with the frontend; these
// keep the page routes alive for smoke tests.
const (
	indexHTML   = `<!DOCTYPE html><html><head><title>Quiz Rooms</title></head><body><h1>Quiz Rooms</h1><p>Create or join a room to play.</p></body></html>`
	quizHTML    = `<!DOCTYPE html><html><head><title>Quiz</title></head><body><h1>Quiz</h1></body></html>`
	resultsHTML = `<!DOCTYPE html><html><head><title>Results</title></head><body><h1>Results</h1></body></html>`
)

// RegisterPages mounts the static page routes and the health check.
func RegisterPages(mux *http.ServeMux) {
	page := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/", page(indexHTML))
	mux.HandleFunc("/quiz", page(quizHTML))
	mux.HandleFunc("/results", page(resultsHTML))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}
