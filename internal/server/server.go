// Package server exposes the aggregation engine to a local browser: JSON
// query endpoints mirroring the analytics API, plus an HTML digest page.
// Chart drawing stays with whatever front end consumes the JSON.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Yorkel/AM1-topic-modelling/internal/analytics"
	"github.com/Yorkel/AM1-topic-modelling/internal/corpus"
	"github.com/Yorkel/AM1-topic-modelling/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

// The digest uses pipe tables, which need the GFM table extension.
var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Server serves the analytics query API over the loaded corpus.
type Server struct {
	store  *corpus.Store
	params report.Params
	page   *template.Template
	mux    *http.ServeMux
}

// New creates a new Server over an immutable corpus store.
func New(store *corpus.Store, params report.Params) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}

	s := &Server{store: store, params: params, page: page, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleReport)
	s.mux.HandleFunc("/api/summary", s.handleSummary)
	s.mux.HandleFunc("/api/topics", s.handleTopics)
	s.mux.HandleFunc("/api/timeseries", s.handleTimeSeries)
	s.mux.HandleFunc("/api/heatmap", s.handleHeatmap)
	s.mux.HandleFunc("/api/rankshift", s.handleRankShift)
	s.mux.HandleFunc("/api/article", s.handleArticle)
	s.mux.HandleFunc("/api/filters", s.handleFilters)
}

// subset recomputes the filtered view for a request. Absent query params
// select the full domain; a present-but-empty param is an explicit empty
// selection and yields no records.
func (s *Server) subset(r *http.Request) []corpus.Record {
	q := r.URL.Query()
	sel := analytics.Selection{
		Sources: dimension(q, "orgs", s.store.Sources()),
		Topics:  dimension(q, "topics", s.store.Topics()),
		Periods: dimension(q, "periods", s.store.Periods()),
	}
	return analytics.Filter(s.store.Records(), sel)
}

func dimension(q map[string][]string, key string, domain []string) map[string]struct{} {
	values, ok := q[key]
	if !ok {
		values = domain
	} else {
		var split []string
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if part = strings.TrimSpace(part); part != "" {
					split = append(split, part)
				}
			}
		}
		values = split
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	digest := report.Compose(s.subset(r), s.params)

	var buf bytes.Buffer
	if err := md.Convert([]byte(digest), &buf); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, map[string]any{
		"Body": template.HTML(buf.String()), //nolint: gosec
	}); err != nil {
		log.Printf("Error rendering report: %v", err)
	}
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"orgs":    s.store.Sources(),
		"topics":  s.store.Topics(),
		"periods": s.store.Periods(),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, analytics.Summarize(s.subset(r)))
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	subset := s.subset(r)
	counts := analytics.TopicCounts(subset)

	k := s.params.TableTopics
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid k", http.StatusBadRequest)
			return
		}
		k = parsed
	}

	type row struct {
		Topic string `json:"topic"`
		Count int    `json:"count"`
	}
	rows := []row{}
	for _, topic := range analytics.TopK(counts, k) {
		rows = append(rows, row{Topic: topic, Count: counts[topic]})
	}
	writeJSON(w, rows)
}

func (s *Server) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	points := analytics.TimeSeries(s.subset(r), s.params.ChartTopics)
	if points == nil {
		points = []analytics.TimePoint{}
	}
	writeJSON(w, points)
}

func (s *Server) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	cells := analytics.Heatmap(s.subset(r))
	if cells == nil {
		cells = []analytics.HeatCell{}
	}
	writeJSON(w, cells)
}

func (s *Server) handleRankShift(w http.ResponseWriter, r *http.Request) {
	shift := analytics.ComputeRankShift(s.subset(r))
	if shift == nil {
		writeJSON(w, map[string]any{"insufficient_data": true})
		return
	}
	writeJSON(w, shift)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	topic := q.Get("topic")
	id := q.Get("id")
	if topic == "" || id == "" {
		http.Error(w, "topic and id are required", http.StatusBadRequest)
		return
	}

	text, err := analytics.ArticleText(s.subset(r), topic, id)
	if errors.Is(err, analytics.ErrNotFound) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "article not found"})
		return
	}
	writeJSON(w, map[string]string{"topic": topic, "id": id, "text": text})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// Serve starts the HTTP server on the given port.
func Serve(store *corpus.Store, params report.Params, port int) error {
	srv, err := New(store, params)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
