package server

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/solardome/stratum/internal/catalog"
	"github.com/solardome/stratum/internal/gauge"
	"github.com/solardome/stratum/internal/policy"
	"github.com/solardome/stratum/internal/report"
	"github.com/solardome/stratum/internal/scoring"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.pages.Index(s.store.Current()))
}

func (s *Server) handleTickets(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.pages.Tickets(s.store.Current(), r.URL.Query().Get("q")))
}

func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Current()
	t, ok := ds.Ticket(mux.Vars(r)["id"])
	if !ok {
		writeHTML(w, http.StatusNotFound, s.pages.NotFound(r.URL.Path))
		return
	}
	page, err := s.pages.TicketDetail(ds, t)
	if err != nil {
		s.logger.Error("render ticket failed", "ticket", t.ID, "request_id", RequestID(r.Context()), "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusOK, page)
}

func (s *Server) handleStandards(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.pages.Standards(s.store.Current(), r.URL.Query().Get("q")))
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, http.StatusOK, s.pages.Reports(s.store.Current()))
}

func (s *Server) handleGaugeSVG(w http.ResponseWriter, r *http.Request) {
	g, err := gaugeFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "bad_request", Message: err.Error()})
		return
	}
	s.metrics.observeGauge(g)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(gauge.SVG(g)))
}

func (s *Server) handleAPIGauge(w http.ResponseWriter, r *http.Request) {
	g, err := gaugeFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "bad_request", Message: err.Error()})
		return
	}
	s.metrics.observeGauge(g)
	writeJSON(w, http.StatusOK, g)
}

type summaryResponse struct {
	scoring.Summary
	LastScan     string                     `json:"last_scan,omitempty"`
	OpenTickets  int                        `json:"open_tickets"`
	Violations   []report.SnapshotViolation `json:"violations"`
	Source       string                     `json:"source"`
	SourceSHA256 string                     `json:"source_sha256"`
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Current()
	size := gauge.SizeLarge
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := gauge.ParseSize(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: "bad_request", Message: err.Error()})
			return
		}
		size = parsed
	}
	sum := scoring.Summarize(report.FleetOf(ds), size)
	s.metrics.observeGauge(sum.Gauge)
	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:      sum,
		LastScan:     ds.Fleet.LastScan,
		OpenTickets:  ds.OpenTickets(),
		Violations:   report.Violations(ds),
		Source:       ds.Source,
		SourceSHA256: ds.Digest,
	})
}

type instanceView struct {
	catalog.Instance
	Status string `json:"status"`
}

func (s *Server) handleAPIInstances(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Current()
	filter := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	switch filter {
	case "", policy.StatusCompliant, policy.StatusNonCompliant, policy.StatusPending:
	default:
		writeJSON(w, http.StatusBadRequest, apiError{Error: "bad_request", Message: fmt.Sprintf("unknown status filter %q", filter)})
		return
	}
	out := []instanceView{}
	for _, in := range ds.Instances {
		if filter != "" && in.Status != filter {
			continue
		}
		out = append(out, instanceView{Instance: in, Status: in.Status})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"instances": out, "count": len(out)})
}

func (s *Server) handleAPITickets(w http.ResponseWriter, r *http.Request) {
	tickets := s.store.Current().SearchTickets(r.URL.Query().Get("q"))
	if tickets == nil {
		tickets = []catalog.Ticket{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tickets": tickets, "count": len(tickets)})
}

func (s *Server) handleAPITicket(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	t, ok := s.store.Current().Ticket(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not_found", Message: fmt.Sprintf("ticket %s not found", id)})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAPIStandards(w http.ResponseWriter, r *http.Request) {
	standards := s.store.Current().SearchStandards(r.URL.Query().Get("q"))
	if standards == nil {
		standards = []catalog.Standard{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"standards": standards, "count": len(standards)})
}

func (s *Server) handleAPIReports(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Current()
	reports := ds.Reports
	if reports == nil {
		reports = []catalog.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports, "stats": ds.ReportStats})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ds := s.store.Current()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"source":  ds.Source,
		"sha256":  ds.Digest,
		"version": s.opts.Version,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not_found", Message: "no route for " + r.URL.Path})
		return
	}
	writeHTML(w, http.StatusNotFound, s.pages.NotFound(r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method_not_allowed", Message: r.Method + " not allowed on " + r.URL.Path})
}

// gaugeFromQuery reads score, progress and size. Values that do not parse or are not
// finite are rejected here because the JSON response cannot carry them.
func gaugeFromQuery(r *http.Request) (gauge.Gauge, error) {
	q := r.URL.Query()
	raw := q.Get("score")
	if raw == "" {
		return gauge.Gauge{}, fmt.Errorf("score is required")
	}
	score, err := parseFinite("score", raw)
	if err != nil {
		return gauge.Gauge{}, err
	}
	in := gauge.Input{Score: score}
	if raw := q.Get("progress"); raw != "" {
		p, err := parseFinite("progress", raw)
		if err != nil {
			return gauge.Gauge{}, err
		}
		in.VisualProgress = &p
	}
	in.Size, err = gauge.ParseSize(q.Get("size"))
	if err != nil {
		return gauge.Gauge{}, err
	}
	return gauge.Compute(in), nil
}

func parseFinite(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be finite", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, status int, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(page))
}
