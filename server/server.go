package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/josexy/hosts-whitelist/fetcher"
	"github.com/josexy/hosts-whitelist/filter"
	"github.com/josexy/hosts-whitelist/matcher"
	"github.com/josexy/hosts-whitelist/statistic"
	"github.com/josexy/hosts-whitelist/util/hostsutil"
	"github.com/josexy/hosts-whitelist/util/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodySize = 64 << 20

var errIndexNotReady = errors.New("index not loaded yet")

type Options struct {
	Addr        string
	MetricsPath string
	Workers     int
	// AlreadyFormatted skips IDNA formatting of submitted candidates.
	AlreadyFormatted bool
}

// Server exposes the held index over HTTP.
type Server struct {
	opts   Options
	holder *Holder
	srv    *http.Server
}

func New(opts Options, holder *Holder) *Server {
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	s := &Server{opts: opts, holder: holder}
	s.srv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP, middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/check", s.check)
	r.Post("/filter", s.filter)
	r.Get("/stats", s.stats)
	r.Handle(s.opts.MetricsPath, promhttp.Handler())
	return r
}

// Start serves until Close is called.
func (s *Server) Start() error {
	logger.Logger.Infof("listening on %s", s.opts.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Close(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	line := r.URL.Query().Get("line")
	if !s.opts.AlreadyFormatted {
		line = hostsutil.FormatLine(line)
	}
	v, cached, err := s.holder.Check(line)
	if errors.Is(err, errIndexNotReady) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		logger.Logger.ErrorBy(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !cached {
		statistic.DefaultManager.AddVerdict(v.By.String(), v.Whitelisted)
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) filter(w http.ResponseWriter, r *http.Request) {
	idx := s.holder.Get()
	if idx == nil {
		http.Error(w, errIndexNotReady.Error(), http.StatusServiceUnavailable)
		return
	}
	mode, err := filter.ParseSortMode(r.URL.Query().Get("sort"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	parallel, _ := strconv.ParseBool(r.URL.Query().Get("parallel"))

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	candidates, err := fetcher.SplitLines(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !s.opts.AlreadyFormatted {
		for i, line := range candidates {
			candidates[i] = hostsutil.FormatLine(line)
		}
	}

	survivors, err := filter.New(idx,
		filter.WithParallel(parallel),
		filter.WithWorkers(s.opts.Workers),
		filter.WithSort(mode),
	).Filter(candidates)
	if err != nil {
		logger.Logger.ErrorBy(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if len(survivors) > 0 {
		io.WriteString(w, strings.Join(survivors, "\n")+"\n")
	}
}

type statsResponse struct {
	LoadedAt time.Time           `json:"loaded_at"`
	Index    matcher.Stats       `json:"index"`
	Filter   *statistic.Snapshot `json:"filter"`
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		LoadedAt: s.holder.LoadedAt(),
		Index:    s.holder.Get().Stats(),
		Filter:   statistic.DefaultManager.Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Logger.ErrorBy(err)
	}
}
