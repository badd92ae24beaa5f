// Package web serves the studio page and the rating dialog as plain HTML
// forms, so the widget works without client-side scripting.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/studiorate/pkg/application"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
	"github.com/felixgeelhaar/studiorate/pkg/domain/social"
)

//go:embed templates/*
var templatesFS embed.FS

// Builder turns a configuration into services. Reload uses it.
type Builder func(cfg *config.WidgetConfig, logger *zap.Logger) (*wiring.AppServices, error)

// Server is the widget's HTTP front end.
type Server struct {
	addr     string
	logger   *zap.Logger
	tmpl     *template.Template
	build    Builder
	services atomic.Pointer[wiring.AppServices]
	server   *http.Server
}

// NewServer creates a server for services listening on addr.
func NewServer(addr string, services *wiring.AppServices) (*Server, error) {
	if services == nil {
		return nil, errors.New("web server requires services")
	}
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	logger := services.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		addr:   addr,
		logger: logger,
		tmpl:   tmpl,
		build:  wiring.BuildAppServices,
	}
	s.services.Store(services)
	return s, nil
}

// WithBuilder replaces the service builder used by Reload.
func (s *Server) WithBuilder(b Builder) *Server {
	s.build = b
	return s
}

// Reload swaps in services built from cfg. Requests already running keep
// the services they started with.
func (s *Server) Reload(cfg *config.WidgetConfig) error {
	svc, err := s.build(cfg, s.logger)
	if err != nil {
		s.logger.Warn("config reload failed", zap.Error(err))
		return err
	}
	s.services.Store(svc)
	s.logger.Info("services reloaded", zap.String("studio", cfg.StudioName))
	return nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /rate", s.handleRateForm)
	mux.HandleFunc("POST /rate", s.handleRate)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// Start listens until Shutdown. There is no write timeout: a submission
// runs until the form endpoint answers.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
	}
	s.logger.Info("web server starting", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// PageData holds data for template rendering.
type PageData struct {
	Lang       string
	Dir        string
	StudioName string
	Copy       config.CopyConfig
	Social     []SocialLink
	Average    string
	Dialog     *DialogView
}

// SocialLink adds the fixed link attributes to a button.
type SocialLink struct {
	social.Button
}

func (SocialLink) Target() string { return social.Target }
func (SocialLink) Rel() string    { return social.Rel }

// DialogView is the dialog as the template sees it.
type DialogView struct {
	Questions []QuestionView
	Notice    string
}

type QuestionView struct {
	ID     string
	Prompt string
	Value  int
	Stars  []StarView
}

type StarView struct {
	Value  int
	Filled bool
	// Name is the submit value, "q3=4" for the fourth star of question 3.
	Name string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	svc := s.services.Load()
	data := s.pageData(svc.Config)
	data.Average = parseAverage(r.URL.Query().Get("average"))
	s.render(w, http.StatusOK, data)
}

func (s *Server) handleRateForm(w http.ResponseWriter, r *http.Request) {
	svc := s.services.Load()
	data := s.pageData(svc.Config)
	data.Dialog = dialogView(svc.Config, rating.NewRatingSet(), "")
	s.render(w, http.StatusOK, data)
}

// handleRate mounts a fresh dialog per request, replays the scores carried
// in the form and applies the one action that was pressed.
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	svc := s.services.Load()

	var notice string
	var average *rating.Average
	handle := application.NewDialogHandle()
	handle.Open()
	dialog, err := svc.NewDialog(handle,
		application.WithNotifier(rating.NotifierFunc(func(n rating.Notice) { notice = n.Message })),
		application.WithOnComplete(func(avg rating.Average) { average = &avg }),
	)
	if err != nil {
		s.logger.Error("mount rating dialog", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer dialog.Detach()

	for _, id := range rating.QuestionIDs {
		raw := r.PostForm.Get(string(id))
		if raw == "" {
			continue
		}
		score, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid rating", http.StatusBadRequest)
			return
		}
		if err := dialog.Rate(id, score); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	status := http.StatusOK
	switch {
	case r.PostForm.Get("action") == "close":
		if err := dialog.Close(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return

	case r.PostForm.Get("action") == "submit":
		// A browser disconnect must not abort a pending submission.
		err := dialog.Submit(context.WithoutCancel(r.Context()))
		switch {
		case err == nil && average != nil:
			http.Redirect(w, r, "/?average="+average.String(), http.StatusSeeOther)
			return
		case errors.Is(err, rating.ErrIncomplete):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, rating.ErrSubmissionFailed):
			status = http.StatusBadGateway
		case err != nil:
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

	case r.PostForm.Has("star"):
		id, k, ok := parseStar(r.PostForm.Get("star"))
		if !ok {
			http.Error(w, "invalid star", http.StatusBadRequest)
			return
		}
		dialog.Star(id).Click(k)

	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	data := s.pageData(svc.Config)
	data.Dialog = dialogView(svc.Config, dialog.Ratings(), notice)
	s.render(w, status, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	svc := s.services.Load()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"studio": svc.Config.StudioName,
	})
}

func (s *Server) render(w http.ResponseWriter, status int, data PageData) {
	var buf strings.Builder
	if err := s.tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		s.logger.Error("template error", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) pageData(cfg *config.WidgetConfig) PageData {
	links := make([]SocialLink, 0, len(cfg.Social))
	for _, b := range cfg.Social {
		links = append(links, SocialLink{Button: b})
	}
	lang, dir := language(cfg.Locale)
	return PageData{
		Lang:       lang,
		Dir:        dir,
		StudioName: cfg.StudioName,
		Copy:       cfg.Copy,
		Social:     links,
	}
}

func dialogView(cfg *config.WidgetConfig, ratings rating.RatingSet, notice string) *DialogView {
	questions := cfg.QuestionList()
	view := &DialogView{Questions: make([]QuestionView, 0, len(questions)), Notice: notice}
	for _, q := range questions {
		value := ratings.Get(q.ID)
		input := rating.StarRating{Value: value}
		stars := make([]StarView, 0, rating.MaxScore)
		for _, st := range input.Stars() {
			stars = append(stars, StarView{
				Value:  st.Value,
				Filled: st.Filled,
				Name:   fmt.Sprintf("%s=%d", q.ID, st.Value),
			})
		}
		view.Questions = append(view.Questions, QuestionView{
			ID:     string(q.ID),
			Prompt: q.Prompt,
			Value:  value,
			Stars:  stars,
		})
	}
	return view
}

func parseStar(raw string) (rating.QuestionID, int, bool) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return "", 0, false
	}
	id := rating.QuestionID(name)
	k, err := strconv.Atoi(value)
	if err != nil || !id.Valid() {
		return "", 0, false
	}
	return id, k, true
}

// parseAverage accepts only averages a submission could have produced.
func parseAverage(raw string) string {
	if raw == "" {
		return ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < rating.MinScore || v > rating.MaxScore {
		return ""
	}
	return rating.Average(v).String()
}

var rtlLanguages = map[string]bool{"he": true, "ar": true, "fa": true, "ur": true}

func language(locale string) (lang, dir string) {
	lang = strings.ToLower(locale)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if lang == "" {
		lang = "he"
	}
	if rtlLanguages[lang] {
		return lang, "rtl"
	}
	return lang, "ltr"
}
