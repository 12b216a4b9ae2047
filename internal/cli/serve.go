package cli

// This file implements the "serve" command: a read-only HTTP view of the
// error code registry with problem details responses and Prometheus
// metrics.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"errkit/internal/kit"
	"errkit/pkg/errx"
	"errkit/pkg/observers"
	"errkit/pkg/problem"
	"errkit/pkg/result"
)

const shutdownTimeout = 5 * time.Second

// Server serves the registry over HTTP. Failures are reported through the
// kit reporter with the request context before being written as problem
// details.
type Server struct {
	kit      *kit.Kit
	gatherer prometheus.Gatherer
	tracer   trace.Tracer
	reqLog   zerolog.Logger
	logger   *zap.Logger
}

// ServerOption configures NewServer.
type ServerOption func(*Server)

func WithTracer(tracer trace.Tracer) ServerOption {
	return func(s *Server) { s.tracer = tracer }
}

// WithRequestLogger sets the logger attached to every request context.
func WithRequestLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) { s.reqLog = logger }
}

func WithServerLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer registers the tracing and request-log observers on the kit hub.
func NewServer(k *kit.Kit, gatherer prometheus.Gatherer, opts ...ServerOption) (*Server, error) {
	if k == nil {
		return nil, errx.NewArgumentError("NewServer", "kit", "must not be nil")
	}
	s := &Server{
		kit:      k,
		gatherer: gatherer,
		tracer:   otel.Tracer("errkit/serve"),
		reqLog:   zerolog.Nop(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}

	if err := k.Hub.RegisterAsyncObserver(observers.NewTrace(errx.SeverityError)); err != nil {
		return nil, err
	}
	if err := k.Hub.RegisterAsyncObserver(observers.NewZerolog(s.reqLog)); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes:
//
//	GET /codes          registered codes as JSON
//	GET /codes/{value}  problem details preview for one code
//	GET /metrics        Prometheus metrics
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.traceRequests, s.logRequests, s.recoverPanics)

	r.HandleFunc("/codes", s.listCodes).Methods(http.MethodGet)
	r.HandleFunc("/codes/{value}", s.showCode).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	// mux skips Use middleware for unmatched routes
	r.NotFoundHandler = s.traceRequests(s.logRequests(s.recoverPanics(http.HandlerFunc(s.notFound))))

	return r
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type codeView struct {
	Value         string        `json:"value"`
	Description   string        `json:"description"`
	Severity      errx.Severity `json:"severity"`
	Category      string        `json:"category,omitempty"`
	Documentation string        `json:"documentation,omitempty"`
}

func (s *Server) listCodes(w http.ResponseWriter, r *http.Request) {
	codes := s.kit.Registry.Codes()
	views := make([]codeView, 0, len(codes))
	for _, c := range codes {
		views = append(views, codeView{
			Value:         c.Value(),
			Description:   c.Description(),
			Severity:      c.Severity(),
			Category:      c.Category(),
			Documentation: c.DocumentationLink(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		s.logger.Warn("failed to write code list", zap.Error(err))
	}
}

func (s *Server) showCode(w http.ResponseWriter, r *http.Request) {
	res := result.CatchOf(s.kit.Bridge, func() (*problem.Details, error) {
		return s.preview(r)
	})
	d, ok := res.TryGetValue()
	if !ok {
		s.writeError(w, r, res.Err())
		return
	}
	body, err := problem.Marshal(d)
	if err != nil {
		s.writeError(w, r, s.kit.Bridge.FromPanic(err))
		return
	}
	w.Header().Set("Content-Type", problem.ContentType)
	_, _ = w.Write(body)
}

func (s *Server) preview(r *http.Request) (*problem.Details, error) {
	value := mux.Vars(r)["value"]
	code, ok, err := s.kit.Registry.TryGet(value)
	if err != nil {
		return nil, s.requestError(CodeInvalidArgument, "invalid error code", value)
	}
	if !ok {
		return nil, s.requestError(CodeUnknownCode, fmt.Sprintf("error code %q is not registered", value), value)
	}
	e, err := s.kit.Factory.Create(code)
	if err != nil {
		return nil, err
	}
	return problem.FromError(e, problem.WithInstance(r.URL.Path))
}

func (s *Server) requestError(code *errx.Code, msg, value string) error {
	opts := []errx.Option{errx.WithMessage(msg)}
	if strings.TrimSpace(value) != "" {
		opts = append(opts, errx.WithEntries(kv("code", value)))
	}
	e, err := s.kit.Factory.Create(code, opts...)
	if err != nil {
		return err
	}
	return e
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	e, err := s.kit.Factory.Create(CodeInvalidArgument,
		errx.WithMessage(fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.writeErrorStatus(w, r, e, http.StatusNotFound)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, e *errx.Error) {
	s.writeErrorStatus(w, r, e, statusFor(e))
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, e *errx.Error, status int) {
	if err := s.kit.Reporter.ReportAsync(r.Context(), e); err != nil {
		s.logger.Warn("error observer failed", zap.String("error.code", e.Code().Value()), zap.Error(err))
	}
	d, err := problem.FromError(e, problem.WithStatus(status), problem.WithInstance(r.URL.Path))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := problem.Write(w, d); err != nil {
		s.logger.Warn("failed to write problem details", zap.Error(err))
	}
}

func statusFor(e *errx.Error) int {
	switch {
	case errx.HasCode(e, CodeUnknownCode):
		return http.StatusNotFound
	case errx.HasCode(e, CodeInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				name = tmpl
			}
		}
		ctx, span := s.tracer.Start(r.Context(), r.Method+" "+name)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(s.reqLog.WithContext(r.Context())))
		s.reqLog.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.writeError(w, r, s.kit.Bridge.FromPanic(v))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// NewServeCmd builds the serve subcommand.
func NewServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the error code registry over HTTP",
		Long:  "Serve registered codes, problem details previews and metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.Kit()
			if err != nil {
				return err
			}

			tp := sdktrace.NewTracerProvider()
			defer func() {
				_ = tp.Shutdown(context.Background())
			}()

			level, err := zerolog.ParseLevel(app.cfg.Log.Level)
			if err != nil || IsDebugMode() {
				level = zerolog.DebugLevel
			}
			reqLog := zerolog.New(cmd.ErrOrStderr()).Level(level).With().Timestamp().Str("component", "serve").Logger()

			srv, err := NewServer(k, app.Metrics(),
				WithTracer(tp.Tracer("errkit/serve")),
				WithRequestLogger(reqLog),
				WithServerLogger(app.logger))
			if err != nil {
				return app.fail(CodeServeFailed, err, "failed to create server")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			listen := app.cfg.Server.Addr
			app.printer(cmd).Info(fmt.Sprintf("Serving error codes on http://%s", listen))
			if err := srv.Run(ctx, listen); err != nil {
				return app.fail(CodeServeFailed, err, "http server failed", kv("addr", listen))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}
