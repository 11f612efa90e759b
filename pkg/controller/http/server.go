package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/metrics"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	ownerResolver usecase.OwnerResolver
	enableMetrics bool
}

type Options func(*Server)

// WithOwnerResolver overrides the resolver configured in the use cases
func WithOwnerResolver(resolver usecase.OwnerResolver) Options {
	return func(s *Server) {
		s.ownerResolver = resolver
	}
}

// WithMetrics exposes the Prometheus handler at /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()

	s := &Server{
		router:        r,
		uc:            uc,
		ownerResolver: uc.Auth,
		enableMetrics: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ownerResolver == nil {
		return nil, goerr.New("owner resolver is required")
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(requestMetrics)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)
	if s.enableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(ownerMiddleware(s.ownerResolver))

		r.Get("/dashboard", dashboardHandler(uc.Aggregate))
		r.Get("/report", reportHandler(uc.Report))

		r.Route("/business-processes", func(r chi.Router) {
			r.Get("/", listBusinessProcessesHandler(uc.BusinessProcess))
			r.Post("/", createBusinessProcessHandler(uc.BusinessProcess))
			r.Post("/import", importBusinessProcessesHandler(uc.BusinessProcess))
			r.Get("/{id}", getBusinessProcessHandler(uc.BusinessProcess))
			r.Put("/{id}", updateBusinessProcessHandler(uc.BusinessProcess))
			r.Delete("/{id}", deleteBusinessProcessHandler(uc.BusinessProcess))
			r.Post("/{id}/dependencies/{category}", appendDependencyHandler(uc.BusinessProcess))
			r.Put("/{id}/dependencies/{category}/{index}", replaceDependencyHandler(uc.BusinessProcess))
			r.Delete("/{id}/dependencies/{category}/{index}", removeDependencyHandler(uc.BusinessProcess))
		})

		r.Route("/impact-analyses", func(r chi.Router) {
			r.Get("/", listImpactAnalysesHandler(uc.Impact))
			r.Post("/", createImpactAnalysisHandler(uc.Impact))
			r.Get("/{id}", getImpactAnalysisHandler(uc.Impact))
			r.Put("/{id}", updateImpactAnalysisHandler(uc.Impact))
			r.Delete("/{id}", deleteImpactAnalysisHandler(uc.Impact))
		})

		r.Route("/rto-rpo-analyses", func(r chi.Router) {
			r.Get("/", listRTORPOHandler(uc.RTORPO))
			r.Post("/", saveRTORPOHandler(uc.RTORPO))
			r.Get("/{id}", getRTORPOHandler(uc.RTORPO))
			r.Put("/{id}", updateRTORPOHandler(uc.RTORPO))
			r.Delete("/{id}", deleteRTORPOHandler(uc.RTORPO))
		})

		r.Route("/recovery-workflows", func(r chi.Router) {
			r.Get("/", listRecoveryWorkflowsHandler(uc.Recovery))
			r.Post("/", saveRecoveryWorkflowHandler(uc.Recovery))
			r.Post("/generate", generateRecoveryWorkflowHandler(uc.Recovery))
			r.Get("/{id}", getRecoveryWorkflowHandler(uc.Recovery))
			r.Delete("/{id}", deleteRecoveryWorkflowHandler(uc.Recovery))
			r.Post("/{id}/steps", addRecoveryStepHandler(uc.Recovery))
			r.Put("/{id}/steps/{number}", updateRecoveryStepHandler(uc.Recovery))
			r.Delete("/{id}/steps/{number}", removeRecoveryStepHandler(uc.Recovery))
		})

		r.Route("/maturity-scorecard", func(r chi.Router) {
			r.Get("/", getMaturityHandler(uc.Maturity))
			r.Put("/", saveMaturityHandler(uc.Maturity))
			r.Delete("/", deleteMaturityHandler(uc.Maturity))
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// requestMetrics records request count and latency labeled by route pattern,
// so path parameters do not blow up label cardinality.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start).Seconds())
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
