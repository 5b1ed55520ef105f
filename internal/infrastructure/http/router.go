package httpserver

import (
	"net/http"
	"time"

	"stockquotes-service/internal/infrastructure/http/openapi"
	"stockquotes-service/internal/infrastructure/logx"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type routerOptions struct {
	corsOrigins []string
	metrics     http.Handler
}

type RouterOption func(*routerOptions)

// WithCORS allows browser callers from origins.
func WithCORS(origins []string) RouterOption {
	return func(o *routerOptions) { o.corsOrigins = origins }
}

// WithMetricsHandler serves h on /metrics.
func WithMetricsHandler(h http.Handler) RouterOption {
	return func(o *routerOptions) { o.metrics = h }
}

func NewRouter(s *Server, opts ...RouterOption) http.Handler {
	var o routerOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := chi.NewRouter()

	r.Use(requestID())
	r.Use(traceID())
	r.Use(recoverer())
	r.Use(accessLog())
	if len(o.corsOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: o.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id"},
		}).Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.ping != nil {
			if err := s.ping(r.Context()); err != nil {
				logx.WithFields(r.Context()).Warn("readyz.failed", zap.Error(err))
				writeError(w, http.StatusServiceUnavailable, "provider not configured")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	if o.metrics != nil {
		r.Method(http.MethodGet, "/metrics", o.metrics)
	}

	openapi.HandlerWithOptions(s, openapi.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: bindError,
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(openapi.Spec)
	})

	r.Get("/swagger", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(swaggerHTML))
	})
	return r
}

func requestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)
			next.ServeHTTP(w, r.WithContext(logx.ContextWithRequestID(r.Context(), rid)))
		})
	}
}

func traceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := r.Header.Get("X-Trace-Id")
			if tid == "" {
				tid = uuid.NewString()
			}
			w.Header().Set("X-Trace-Id", tid)
			next.ServeHTTP(w, r.WithContext(logx.ContextWithTraceID(r.Context(), tid)))
		})
	}
}

func recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logx.WithFields(r.Context()).Error("panic recovered", zap.Any("error", rec))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func accessLog() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(sr, r)
			logx.WithFields(r.Context()).Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sr.status),
				zap.Int("bytes", sr.bytes),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

const swaggerHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <title>stockquotes-service API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      SwaggerUIBundle({
        url: "/openapi.yaml",
        dom_id: "#swagger-ui",
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout",
      });
    };
  </script>
</body>
</html>`
