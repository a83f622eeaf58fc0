package server

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"runtime"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/tylerb/graceful"

	"github.com/t-dias/libreoffice-online-repo/config"
	"github.com/t-dias/libreoffice-online-repo/helpers"
	"github.com/t-dias/libreoffice-online-repo/keys"
	"github.com/t-dias/libreoffice-online-repo/services"
	"github.com/t-dias/libreoffice-online-repo/services/authentication"
	"github.com/t-dias/libreoffice-online-repo/services/wopi"
)

var httpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests served, partitioned by endpoint, method and status code.",
	},
	[]string{"handler", "code", "method"},
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
}

// Server is the HTTP server exposing the enabled services.
type Server struct {
	srv  *graceful.Server
	conf *config.Config
	log  *logrus.Entry
}

// New returns a new Server with its router already configured.
func New(conf *config.Config) (*Server, error) {
	dirs := conf.GetDirectives()
	s := &Server{
		conf: conf,
		log:  helpers.GetAppLogger(conf).WithField("module", "server"),
		srv: &graceful.Server{
			NoSignalHandling: true,
			Timeout:          time.Duration(dirs.Server.ShutdownTimeout) * time.Second,
			Server: &http.Server{
				Addr: fmt.Sprintf(":%d", dirs.Server.Port),
			},
		},
	}

	handler, err := s.configureRouter()
	if err != nil {
		return nil, err
	}
	s.srv.Server.Handler = handler
	return s, nil
}

// Start listens on the configured port until Stop is called.
func (s *Server) Start() error {
	dirs := s.conf.GetDirectives()
	if dirs.Server.TLSEnabled {
		return s.srv.ListenAndServeTLS(dirs.Server.TLSCertificate, dirs.Server.TLSPrivateKey)
	}
	return s.srv.ListenAndServe()
}

// StopChan returns a channel closed when the server has drained its
// connections.
func (s *Server) StopChan() <-chan struct{} {
	return s.srv.StopChan()
}

// Stop starts a graceful shutdown.
func (s *Server) Stop() {
	dirs := s.conf.GetDirectives()
	s.srv.Stop(time.Duration(dirs.Server.ShutdownTimeout) * time.Second)
	s.log.Info("stop called")
}

func (s *Server) configureRouter() (http.Handler, error) {
	dirs := s.conf.GetDirectives()

	enabledServices, err := s.getEnabledServices()
	if err != nil {
		return nil, err
	}
	s.log.WithField("services", dirs.Server.EnabledServices).Info("services enabled")

	var corsMiddleware *cors.Cors
	if dirs.Server.CORSEnabled {
		corsMiddleware = cors.New(cors.Options{
			AllowedOrigins: dirs.Server.CORSAccessControlAllowOrigin,
			AllowedMethods: dirs.Server.CORSAccessControlAllowMethods,
			AllowedHeaders: dirs.Server.CORSAccessControlAllowHeaders,
		})
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.log.WithField("method", "GET").WithField("endpoint", "/metrics").Info("endpoint available - created by prometheus")

	for _, svc := range enabledServices {
		for endpoint, methods := range svc.Endpoints() {
			for method, handlerFunc := range methods {
				fullEndpoint := path.Join(dirs.Server.BaseURL, svc.BaseURL(), endpoint)
				handler := s.instrument(fullEndpoint, s.loggerHandlerFunc(handlerFunc))
				if corsMiddleware != nil {
					handler = corsMiddleware.Handler(handler)
					router.Handle(fullEndpoint, handler).Methods("OPTIONS")
					s.log.WithField("method", "OPTIONS").WithField("endpoint", fullEndpoint).Info("endpoint available - created by cors")
				}
				router.Handle(fullEndpoint, handler).Methods(method)
				s.log.WithField("method", method).WithField("endpoint", fullEndpoint).Info("endpoint available")
			}
		}
	}

	accessLog := helpers.GetHTTPAccessLogger(s.conf).WithField("module", "http")
	return handlers.CombinedLoggingHandler(accessLog.Writer(), s.panicHandler(router)), nil
}

func (s *Server) getEnabledServices() ([]services.Service, error) {
	dirs := s.conf.GetDirectives()
	enabled := []services.Service{}
	for _, name := range dirs.Server.EnabledServices {
		switch name {
		case authentication.ServiceName:
			svc, err := authentication.New(s.conf)
			if err != nil {
				return nil, err
			}
			enabled = append(enabled, svc)
		case wopi.ServiceName:
			svc, err := wopi.New(s.conf)
			if err != nil {
				return nil, err
			}
			enabled = append(enabled, svc)
		default:
			return nil, errors.New("service " + name + " does not exist")
		}
	}
	return enabled, nil
}

// loggerHandlerFunc puts a per-request log with a fresh trace id on the
// request context before the handler runs.
func (s *Server) loggerHandlerFunc(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewV4().String()
		log := helpers.GetAppLogger(s.conf).WithField("trace", traceID)
		log.WithField("method", r.Method).WithField("url", helpers.SanitizeURL(r.URL)).Info("request started")
		ctx := keys.SetLog(r.Context(), log)
		ctx = keys.SetTraceID(ctx, traceID)
		handler(w, r.WithContext(ctx))
		log.Info("request finished")
	})
}

func (s *Server) instrument(endpoint string, handler http.Handler) http.Handler {
	counter := httpRequestsTotal.MustCurryWith(prometheus.Labels{"handler": endpoint})
	return promhttp.InstrumentHandlerCounter(counter, handler)
}

// panicHandler converts panics from handlers into plain 500 responses.
func (s *Server) panicHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				trace := make([]byte, 2048)
				count := runtime.Stack(trace, true)
				s.log.WithField("panic", rec).WithField("stack", string(trace[:count])).Error("recovered from panic")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		handler.ServeHTTP(w, r)
	})
}
