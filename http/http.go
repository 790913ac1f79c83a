package http

import (
	"net/http"
	"time"

	"github.com/corpix/railfence/errors"
	"github.com/corpix/railfence/log"
)

type (
	Option         func(*Http)
	Handler        = http.Handler
	HandlerFunc    = http.HandlerFunc
	Middleware     = func(Handler) Handler
	Request        = http.Request
	ResponseWriter = http.ResponseWriter
	Response       = http.Response
	Server         = http.Server
	ContextKey     uint8

	Config struct {
		Address string         `yaml:"address,omitempty"`
		Prefix  string         `yaml:"prefix,omitempty"`
		Metrics *MetricsConfig `yaml:"metrics,omitempty"`
		Trace   *TraceConfig   `yaml:"trace,omitempty"`
	}
	Http struct {
		Config  *Config
		Address string
		Router  *Router
		Handler Handler
	}
)

const (
	MethodGet     = http.MethodGet
	MethodHead    = http.MethodHead
	MethodPost    = http.MethodPost
	MethodPut     = http.MethodPut
	MethodPatch   = http.MethodPatch
	MethodDelete  = http.MethodDelete
	MethodOptions = http.MethodOptions

	StatusOK                    = http.StatusOK
	StatusBadRequest            = http.StatusBadRequest
	StatusNotFound              = http.StatusNotFound
	StatusMethodNotAllowed      = http.StatusMethodNotAllowed
	StatusRequestEntityTooLarge = http.StatusRequestEntityTooLarge
	StatusUnsupportedMediaType  = http.StatusUnsupportedMediaType
	StatusInternalServerError   = http.StatusInternalServerError

	HeaderRequestId     = "x-request-id"
	HeaderAuthorization = "authorization"
	HeaderContentType   = "content-type"

	AuthTokenTypeBearer = "bearer"

	DefaultAddress           = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
)

var (
	MaxBytesReader = http.MaxBytesReader
	StatusText     = http.StatusText
)

func (c *Config) Default() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	if c.Trace == nil {
		c.Trace = &TraceConfig{}
	}

	//

	c.Metrics.Default()
	c.Trace.Default()
	if c.Metrics.Enable {
		c.Trace.SkipPaths[c.Prefix+c.Metrics.Path] = struct{}{}
	}
}

func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("address should not be empty")
	}
	return nil
}

//

func WithAddress(addr string) Option {
	return func(h *Http) { h.Address = addr }
}

func WithRouter(r *Router) Option {
	return func(h *Http) { h.Router = r }
}

func WithHandler(handler Handler) Option {
	return func(h *Http) { h.Handler = handler }
}

func WithMiddleware(middlewares ...Middleware) Option {
	return func(h *Http) { h.Handler = Compose(h.Handler, middlewares...) }
}

// Compose wraps h into middlewares, the first one is the outermost.
func Compose(h Handler, middlewares ...Middleware) Handler {
	for n := len(middlewares) - 1; n >= 0; n-- {
		h = middlewares[n](h)
	}
	return h
}

func (h *Http) ListenAndServe() error {
	if h.Address == "" {
		return errors.New("no address was defined for http server to listen on (use WithAddress Option)")
	}
	if h.Handler == nil {
		return errors.New("no handler assigned to the server (use WithRouter or WithHandler Option)")
	}

	srv := &Server{
		Addr:              h.Address,
		Handler:           h.Handler,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ErrorLog:          log.Std(log.Default),
	}

	log.Info().Str("address", h.Address).Msg("starting http server")
	return srv.ListenAndServe()
}

func New(c *Config, options ...Option) *Http {
	h := &Http{
		Config:  c,
		Address: c.Address,
	}
	for _, option := range options {
		option(h)
	}
	if h.Handler == nil && h.Router != nil {
		h.Handler = h.Router
	}

	return h
}
