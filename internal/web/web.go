// Package web serves the voter search over a small JSON HTTP API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/votersearch/internal/logger"
	"github.com/bastiangx/votersearch/pkg/search"
	"github.com/bastiangx/votersearch/pkg/server"
	"github.com/bastiangx/votersearch/pkg/service"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Header constants
const (
	CacheControlHeaderKey     = "Cache-Control"
	CacheControlHeaderNoCache = "no-cache"

	ContentTypeHeaderKey = "Content-Type"
	ContentTypeJson      = "application/json"

	RequestIDHeaderKey = "X-Request-ID"
)

const HttpReadTimeout = 5 * time.Second
const HttpWriteTimeout = 21 * time.Second
const HttpMaxHeaderBytes = 60000
const HttpTimeoutDuration = 20 * time.Second

const defaultCompleteLimit = 10

var webLog = logger.New("web")

type WebFnType = func(http.ResponseWriter, *http.Request)

type WebFnOpts struct {
	AllowCaching bool
}

// Options configure the HTTP front-end.
type Options struct {
	EnableCORS bool
}

// WriteJsonError writes the error envelope with the given status code.
func WriteJsonError(w http.ResponseWriter, status int, errVal error) {
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(status)
	barr, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   errVal.Error(),
	})
	w.Write(barr)
}

// WriteJsonSuccess writes the success envelope around data.
func WriteJsonSuccess(w http.ResponseWriter, data any) {
	rtnMap := map[string]any{"success": true}
	if data != nil {
		rtnMap["data"] = data
	}
	barr, err := json.Marshal(rtnMap)
	if err != nil {
		WriteJsonError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set(ContentTypeHeaderKey, ContentTypeJson)
	w.WriteHeader(http.StatusOK)
	w.Write(barr)
}

func WebFnWrap(opts WebFnOpts, fn WebFnType) WebFnType {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				webLog.Errorf("panic in handler %s: %v", r.URL.Path, rec)
				WriteJsonError(w, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			}
		}()
		if !opts.AllowCaching {
			w.Header().Set(CacheControlHeaderKey, CacheControlHeaderNoCache)
		}
		reqID := r.Header.Get(RequestIDHeaderKey)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeaderKey, reqID)
		fn(w, r)
	}
}

type api struct {
	svc *service.Service
}

// SearchResult is the payload of /api/search.
type SearchResult struct {
	Query   string `json:"query"`
	Mode    string `json:"mode"`
	Count   int    `json:"count"`
	Message string `json:"message"`
	Voters  any    `json:"voters"`
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJsonSuccess(w, map[string]any{
		"status": "ok",
		"time":   time.Now().UnixMilli(),
	})
}

func (a *api) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")
	mode := search.ParseMode(q.Get("mode"))

	voters, err := a.svc.Search(query, mode)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJsonSuccess(w, SearchResult{
		Query:   query,
		Mode:    mode.String(),
		Count:   len(voters),
		Message: service.Summary(query, len(voters)),
		Voters:  voters,
	})
}

func (a *api) handleComplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := defaultCompleteLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteJsonError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	suggestions, err := a.svc.Complete(q.Get("prefix"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJsonSuccess(w, suggestions)
}

func (a *api) handleInfo(w http.ResponseWriter, r *http.Request) {
	WriteJsonSuccess(w, a.svc.Info())
}

func writeServiceError(w http.ResponseWriter, err error) {
	status := server.StatusCode(err)
	if status == http.StatusInternalServerError {
		webLog.Errorf("request failed: %v", err)
	}
	WriteJsonError(w, status, errors.New(service.Message(err)))
}

// NewHandler builds the routed, wrapped handler for svc.
func NewHandler(svc *service.Service, opts Options) http.Handler {
	webLog.SetLevel(log.GetLevel())
	a := &api{svc: svc}
	wrap := WebFnOpts{AllowCaching: false}

	gr := mux.NewRouter()
	gr.HandleFunc("/health", WebFnWrap(wrap, handleHealth)).Methods(http.MethodGet)
	apiRouter := gr.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/search", WebFnWrap(wrap, a.handleSearch)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/complete", WebFnWrap(wrap, a.handleComplete)).Methods(http.MethodGet)
	apiRouter.HandleFunc("/info", WebFnWrap(wrap, a.handleInfo)).Methods(http.MethodGet)

	var handler http.Handler = http.TimeoutHandler(gr, HttpTimeoutDuration, "Timeout")
	if opts.EnableCORS {
		handler = handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{http.MethodGet}),
		)(handler)
	}
	return handler
}

func MakeTCPListener(serviceName string, addr string) (net.Listener, error) {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	rtn, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("error creating listener at %v: %w", addr, err)
	}
	webLog.Infof("Server [%s] listening on %s", serviceName, rtn.Addr())
	return rtn, nil
}

// RunWebServer serves on listener until ctx is cancelled. Blocking.
func RunWebServer(ctx context.Context, listener net.Listener, svc *service.Service, opts Options) error {
	srv := &http.Server{
		ReadTimeout:    HttpReadTimeout,
		WriteTimeout:   HttpWriteTimeout,
		MaxHeaderBytes: HttpMaxHeaderBytes,
		Handler:        NewHandler(svc, opts),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listener) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
