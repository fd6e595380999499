package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"
	"go-exchange-rate-bot/host"
)

// Dispatcher runs commands and tools on behalf of the HTTP server.
// host.Router implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, text string) (string, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
	Commands() []host.Command
	Tools() []host.Tool
}

// Server dependencies for HTTP Server functions
type Server struct {
	Dispatcher Dispatcher
	Logger     log.Logger
	router     http.ServeMux
}

func NewServer(d Dispatcher, logger log.Logger) *Server {
	server := &Server{
		Dispatcher: d,
		Logger:     logger,
		router:     http.ServeMux{},
	}
	server.routes()
	return server
}

func (s *Server) routes() {
	s.router.Handle("/api/command", s.logged("command", post(s.command())))
	s.router.Handle("/api/tool", s.logged("tool", post(s.tool())))
	s.router.Handle("/api/commands", s.logged("commands", get(s.commands())))
	s.router.Handle("/api/tools", s.logged("tools", get(s.tools())))
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// reply the plain text result of a command or tool
type reply struct {
	Text string `json:"text"`
}

// command produces HTTP handler for chat commands
func (s *Server) command() http.HandlerFunc {

	// request for unmarshalling JSON requests posted by clients
	type request struct {
		Text string `json:"text"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !decode(rw, r, &req) {
			return
		}

		text, err := s.Dispatcher.Dispatch(r.Context(), req.Text)
		if err != nil {
			writeError(rw, err)
			return
		}
		writeJSON(rw, http.StatusOK, reply{Text: text})
	}
}

// tool produces HTTP handler for LLM tool calls
func (s *Server) tool() http.HandlerFunc {

	type request struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	return func(rw http.ResponseWriter, r *http.Request) {
		var req request
		if !decode(rw, r, &req) {
			return
		}

		text, err := s.Dispatcher.CallTool(r.Context(), req.Name, req.Arguments)
		if err != nil {
			writeError(rw, err)
			return
		}
		writeJSON(rw, http.StatusOK, reply{Text: text})
	}
}

// commands produces HTTP handler listing registered chat commands
func (s *Server) commands() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, s.Dispatcher.Commands())
	}
}

// tools produces HTTP handler listing tool definitions
func (s *Server) tools() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		writeJSON(rw, http.StatusOK, s.Dispatcher.Tools())
	}
}

// logged tags each request with an id and logs it
func (s *Server) logged(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		rw.Header().Set("X-Request-Id", id)
		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		defer func(begin time.Time) {
			s.Logger.Log(
				"method", method,
				"request_id", id,
				"status", rec.status,
				"took", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}

func post(next http.HandlerFunc) http.HandlerFunc {
	return only(http.MethodPost, next)
}

func get(next http.HandlerFunc) http.HandlerFunc {
	return only(http.MethodGet, next)
}

func only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			writeJSON(rw, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		next(rw, r)
	}
}

func decode(rw http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	bytes, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return false
	}
	if err := json.Unmarshal(bytes, v); err != nil {
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func writeError(rw http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, host.ErrUnknownCommand), errors.Is(err, host.ErrUnknownTool):
		writeJSON(rw, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, host.ErrMissingArgument):
		writeJSON(rw, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "failed request"})
	}
}

func writeJSON(rw http.ResponseWriter, status int, v any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
