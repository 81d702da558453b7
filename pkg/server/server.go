package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bastiangx/votersearch/internal/logger"
	"github.com/bastiangx/votersearch/pkg/search"
	"github.com/bastiangx/votersearch/pkg/service"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

const defaultCompleteLimit = 10

// Server handles IPC for voter searches
type Server struct {
	svc    *service.Service
	dec    *msgpack.Decoder
	out    *bufio.Writer
	enc    *msgpack.Encoder
	logger *log.Logger

	requests int
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(svc *service.Service) *Server {
	return NewServerIO(svc, os.Stdin, os.Stdout)
}

// NewServerIO creates a server on an arbitrary stream pair.
func NewServerIO(svc *service.Service, r io.Reader, w io.Writer) *Server {
	out := bufio.NewWriter(w)
	enc := msgpack.NewEncoder(out)
	enc.UseCompactInts(true)
	return &Server{
		svc:    svc,
		dec:    msgpack.NewDecoder(bufio.NewReader(r)),
		out:    out,
		enc:    enc,
		logger: logger.New("ipc"),
	}
}

// Start signals readiness and serves requests until EOF.
// A stream that can no longer be framed ends the loop with an error.
func (s *Server) Start() error {
	s.logger.Debug("Starting Server.")
	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.logger.Warnf("Invalid request: %v", err)
			if err := s.sendError("", "Invalid msgpack request", http.StatusBadRequest); err != nil {
				return err
			}
			continue
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

func (s *Server) handleRequest(req Request) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	switch req.Action {
	case "", ActionSearch:
		return s.handleSearch(req)
	case ActionComplete:
		return s.handleComplete(req)
	case ActionInfo:
		info := s.svc.Info()
		return s.send(InfoResponse{
			ID:       req.ID,
			Status:   info.Status,
			Records:  info.Records,
			Source:   info.Source,
			LoadedAt: info.LoadedAt,
		})
	case ActionHealth:
		return s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		return s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), http.StatusBadRequest)
	}
}

func (s *Server) handleSearch(req Request) error {
	start := time.Now()
	voters, err := s.svc.Search(req.Query, search.ParseMode(req.Mode))
	if err != nil {
		s.logger.Debugf("Search %s failed: %v", req.ID, err)
		return s.sendError(req.ID, service.Message(err), StatusCode(err))
	}
	return s.send(SearchResponse{
		ID:        req.ID,
		Voters:    voters,
		Count:     len(voters),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleComplete(req Request) error {
	limit := req.Limit
	if limit < 1 {
		limit = defaultCompleteLimit
	}
	start := time.Now()
	suggestions, err := s.svc.Complete(req.Query, limit)
	if err != nil {
		return s.sendError(req.ID, service.Message(err), StatusCode(err))
	}
	return s.send(CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

// StatusCode maps a service error onto the code sent to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, search.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrStoreNotReady):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) send(response any) error {
	if err := s.enc.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return s.out.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
