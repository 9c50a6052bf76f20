package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/symserve/symserve/internal/logger"
	"github.com/symserve/symserve/pkg/compound"
	"github.com/symserve/symserve/pkg/engine"
	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

func compoundOptionsFrom(req Request) compound.Options {
	return compound.Options{
		TransferCasing: req.TransferCasing,
		IgnoreNonWords: req.IgnoreNonWords,
	}
}

// Server handles msgpack IPC for the correction engine over stdin/stdout. A
// single continuous msgpack decoder reads one self-delimiting Request value
// at a time; no length-prefix framing is needed since msgpack values carry
// their own length.
type Server struct {
	engine *engine.Engine
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
	log    *log.Logger
}

// NewServer builds a Server using stdin/stdout for IPC.
func NewServer(eng *engine.Engine) *Server {
	return NewServerIO(eng, os.Stdin, os.Stdout)
}

// NewServerIO builds a Server over arbitrary reader/writer, used by tests to
// avoid touching the real process stdio.
func NewServerIO(eng *engine.Engine, r io.Reader, w io.Writer) *Server {
	return &Server{engine: eng, dec: msgpack.NewDecoder(r), enc: msgpack.NewEncoder(w), log: logger.New("server")}
}

// Start begins reading requests until the stream is exhausted.
func (s *Server) Start() error {
	s.log.Info("starting correction server using msgpack IPC")
	s.sendStatus("", "ready")

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Info("client disconnected (EOF)")
				return nil
			}
			s.log.Errorf("error decoding request: %v", err)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	switch req.Command {
	case "lookup":
		s.handleLookup(req)
	case "lookup_compound":
		s.handleCompound(req)
	case "word_segmentation":
		s.handleSegment(req)
	case "health":
		s.sendStatus(req.ID, "ok")
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown command: %s", req.Command), 400)
	}
}

func parseVerbosity(name string) (suggestion.Verbosity, bool) {
	switch name {
	case "", "CLOSEST":
		return suggestion.Closest, true
	case "TOP":
		return suggestion.Top, true
	case "ALL":
		return suggestion.All, true
	default:
		return 0, false
	}
}

func (s *Server) handleLookup(req Request) {
	if req.Term == "" {
		s.sendError(req.ID, "missing 'term' field", 400)
		return
	}
	verbosity, ok := parseVerbosity(req.Verbosity)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unrecognized verbosity: %s", req.Verbosity), 400)
		return
	}

	start := time.Now()
	results, err := s.engine.Lookup(req.Term, verbosity, req.MaxEditDistance, lookup.Options{
		IncludeUnknown: req.IncludeUnknown,
		TransferCasing: req.TransferCasing,
	})
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	elapsed := time.Since(start)

	wire := make([]SuggestionWire, len(results))
	for i, r := range results {
		wire[i] = SuggestionWire{Term: r.Term, Distance: r.Distance, Count: r.Count}
	}
	s.send(LookupResponse{
		ID:          req.ID,
		Suggestions: wire,
		Count:       len(wire),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

func (s *Server) handleCompound(req Request) {
	if req.Phrase == "" {
		s.sendError(req.ID, "missing 'phrase' field", 400)
		return
	}

	start := time.Now()
	result, err := s.engine.Correct(req.Phrase, req.MaxEditDistance, compoundOptionsFrom(req))
	if err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}
	elapsed := time.Since(start)

	s.send(CompoundResponse{
		ID:        req.ID,
		Term:      result.Term,
		Distance:  result.Distance,
		Count:     result.Count,
		TimeTaken: elapsed.Milliseconds(),
	})
}

func (s *Server) handleSegment(req Request) {
	if req.Phrase == "" {
		s.sendError(req.ID, "missing 'phrase' field", 400)
		return
	}

	start := time.Now()
	composition := s.engine.Segment(req.Phrase, req.MaxEditDistance, req.MaxSegmentationWordLength)
	elapsed := time.Since(start)

	s.send(SegmentResponse{
		ID:              req.ID,
		SegmentedString: composition.SegmentedString,
		CorrectedString: composition.CorrectedString,
		DistanceSum:     composition.DistanceSum,
		LogProbSum:      composition.LogProbSum,
		TimeTaken:       elapsed.Milliseconds(),
	})
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("error encoding response: %v", err)
	}
}

func (s *Server) sendStatus(id, status string) {
	s.send(StatusResponse{ID: id, Status: status})
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
