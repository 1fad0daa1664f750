package server

import (
	"context"
	"draughts/communication"
	"draughts/game"
	"draughts/searcher"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

// Server answers analysis requests. It keeps no game state: every request
// carries the position it is about.
type Server struct {
	addr   string
	router chi.Router
}

func New(addr string) *Server {
	s := &Server{addr: addr, router: chi.NewRouter()}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get(communication.PingPath, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.router.Post(communication.LegalMovesPath, handleLegalMoves)
	s.router.Post(communication.BestTurnPath, handleBestTurn)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	log.Info().Msgf("analysis server listening on %s", s.addr)
	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msgf("shutting down analysis server: %v", ctx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			runErr = fmt.Errorf("analysis server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Warn().Err(closeErr).Msg("forced close failed")
		}
	}
	return runErr
}

func handleLegalMoves(w http.ResponseWriter, r *http.Request) {
	var req communication.LegalMovesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}

	var resp communication.LegalMovesResponse
	if req.From != nil {
		if !req.From.OnBoard() {
			writeError(w, http.StatusBadRequest, fmt.Errorf("square %v is off the board", *req.From))
			return
		}
		resp.Moves, resp.Capture = req.Position.LegalMovesFrom(*req.From)
	} else {
		resp.Moves, resp.Capture = req.Position.LegalMoves(req.Side)
	}
	if resp.Moves == nil {
		resp.Moves = []game.Move{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleBestTurn(w http.ResponseWriter, r *http.Request) {
	var req communication.BestTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err))
		return
	}
	if req.Depth < 0 || req.Depth > searcher.MaxDepth {
		writeError(w, http.StatusBadRequest, fmt.Errorf("depth %d out of range [0, %d]", req.Depth, searcher.MaxDepth))
		return
	}

	options := []searcher.Option{
		searcher.WithDepth(req.Side, req.Depth),
		searcher.WithScoring(req.Scoring),
		searcher.WithPruning(req.Pruning),
		searcher.WithMetrics(),
	}
	if req.Seed != 0 {
		options = append(options, searcher.WithSeed(req.Seed))
	}
	if req.NoRandom {
		options = append(options, searcher.WithoutShuffle())
	}
	result := searcher.New(options...).Search(req.Position, req.Side)

	turn := result.Turn
	if turn == nil {
		turn = game.Turn{}
	}
	writeJSON(w, http.StatusOK, communication.BestTurnResponse{
		Turn:   turn,
		Score:  result.Score,
		Metric: result.Metric,
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	log.Warn().Err(err).Msg("rejected request")
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}
