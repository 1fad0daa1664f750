package player

import (
	"bufio"
	"context"
	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/searcher/agent"
	"draughts/utils"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Human is an agent driven from a terminal. A move is typed as "r c r2 c2";
// while a capture chain goes on, "r2 c2" is enough.
type Human struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func NewHuman(name string, in io.Reader, out io.Writer) *Human {
	return &Human{
		name: name,
		in:   bufio.NewScanner(in),
		out:  out,
	}
}

func (h *Human) Interactive() bool {
	return true
}

// errRestart drops the moves entered so far in the current turn.
var errRestart = errors.New("turn restarted")

// FindTurn reads a full turn. "undo" before the first move returns
// agent.ErrUndo, during a capture chain it starts the turn over. "quit" or
// the end of input returns agent.ErrQuit.
func (h *Human) FindTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, metrics.SearchMetric, error) {
	for {
		turn, err := h.readTurn(ctx, pos, side)
		if errors.Is(err, errRestart) {
			continue
		}
		return turn, metrics.SearchMetric{}, err
	}
}

func (h *Human) readTurn(ctx context.Context, pos game.Position, side game.Side) (game.Turn, error) {
	moves, capture := pos.LegalMoves(side)
	h.show(pos)
	fmt.Fprintf(h.out, "%s (%v) to move, pieces that can move: %s\n", h.name, side, origins(moves))

	var turn game.Turn
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := h.readLine()
		if err != nil {
			return nil, err
		}

		switch line {
		case "undo":
			if len(turn) == 0 {
				return nil, agent.ErrUndo
			}
			fmt.Fprintln(h.out, "turn restarted")
			return nil, errRestart
		case "quit":
			return nil, agent.ErrQuit
		}

		entered, err := parseMove(line, turn)
		if err != nil {
			log.Warn().Err(err).Msgf("%s entered %q", h.name, line)
			fmt.Fprintf(h.out, "%v, type \"r c r2 c2\", \"undo\" or \"quit\"\n", err)
			continue
		}
		i := utils.FindIndex(moves, entered)
		if i < 0 {
			fmt.Fprintf(h.out, "illegal move %v\n", entered)
			continue
		}

		move := moves[i]
		turn = append(turn, move)
		if !capture {
			return turn, nil
		}
		pos = pos.Apply(move)
		moves, capture = pos.LegalMovesFrom(move.To)
		if !capture {
			return turn, nil
		}
		h.show(pos)
		fmt.Fprintf(h.out, "keep capturing with %v\n", move.To)
	}
}

func (h *Human) readLine() (string, error) {
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", agent.ErrQuit
	}
	return strings.ToLower(strings.TrimSpace(h.in.Text())), nil
}

func (h *Human) show(pos game.Position) {
	fmt.Fprintln(h.out, "  0 1 2 3 4 5 6 7")
	for row, line := range pos.Rows() {
		fmt.Fprintf(h.out, "%d %s\n", row, strings.Join(strings.Split(line, ""), " "))
	}
}

// parseMove reads "r c r2 c2", or "r2 c2" continuing the chain in turn.
func parseMove(line string, turn game.Turn) (game.Move, error) {
	fields := strings.Fields(line)
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return game.Move{}, fmt.Errorf("not a number: %q", f)
		}
		nums[i] = n
	}

	switch {
	case len(nums) == 4:
		return game.NewMove(game.Square{Row: nums[0], Col: nums[1]}, game.Square{Row: nums[2], Col: nums[3]}), nil
	case len(nums) == 2 && len(turn) > 0:
		return game.NewMove(turn[len(turn)-1].To, game.Square{Row: nums[0], Col: nums[1]}), nil
	}
	return game.Move{}, fmt.Errorf("expected 4 numbers, got %d", len(nums))
}

func origins(moves []game.Move) string {
	var sb strings.Builder
	seen := map[game.Square]bool{}
	for _, m := range moves {
		if seen[m.From] {
			continue
		}
		seen[m.From] = true
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(m.From.String())
	}
	return sb.String()
}
