package engine

import (
	"carcassonne/agent"
	"carcassonne/experiments/metrics"
	"carcassonne/game"
	"carcassonne/meta"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrIllegalMove is returned when a decider picks a move index or token point
// that is not legal for the drawn tile.
var ErrIllegalMove = errors.New("illegal move")

// Game is the authoritative copy of one match. Only Play mutates it.
type Game struct {
	State *game.State
	Deck  game.Deck

	agents    [game.NumPlayers]agent.Decider
	rng       *rand.Rand
	redraws   int
	decisions []metrics.DecisionMetric
}

// New deals a shuffled deck and seats one decider per player; agents[0] moves
// first.
func New(agents []agent.Decider, rng *rand.Rand) (*Game, error) {
	if len(agents) != game.NumPlayers {
		return nil, fmt.Errorf("need %d agents, got %d", game.NumPlayers, len(agents))
	}
	g := &Game{
		State: game.NewState(),
		Deck:  game.NewDeck(rng),
		rng:   rng,
	}
	copy(g.agents[:], agents)
	return g, nil
}

// Draw returns the next tile that has a legal placement together with its
// legal moves. Unplaceable tiles go back into the deck, which is reshuffled.
// It reports false when the deck is empty or no tile fits after
// meta.MAX_REDRAWS attempts.
func (g *Game) Draw() (game.Tile, []game.Move, bool) {
	for attempts := 0; len(g.Deck) > 0 && attempts <= meta.MAX_REDRAWS; attempts++ {
		tile := g.Deck.Draw()
		if legal := game.EnumeratePlacements(g.State, tile); len(legal) > 0 {
			return tile, legal, true
		}
		log.Debug().Msgf("tile %v has no legal placement, redrawing", tile)
		g.Deck.PutBack(tile)
		g.Deck.Shuffle(g.rng)
		g.redraws++
	}
	return game.Tile{}, nil, false
}

// Play applies the turn chosen by the mover: legal[move] with a token on
// point of the rotated tile, then scores completed regions.
func (g *Game) Play(tile game.Tile, legal []game.Move, move, point int) error {
	if move < 0 || move >= len(legal) {
		return fmt.Errorf("%w: move index %d out of %d", ErrIllegalMove, move, len(legal))
	}
	m := legal[move]
	if point != game.NoToken && g.State.Tokens(g.State.Mover()) == 0 {
		return fmt.Errorf("%w: player %d has no tokens left", ErrIllegalMove, g.State.Mover())
	}
	if !game.IsLegalToken(g.State, tile.Rotated(m.Rotation), m.Coordinate, point) {
		return fmt.Errorf("%w: token point %d for %v", ErrIllegalMove, point, m)
	}
	g.State.Play(m, tile, point)
	return nil
}

// Step plays one turn. It reports false once the game has ended.
func (g *Game) Step() (bool, error) {
	if g.State.IsOver() {
		return false, nil
	}
	tile, legal, ok := g.Draw()
	if !ok {
		log.Warn().Msgf("no placeable tile among %d remaining, ending game", len(g.Deck))
		return false, nil
	}

	player := g.State.Mover()
	decider := g.agents[player]
	move, point := decider.Decide(g.State, tile, g.Deck.Copy(), legal)
	if err := g.Play(tile, legal, move, point); err != nil {
		return false, fmt.Errorf("player %d: %w", player, err)
	}

	decision := metrics.DecisionMetric{
		Step:   g.State.Placed() - 1,
		Player: player,
		Move:   move,
		Token:  point,
	}
	if metered, ok := decider.(agent.Metered); ok {
		decision.SearchMetric = metered.LastMetric()
	}
	g.decisions = append(g.decisions, decision)
	log.Debug().Msgf("step %d: player %d placed %v at %v token %d, score %v",
		decision.Step, player, tile, legal[move], point, g.State.Score())
	return true, nil
}

// Run plays the remaining turns and applies final scoring.
func (g *Game) Run() (Result, error) {
	start := time.Now()
	for {
		more, err := g.Step()
		if err != nil {
			return Result{}, err
		}
		if !more {
			break
		}
	}
	g.State.TriggerScoring(true)

	scores := g.State.Score()
	end := time.Now()
	result := Result{
		Game: metrics.GameMetric{
			Scores:     scores,
			Winner:     game.Winner(scores),
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			TotalMoves: len(g.decisions),
			Redraws:    g.redraws,
		},
		Decisions: g.decisions,
	}
	log.Info().Msgf("game finished after %d moves with scores %v, winner %d", len(g.decisions), scores, result.Game.Winner)
	return result, nil
}
