package experiments

import (
	"carcassonne/agent"
	"carcassonne/engine"
	"carcassonne/experiments/metrics"
	"carcassonne/game"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

// Config describes an experiment: the agents taking part and the matchups
// between them.
type Config struct {
	Name       string         `yaml:"name"`
	Games      int            `yaml:"games"`       // per matchup
	Seed       int64          `yaml:"seed"`        // -1 picks a random seed
	Parallel   int            `yaml:"parallel"`    // games played at once
	Alternate  bool           `yaml:"alternate"`   // swap seats every other game
	Throughput int            `yaml:"throughput"`  // decisions timed per MCTS agent before the games; 0 disables
	OutputDir  string         `yaml:"output_dir"`
	LogLevel   string         `yaml:"log_level"`
	Agents     []agent.Config `yaml:"agents"`
	Matchups   [][2]int       `yaml:"matchups"` // agent indices, the first one moves first
}

func DefaultConfig() Config {
	return Config{
		Name:      "experiment",
		Games:     10,
		Seed:      -1,
		Parallel:  1,
		OutputDir: "results",
		LogLevel:  "info",
	}
}

// LoadConfig reads a YAML experiment file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read experiment config")
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrapf(err, "parse %s", path)
	}
	if err := config.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid %s", path)
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.Games < 1 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Parallel < 1 {
		return errors.Errorf("parallel must be positive, got %d", c.Parallel)
	}
	if c.Seed < -1 {
		return errors.Errorf("invalid seed %d", c.Seed)
	}
	if len(c.Agents) == 0 {
		return errors.New("no agents")
	}
	for _, a := range c.Agents {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if len(c.Matchups) == 0 {
		return errors.New("no matchups")
	}
	for _, m := range c.Matchups {
		for _, id := range m {
			if id < 0 || id >= len(c.Agents) {
				return errors.Errorf("matchup %v: no agent %d", m, id)
			}
		}
	}
	return nil
}

// Summary aggregates the games of one matchup from the point of view of
// the matchup's first agent.
type Summary struct {
	Matchup  [2]int
	Games    int
	Wins     int
	Losses   int
	Ties     int
	MeanDiff float64 // score difference
	StdDiff  float64
}

type plannedGame struct {
	id      int
	matchup int
	seats   [game.NumPlayers]int // agent index per player
	seed    int64
}

// Run plays every matchup, writes the records to a fresh directory below
// c.OutputDir and returns one summary per matchup.
func Run(c Config) ([]Summary, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	base := c.Seed
	if base == -1 {
		base = int64(frand.Uint64n(math.MaxInt32))
	}
	log.Info().Msgf("starting %s experiment with seed %d", c.Name, base)

	writer, err := metrics.NewWriter(c.OutputDir, c.Name)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteAgentConfigs(agentConfigs(c.Agents)); err != nil {
		return nil, err
	}

	if c.Throughput > 0 {
		for _, a := range c.Agents {
			if a.Kind != agent.MCTSKind {
				continue
			}
			if _, err := RunThroughput(a.Search, c.Throughput, uint64(base)); err != nil {
				return nil, err
			}
		}
	}

	var planned []plannedGame
	for mi, m := range c.Matchups {
		for i := 0; i < c.Games; i++ {
			seats := [game.NumPlayers]int{m[0], m[1]}
			if c.Alternate && i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			id := len(planned)
			planned = append(planned, plannedGame{id: id, matchup: mi, seats: seats, seed: base + int64(id)})
		}
	}

	results := make([]engine.Result, len(planned))
	var g errgroup.Group
	g.SetLimit(c.Parallel)
	for _, p := range planned {
		g.Go(func() error {
			result, err := playGame(c.Agents, p)
			if err != nil {
				return errors.Wrapf(err, "game %d", p.id)
			}
			results[p.id] = result
			log.Info().Msgf("game %d of %d (%s vs %s) finished with scores %v",
				p.id+1, len(planned), c.Agents[p.seats[0]].Name, c.Agents[p.seats[1]].Name, result.Game.Scores)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gameRecords := make([]metrics.GameRecord, len(planned))
	var decisionRecords []metrics.DecisionRecord
	for _, p := range planned {
		gameRecords[p.id] = metrics.GameRecord{
			ID:         p.id,
			Agent1:     p.seats[0],
			Agent2:     p.seats[1],
			Seed:       p.seed,
			GameMetric: results[p.id].Game,
		}
		for _, d := range results[p.id].Decisions {
			decisionRecords = append(decisionRecords, metrics.DecisionRecord{Game: p.id, DecisionMetric: d})
		}
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, err
	}
	if err := writer.WriteDecisionRecords(decisionRecords); err != nil {
		return nil, err
	}
	log.Info().Msgf("stored %d games in %s", len(gameRecords), writer.Dir())

	summaries := summarize(c.Matchups, planned, results)
	for _, s := range summaries {
		log.Info().Msgf("%s vs %s: %d wins, %d losses, %d ties, score difference %.2f ± %.2f",
			c.Agents[s.Matchup[0]].Name, c.Agents[s.Matchup[1]].Name, s.Wins, s.Losses, s.Ties, s.MeanDiff, s.StdDiff)
	}
	return summaries, nil
}

func playGame(configs []agent.Config, p plannedGame) (engine.Result, error) {
	deciders := make([]agent.Decider, game.NumPlayers)
	for player, id := range p.seats {
		config := configs[id]
		config.Metrics = true
		if config.Search.DotPath != "" {
			config.Search.DotPath = gamePath(config.Search.DotPath, p.id, player)
		}
		if config.Seed == -1 {
			config.Seed = p.seed*game.NumPlayers + int64(player) + 1
		}
		d, err := agent.New(config)
		if err != nil {
			return engine.Result{}, err
		}
		deciders[player] = d
	}
	e, err := engine.New(deciders, rand.New(rand.NewSource(uint64(p.seed))))
	if err != nil {
		return engine.Result{}, err
	}
	return e.Run()
}

// gamePath suffixes path with the game id and seat so that concurrent games
// write separate files.
func gamePath(path string, id, player int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d-%d%s", strings.TrimSuffix(path, ext), id, player, ext)
}

func summarize(matchups [][2]int, planned []plannedGame, results []engine.Result) []Summary {
	diffs := make([][]float64, len(matchups))
	summaries := make([]Summary, len(matchups))
	for i, m := range matchups {
		summaries[i].Matchup = m
	}
	for _, p := range planned {
		s := &summaries[p.matchup]
		// Player of the matchup's first agent in this game.
		player := 0
		if p.seats[0] != s.Matchup[0] {
			player = 1
		}
		scores := results[p.id].Game.Scores
		diffs[p.matchup] = append(diffs[p.matchup], float64(game.ScoreDifference(scores, player)))
		s.Games++
		switch results[p.id].Game.Winner {
		case game.NoPlayer:
			s.Ties++
		case player:
			s.Wins++
		default:
			s.Losses++
		}
	}
	for i := range summaries {
		if len(diffs[i]) > 1 {
			summaries[i].MeanDiff, summaries[i].StdDiff = stat.MeanStdDev(diffs[i], nil)
		} else if len(diffs[i]) == 1 {
			summaries[i].MeanDiff = diffs[i][0]
		}
	}
	return summaries
}

func agentConfigs(configs []agent.Config) []metrics.AgentConfig {
	records := make([]metrics.AgentConfig, len(configs))
	for i, c := range configs {
		records[i] = metrics.AgentConfig{
			ID:    i,
			Name:  c.Name,
			Kind:  c.Kind,
			Depth: c.Depth,
			Seed:  c.Seed,
		}
		if c.Kind == agent.MCTSKind {
			records[i].Policy = c.Search.Policy
			records[i].Playout = c.Search.Playout
			records[i].Exploration = c.Search.Exploration
			records[i].Iterations = c.Search.Iterations
			records[i].Ensemble = c.Search.Ensemble
		}
	}
	return records
}
