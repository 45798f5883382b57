package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig is the flattened description of an agent stored with results.
type AgentConfig struct {
	ID          int
	Name        string
	Kind        string
	Policy      string
	Playout     string
	Exploration float64
	Iterations  int
	Ensemble    int
	Depth       int
	Seed        int64
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID, moves first
	Agent2 int // AgentConfig.ID
	Seed   int64
	GameMetric
}

type DecisionRecord struct {
	Game int // GameRecord.ID
	DecisionMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a directory for one run of the named experiment below
// root, stamped with the current time.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "name", "kind", "policy", "playout", "exploration", "iterations", "ensemble", "depth", "seed"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			strconv.Itoa(config.ID),
			config.Name,
			config.Kind,
			config.Policy,
			config.Playout,
			strconv.FormatFloat(config.Exploration, 'g', -1, 64),
			strconv.Itoa(config.Iterations),
			strconv.Itoa(config.Ensemble),
			strconv.Itoa(config.Depth),
			strconv.FormatInt(config.Seed, 10),
		}
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent1", "agent2", "seed", "score1", "score2", "winner", "moves", "redraws", "start_time", "end_time", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.FormatInt(record.Seed, 10),
			strconv.Itoa(record.Scores[0]),
			strconv.Itoa(record.Scores[1]),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Redraws),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"game", "step", "player", "move", "token", "policy", "ensemble", "duration", "iterations", "playouts", "nodes"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Move),
			strconv.Itoa(record.Token),
			record.Policy,
			strconv.Itoa(record.Ensemble),
			record.Duration.String(),
			strconv.Itoa(record.Iterations),
			strconv.Itoa(record.Playouts),
			strconv.Itoa(record.Nodes),
		}
	}
	return w.write("decision_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
