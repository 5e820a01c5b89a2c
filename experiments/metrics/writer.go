package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AgentConfig describes one pacman agent taking part in an experiment.
type AgentConfig struct {
	ID              int    `yaml:"id"`
	Algorithm       string `yaml:"algorithm"`
	Evaluator       string `yaml:"evaluator"`
	Depth           int    `yaml:"depth"`
	DisableOrdering bool   `yaml:"disable_ordering"`
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Writer stores the results of one experiment run in its own directory.
type Writer struct {
	RunID   string
	baseDir string
}

// NewWriter creates root/name/<timestamp>-<run id> for the run's files.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		RunID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "algorithm", "evaluator", "depth", "ordering"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Algorithm,
			config.Evaluator,
			strconv.Itoa(config.Depth),
			strconv.FormatBool(!config.DisableOrdering),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "run", "agent", "layout", "winner", "score", "moves", "start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			w.RunID,
			strconv.Itoa(record.Agent),
			record.Layout,
			record.Winner,
			strconv.FormatFloat(record.Score, 'f', -1, 64),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "action", "value", "algorithm", "evaluator", "depth", "duration", "nodes", "leaves", "cutoffs"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Action,
			strconv.FormatFloat(record.Value, 'f', 2, 64),
			record.Algorithm,
			record.Evaluator,
			strconv.Itoa(record.Depth),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	return encodeCSV(f, name, header, rows)
}

// encodeCSV writes header and rows to f and closes it.
func encodeCSV(f io.WriteCloser, name string, header []string, rows [][]string) (err error) {
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, closeErr)
		}
	}()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
