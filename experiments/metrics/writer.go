package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one contestant of an experiment.
type AgentConfig struct {
	ID       int
	Strategy string
	Budget   time.Duration
}

type GameRecord struct {
	ID    int
	White int // AgentConfig.ID
	Black int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// SearchRecord is one standalone recommendation, as measured by the throughput experiment.
type SearchRecord struct {
	Mode string
	SearchMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder under root/name for the experiment's CSV files.
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
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			config.Budget.String(),
		})
	}
	return w.write("agent_configs.csv", []string{"id", "strategy", "budget"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.Mode,
			strconv.Itoa(record.White),
			strconv.Itoa(record.Black),
			record.StartingPlayer,
			record.Winner,
			record.Result,
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"id", "mode", "white", "black", "starting_player", "winner", "result", "total_moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			record.Move,
		}, searchColumns(record.SearchMetric)...))
	}
	header := append([]string{"game", "step", "player", "move"}, searchHeader...)
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSearchRecords(records []SearchRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, append([]string{record.Mode}, searchColumns(record.SearchMetric)...))
	}
	header := append([]string{"mode"}, searchHeader...)
	return w.write("search_records.csv", header, rows)
}

var searchHeader = []string{"tier", "budget", "duration", "complexity", "nodes", "table_hits", "table_entries"}

func searchColumns(m SearchMetric) []string {
	return []string{
		m.Tier,
		m.Budget.String(),
		m.Duration.String(),
		strconv.FormatFloat(m.Complexity, 'f', 3, 64),
		strconv.Itoa(m.Nodes),
		strconv.Itoa(m.TableHits),
		strconv.Itoa(m.TableEntries),
	}
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
