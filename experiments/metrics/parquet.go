package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// MoveRow is the columnar form of a MoveRecord.
type MoveRow struct {
	RunID      string  `parquet:"run_id,dict"`
	Game       int32   `parquet:"game"`
	Step       int32   `parquet:"step"`
	Action     string  `parquet:"action,dict"`
	Value      float64 `parquet:"value"`
	Algorithm  string  `parquet:"algorithm,dict"`
	Evaluator  string  `parquet:"evaluator,dict"`
	Depth      int32   `parquet:"depth"`
	DurationNs int64   `parquet:"duration_ns"`
	Nodes      int32   `parquet:"nodes"`
	Leaves     int32   `parquet:"leaves"`
	Cutoffs    int32   `parquet:"cutoffs"`
}

func moveRows(runID string, records []MoveRecord) []MoveRow {
	rows := make([]MoveRow, len(records))
	for i, r := range records {
		rows[i] = MoveRow{
			RunID:      runID,
			Game:       int32(r.Game),
			Step:       int32(r.Step),
			Action:     r.Action,
			Value:      r.Value,
			Algorithm:  r.Algorithm,
			Evaluator:  r.Evaluator,
			Depth:      int32(r.Depth),
			DurationNs: r.Duration.Nanoseconds(),
			Nodes:      int32(r.Nodes),
			Leaves:     int32(r.Leaves),
			Cutoffs:    int32(r.Cutoffs),
		}
	}
	return rows
}

// WriteMoveParquet stores the move records as moves.parquet next to the CSV files.
func (w *Writer) WriteMoveParquet(records []MoveRecord) error {
	outPath := filepath.Join(w.baseDir, "moves.parquet")

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, moveRows(w.RunID, records),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "pacman_move_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadMoveParquet loads rows written by WriteMoveParquet.
func ReadMoveParquet(path string) ([]MoveRow, error) {
	rows, err := parquet.ReadFile[MoveRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
