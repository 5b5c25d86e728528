package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"narrowchess/experiments/metrics"
	"narrowchess/game"
)

var testModes = []game.Mode{
	{Name: "mate", Start: "bk,bn,x,x,wn,x,x,wk:w", Rules: game.DefaultRules()},
	{Name: "bare", Start: "bk,x,x,x,x,x,x,wk:w", Rules: game.RuleSet{Threefold: true}},
}

func TestRun(t *testing.T) {
	matchUps := []MatchUp{{
		{ID: 1, Strategy: "optimal", Budget: 50 * time.Millisecond},
		{ID: 2, Strategy: "weak", Budget: 50 * time.Millisecond},
	}}

	result, err := Run(context.Background(), testModes, matchUps, 2)
	require.NoError(t, err)

	require.Len(t, result.Games, 4)
	for i, record := range result.Games {
		require.Equal(t, i+1, record.ID)
		require.ElementsMatch(t, []int{1, 2}, []int{record.White, record.Black})
		require.Positive(t, record.TotalMoves)
	}
	moves := 0
	for _, record := range result.Games {
		moves += record.TotalMoves
	}
	require.Len(t, result.Moves, moves)
}

func TestRunRejectsBadModes(t *testing.T) {
	matchUps := []MatchUp{{{ID: 1, Strategy: "optimal"}, {ID: 2, Strategy: "optimal"}}}

	_, err := Run(context.Background(), []game.Mode{{Name: "bad", Start: "bk:w"}}, matchUps, 1)
	require.ErrorIs(t, err, game.ErrMalformed)
}

func TestMeasureThroughput(t *testing.T) {
	records, err := MeasureThroughput(testModes, []time.Duration{50 * time.Millisecond})
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t, "mate", records[0].Mode)
	require.Equal(t, "exact", records[0].Tier)
	require.Positive(t, records[0].Nodes)
}

func TestStore(t *testing.T) {
	root := t.TempDir()

	err := store(root, "strategies", strategyConfigs, Result{Games: []metrics.GameRecord{{ID: 1}}})
	require.NoError(t, err)

	runs, err := os.ReadDir(filepath.Join(root, "strategies"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(root, "strategies", runs[0].Name(), name))
	}
}
