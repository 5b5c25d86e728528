package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("score is relative to the side to move", func(t *testing.T) {
		white := mustParse(t, "bk,br,bn,x,x,x,x,wn,wr,wr,x,wk:w")
		black := white
		black.Turn = Black

		require.Positive(t, Evaluate(white), "Extra rook should favour White")
		require.Equal(t, -Evaluate(white), Evaluate(black))
	})

	t.Run("material only", func(t *testing.T) {
		p := mustParse(t, "bk,x,x,x,x,x,x,x,x,br,x,wk:w")

		require.Equal(t, -500, EvaluateMaterial(p))
	})

	t.Run("advanced pawns score higher", func(t *testing.T) {
		home := mustParse(t, "bk,x,x/x,x,x/x,x,x/x,x,x/x,x,x/x,x,wp/x,x,wk:w")
		advanced := mustParse(t, "bk,x,x/x,x,wp/x,x,x/x,x,x/x,x,x/x,x,x/x,x,wk:w")

		require.Greater(t, Evaluate(advanced), Evaluate(home))
	})

	t.Run("endgame detection", func(t *testing.T) {
		require.True(t, IsEndgame(mustParse(t, "bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w")), "No queens means endgame")
		require.False(t, IsEndgame(mustParse(t, "bk,bq,br,br,x,x,x,x,wr,wr,wq,wk:w")))
	})
}

func TestTableIndex(t *testing.T) {
	square, err := NewGeometry(Grid, 8, 8)
	require.NoError(t, err)
	require.Equal(t, 0, tableIndex(square, 56, White), "a1 maps to index 0 for White")
	require.Equal(t, 0, tableIndex(square, 0, Black), "a8 maps to index 0 for Black")
	require.Equal(t, 63, tableIndex(square, 7, White))

	file, err := NewGeometry(Linear, 1, 12)
	require.NoError(t, err)
	require.Equal(t, 4, tableIndex(file, 11, White), "Single file scores like a central file")
	require.Equal(t, 7*8+4, tableIndex(file, 0, White), "Last rank maps onto the last table rank")
}
