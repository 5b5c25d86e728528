package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestLegalMoves(t *testing.T) {
	t.Run("single file knight leaps two squares", func(t *testing.T) {
		p := mustParse(t, "bk,x,x,x,x,wn,x,x,x,x,x,wk:w")

		require.ElementsMatch(t, []Move{{From: 5, To: 3}, {From: 5, To: 7}, {From: 11, To: 10}}, p.LegalMoves(DefaultRules()))
	})

	t.Run("pinned knight cannot move", func(t *testing.T) {
		p := mustParse(t, "bk,x,x/x,x,x/br,x,x/wn,x,x/wk,x,x:w")

		require.ElementsMatch(t, []Move{{From: 12, To: 13}, {From: 12, To: 10}}, p.LegalMoves(DefaultRules()),
			"Only king moves should remain while the knight shields the king")
	})

	t.Run("pawn double step from its start rank", func(t *testing.T) {
		p := mustParse(t, "bk,bp,x,x,x,x,wp,wk:w")

		require.ElementsMatch(t, []Move{{From: 6, To: 5}, {From: 6, To: 4}}, p.LegalMoves(DefaultRules()))
	})

	t.Run("black pawns advance down the board", func(t *testing.T) {
		p := mustParse(t, "bk,bp,x,x,x,x,wp,wk:b")

		require.ElementsMatch(t, []Move{{From: 1, To: 2}, {From: 1, To: 3}}, p.LegalMoves(DefaultRules()))
	})

	t.Run("promotion on a single file offers rook and knight", func(t *testing.T) {
		p := mustParse(t, "x,wp,x,bk,x,wk:w")

		require.ElementsMatch(t, []Move{{From: 1, To: 0, Promotion: Rook}, {From: 1, To: 0, Promotion: Knight}},
			p.LegalMoves(StandardRules()))
		require.Equal(t, []Move{{From: 1, To: 0}}, p.LegalMoves(DefaultRules()),
			"Without the promotion rule the pawn stays a pawn")
	})

	t.Run("promotion on a grid offers four pieces", func(t *testing.T) {
		p := mustParse(t, "bk,x,x/x,x,wp/x,x,x/x,x,wk:w")

		var promotions []PieceType
		for _, m := range p.LegalMoves(StandardRules()) {
			if m.From == 5 {
				promotions = append(promotions, m.Promotion)
			}
		}
		require.ElementsMatch(t, []PieceType{Queen, Rook, Bishop, Knight}, promotions)
	})

	t.Run("en passant that uncovers the king along the rank is illegal", func(t *testing.T) {
		rules := StandardRules()
		pinned := mustParse(t, "x,x,x,bk/x,x,bp,x/x,x,x,x/wk,wp,x,br/x,x,x,x/x,x,x,x/x,x,x,x/x,x,x,x:b")
		free := mustParse(t, "x,x,x,bk/x,x,bp,x/x,x,x,x/wk,wp,x,x/x,x,x,x/x,x,x,x/x,x,x,x/x,x,x,x:b")
		doubleStep, err := ParseMove("c7c5", pinned.Geometry)
		require.NoError(t, err)
		capture, err := ParseMove("b5c6", pinned.Geometry)
		require.NoError(t, err)

		pinned = pinned.Play(doubleStep, rules)
		free = free.Play(doubleStep, rules)

		require.Equal(t, Square(10), pinned.EnPassant)
		require.NotContains(t, pinned.LegalMoves(rules), capture,
			"Taking en passant would leave both pawns off the rank between king and rook")
		require.Contains(t, free.LegalMoves(rules), capture)
	})

	t.Run("no moves leave the king attacked", func(t *testing.T) {
		starts := []string{
			"bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w",
			"br,bn,bk/bp,bp,bp/x,x,x/x,x,x/wp,wp,wp/wr,wn,wk:w",
			"bk,bq,x/x,bp,x/x,x,x/x,wp,x/x,wq,wk:w",
		}
		rng := rand.New(rand.NewSource(7))
		rules := StandardRules()
		for _, s := range starts {
			p := mustParse(t, s)
			for ply := 0; ply < 60; ply++ {
				moves := p.LegalMoves(rules)
				for _, m := range moves {
					child := p.Play(m, rules)
					king := child.KingSquare(p.Turn)
					require.NotEqual(t, NoSquare, king, "Move %s should not lose the king", m.Notation(p.Geometry))
					require.False(t, Attacked(child.Cells, child.Geometry, king, child.Turn),
						"Move %s in %s should not leave the king attacked", m.Notation(p.Geometry), p)
				}
				if len(moves) == 0 || p.Terminal(rules).Terminal() {
					break
				}
				p = p.Play(moves[rng.Intn(len(moves))], rules)
			}
		}
	})
}

func TestAttacked(t *testing.T) {
	p := mustParse(t, "bk,x,x/x,x,x/x,bp,x/x,x,x/x,x,wk:w")
	g := p.Geometry

	require.True(t, Attacked(p.Cells, g, 9, Black), "Black pawn should attack diagonally downwards")
	require.True(t, Attacked(p.Cells, g, 11, Black))
	require.False(t, Attacked(p.Cells, g, 10, Black), "Pawns do not attack straight ahead")
	require.True(t, Attacked(p.Cells, g, 3, Black), "King attacks adjacent squares")
	require.False(t, Attacked(p.Cells, g, 14, Black))
}

func TestParseMove(t *testing.T) {
	g, err := NewGeometry(Linear, 1, 12)
	require.NoError(t, err)

	m, err := ParseMove("a10a12r", g)
	require.NoError(t, err)
	require.Equal(t, Move{From: 2, To: 0, Promotion: Rook}, m)
	require.Equal(t, "a10a12r", m.Notation(g))

	_, err = ParseMove("a1a13", g)
	require.ErrorIs(t, err, ErrMalformed, "Off-board squares should be rejected")
	_, err = ParseMove("a1a2k", g)
	require.ErrorIs(t, err, ErrMalformed, "Promotion to king should be rejected")
}
