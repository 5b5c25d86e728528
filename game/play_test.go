package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlay(t *testing.T) {
	t.Run("en passant removes the passed pawn from its own square", func(t *testing.T) {
		rules := DefaultRules()
		rules.EnPassant = true
		p := mustParse(t, "x,x,bk/x,bp,x/x,x,x/wp,x,x/x,x,x/x,x,wk:b")

		p = p.Play(Move{From: 4, To: 10}, rules)
		require.Equal(t, Square(7), p.EnPassant, "Double step should set the skipped square as target")

		capture := Move{From: 9, To: 7}
		require.Contains(t, p.LegalMoves(rules), capture)
		captures := 0
		for _, m := range p.LegalMoves(rules) {
			if m.To == 7 || p.PieceAt(m.To) != NoPiece {
				captures++
			}
		}
		require.Equal(t, 1, captures, "The en passant capture should be the only capture")

		after, err := ApplyMove(p, capture, rules)
		require.NoError(t, err)
		require.Equal(t, NoPiece, after.PieceAt(10), "Passed pawn should be removed from its own square")
		require.Equal(t, NewPiece(White, Pawn), after.PieceAt(7))
		require.Equal(t, NoPiece, after.PieceAt(9))
		require.Equal(t, NoSquare, after.EnPassant)
		require.Equal(t, 0, after.HalfMoves)
	})

	t.Run("en passant is not available with the rule off", func(t *testing.T) {
		p := mustParse(t, "x,x,bk/x,bp,x/x,x,x/wp,x,x/x,x,x/x,x,wk:b")

		p = p.Play(Move{From: 4, To: 10}, DefaultRules())

		require.Equal(t, NoSquare, p.EnPassant)
		require.NotContains(t, p.LegalMoves(DefaultRules()), Move{From: 9, To: 7})
	})

	t.Run("play does not modify the original position", func(t *testing.T) {
		p := mustParse(t, "bk,x,x,x,x,wn,x,x,x,x,x,wk:w")
		before := p.Encode(true)

		child := p.Play(Move{From: 5, To: 3}, StandardRules())

		require.Equal(t, before, p.Encode(true))
		require.Equal(t, Black, child.Turn)
		require.Equal(t, 1, child.HalfMoves)
	})

	t.Run("illegal moves are rejected", func(t *testing.T) {
		p := mustParse(t, "bk,x,x,x,x,wn,x,x,x,x,x,wk:w")

		_, err := ApplyMove(p, Move{From: 5, To: 4}, DefaultRules())
		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("fifty-move clock reaching 100 draws", func(t *testing.T) {
		rules := DefaultRules()
		rules.FiftyMove = true
		p := mustParse(t, "bk,x,x,x,x,x,x,wn,x,x,x,wk:w:-:99:0")

		child := p.Play(Move{From: 7, To: 5}, rules)

		require.Equal(t, 100, child.HalfMoves)
		require.Equal(t, DrawFifty, Terminal(child, rules))
		require.Equal(t, NotTerminal, Terminal(child, DefaultRules()), "Clock is ignored with the rule off")
	})

	t.Run("castling rights follow king and rook moves", func(t *testing.T) {
		rules := DefaultRules()
		rules.Castling = true
		p := mustParse(t, "br,x,bk/x,x,x/x,x,x/wr,x,wk:w:-:0:15")

		require.Equal(t, BlackShort|BlackLong, p.Play(Move{From: 11, To: 8}, rules).Castling,
			"King move should drop both of its side's rights")
		require.Equal(t, WhiteShort|BlackShort, p.Play(Move{From: 9, To: 0}, rules).Castling,
			"Rook leaving a corner and a rook captured on a corner should drop those rights")
		require.Equal(t, AllCastling, p.Play(Move{From: 11, To: 8}, DefaultRules()).Castling,
			"Rights are not tracked with the rule off")
	})

	t.Run("repetitions are counted until the third occurrence", func(t *testing.T) {
		rules := DefaultRules()
		rules.Threefold = true
		p := mustParse(t, "bk,x,x,x,x,x,x,wk:w")
		shuffle := []Move{{From: 7, To: 6}, {From: 0, To: 1}, {From: 6, To: 7}, {From: 1, To: 0}}

		for _, m := range shuffle {
			p = p.Play(m, rules)
		}
		require.Equal(t, 2, p.RepetitionCount())
		require.Equal(t, NotTerminal, Terminal(p, rules))

		for _, m := range shuffle {
			p = p.Play(m, rules)
		}
		require.Equal(t, 3, p.RepetitionCount())
		require.Equal(t, DrawThreefold, Terminal(p, rules))
		require.Equal(t, NotTerminal, Terminal(p, DefaultRules()))
	})
}
