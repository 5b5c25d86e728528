package game

import (
	"fmt"
	"maps"

	"narrowchess/utils"
)

// Play applies a move assumed legal and returns the resulting position. Bookkeeping that a
// flag switches off (en passant target, castling rights, repetition history) is left untouched.
func (p Position) Play(m Move, rules RuleSet) Position {
	g := p.Geometry
	next := p
	next.Cells = make([]Piece, len(p.Cells))
	copy(next.Cells, p.Cells)

	piece := p.Cells[m.From]
	captured := placePiece(next.Cells, g, m)

	next.EnPassant = NoSquare
	if rules.EnPassant && piece.Type() == Pawn && utils.Abs(g.Row(m.To)-g.Row(m.From)) == 2 {
		next.EnPassant, _ = g.Square((g.Row(m.From)+g.Row(m.To))/2, g.Col(m.From))
	}

	irreversible := piece.Type() == Pawn || captured != NoPiece
	if irreversible {
		next.HalfMoves = 0
	} else {
		next.HalfMoves = p.HalfMoves + 1
	}

	if rules.Castling {
		next.Castling = p.Castling.after(g, piece, m)
	}

	next.Turn = p.Turn.Other()

	if rules.Threefold {
		if irreversible || p.Repetitions == nil {
			next.Repetitions = make(map[StateHash]int)
		} else {
			next.Repetitions = maps.Clone(p.Repetitions)
		}
		if !irreversible && p.Repetitions == nil {
			next.Repetitions[p.Hash()] = 1
		}
		next.Repetitions[next.Hash()]++
	}
	return next
}

// ApplyMove checks m against the legal moves before playing it.
func ApplyMove(p Position, m Move, rules RuleSet) (Position, error) {
	if utils.FindIndex(p.LegalMoves(rules), m) < 0 {
		return Position{}, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m.Notation(p.Geometry), p.Encode(true))
	}
	return p.Play(m, rules), nil
}

// after drops the rights lost by moving piece along m: a king move loses both of its side's
// rights, and a move from or onto a rook's home corner loses that corner's right.
func (c CastlingRights) after(g Geometry, piece Piece, m Move) CastlingRights {
	if piece.Type() == King {
		if piece.Color() == White {
			c &^= WhiteShort | WhiteLong
		} else {
			c &^= BlackShort | BlackLong
		}
	}
	for _, sq := range []Square{m.From, m.To} {
		c &^= cornerRight(g, sq)
	}
	return c
}

func cornerRight(g Geometry, sq Square) CastlingRights {
	var rights CastlingRights
	row, col := g.Row(sq), g.Col(sq)
	switch row {
	case g.Height - 1:
		if col == 0 {
			rights |= WhiteLong
		}
		if col == g.Width-1 {
			rights |= WhiteShort
		}
	case 0:
		if col == 0 {
			rights |= BlackLong
		}
		if col == g.Width-1 {
			rights |= BlackShort
		}
	}
	return rights
}
