package game

import (
	"fmt"
	"strings"
)

type Move struct {
	From      Square
	To        Square
	Promotion PieceType // NoPieceType unless the move promotes
}

// Notation renders the move in coordinate form, e.g. a2a4 or b7b8q.
func (m Move) Notation(g Geometry) string {
	return g.SquareName(m.From) + g.SquareName(m.To) + m.Promotion.String()
}

func (m Move) String() string {
	if m.Promotion != NoPieceType {
		return fmt.Sprintf("%d-%d=%s", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%d-%d", m.From, m.To)
}

// ParseMove reads coordinate notation against a geometry.
func ParseMove(s string, g Geometry) (Move, error) {
	s = strings.TrimSpace(s)
	fromEnd := squareEnd(s, 0)
	toEnd := squareEnd(s, fromEnd)
	from, err := g.ParseSquare(s[:fromEnd])
	if err != nil {
		return Move{}, fmt.Errorf("bad move %q: %w", s, err)
	}
	to, err := g.ParseSquare(s[fromEnd:toEnd])
	if err != nil {
		return Move{}, fmt.Errorf("bad move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	switch suffix := s[toEnd:]; len(suffix) {
	case 0:
	case 1:
		t, ok := parsePieceType(suffix[0])
		if !ok || t == King || t == Pawn {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrMalformed, s)
		}
		m.Promotion = t
	default:
		return Move{}, fmt.Errorf("%w: bad move %q", ErrMalformed, s)
	}
	return m, nil
}

// squareEnd returns the index just past the file letter and rank digits starting at i.
func squareEnd(s string, i int) int {
	if i >= len(s) {
		return i
	}
	i++
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
