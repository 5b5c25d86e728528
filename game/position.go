package game

import (
	"encoding/binary"
	"hash/fnv"
	"maps"
)

type CastlingRights uint8

const (
	WhiteShort CastlingRights = 1 << iota
	WhiteLong
	BlackShort
	BlackLong

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteShort | WhiteLong | BlackShort | BlackLong
)

// Position is immutable: Play and friends always return a new copy.
type Position struct {
	Geometry    Geometry
	Cells       []Piece
	Turn        Color
	EnPassant   Square
	HalfMoves   int
	Castling    CastlingRights
	Repetitions map[StateHash]int // occurrences since the last irreversible move, threefold only
}

func (p Position) Copy() Position {
	cells := make([]Piece, len(p.Cells))
	copy(cells, p.Cells)
	p.Cells = cells
	if p.Repetitions != nil {
		p.Repetitions = maps.Clone(p.Repetitions)
	}
	return p
}

func (p Position) PieceAt(sq Square) Piece {
	return p.Cells[sq]
}

func (p Position) KingSquare(c Color) Square {
	return kingSquare(p.Cells, c)
}

func kingSquare(cells []Piece, c Color) Square {
	king := NewPiece(c, King)
	for sq, piece := range cells {
		if piece == king {
			return Square(sq)
		}
	}
	return NoSquare
}

func (p Position) PieceCount() int {
	n := 0
	for _, piece := range p.Cells {
		if piece != NoPiece {
			n++
		}
	}
	return n
}

func (p Position) InCheck() bool {
	king := p.KingSquare(p.Turn)
	return king != NoSquare && Attacked(p.Cells, p.Geometry, king, p.Turn.Other())
}

// Hash identifies the position for repetition counting. The half-move clock is left out so
// that the same placement reached at different clock values counts as a repetition.
func (p Position) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write([]byte{byte(p.Geometry.Width), byte(p.Geometry.Height)})
	for _, piece := range p.Cells {
		hasher.Write([]byte{byte(piece)})
	}
	binary.Write(hasher, binary.LittleEndian, int64(p.Turn))
	binary.Write(hasher, binary.LittleEndian, int64(p.EnPassant))
	binary.Write(hasher, binary.LittleEndian, int64(p.Castling))
	return StateHash(hasher.Sum64())
}

// RepetitionCount is how often the current position has occurred since the last irreversible
// move, counting itself. Positions without history count once.
func (p Position) RepetitionCount() int {
	if n := p.Repetitions[p.Hash()]; n > 0 {
		return n
	}
	return 1
}
