package game

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	emptyField    = "-"
	rankSeparator = "/"
	cellSeparator = ","
	fieldSep      = ":"
)

// ParsePosition decodes a position string and infers its geometry: without a rank separator
// the cells form a single file listed from the top, otherwise every rank must be equally wide.
//
//	bk,x,x,x,x,x,x,x,x,br,x,wk:w
//	bk,x,x/x,bp,x/x,x,x/x,wp,x/x,x,wk:w:-:0:0
func ParsePosition(s string) (Position, error) {
	board, rest, err := splitFields(s)
	if err != nil {
		return Position{}, err
	}
	ranks := strings.Split(board, rankSeparator)
	var geo Geometry
	if len(ranks) == 1 {
		geo, err = NewGeometry(Linear, 1, len(strings.Split(board, cellSeparator)))
	} else {
		geo, err = NewGeometry(Grid, len(strings.Split(ranks[0], cellSeparator)), len(ranks))
	}
	if err != nil {
		return Position{}, err
	}
	return decode(board, rest, geo)
}

// ParsePositionIn decodes a position string against a declared geometry.
func ParsePositionIn(s string, geo Geometry) (Position, error) {
	if _, err := NewGeometry(geo.Variant, geo.Width, geo.Height); err != nil {
		return Position{}, err
	}
	board, rest, err := splitFields(s)
	if err != nil {
		return Position{}, err
	}
	return decode(board, rest, geo)
}

func MustParsePosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

func splitFields(s string) (string, []string, error) {
	fields := strings.Split(strings.TrimSpace(s), fieldSep)
	if len(fields) != 2 && len(fields) != 5 {
		return "", nil, fmt.Errorf("%w: expected 2 or 5 fields, got %d", ErrMalformed, len(fields))
	}
	return fields[0], fields[1:], nil
}

func decode(board string, fields []string, geo Geometry) (Position, error) {
	cells, err := decodeCells(board, geo)
	if err != nil {
		return Position{}, err
	}
	p := Position{Geometry: geo, Cells: cells, EnPassant: NoSquare}

	switch fields[0] {
	case "w":
		p.Turn = White
	case "b":
		p.Turn = Black
	default:
		return Position{}, fmt.Errorf("%w: bad side to move %q", ErrMalformed, fields[0])
	}

	if len(fields) == 4 {
		if fields[1] != emptyField {
			if p.EnPassant, err = geo.ParseSquare(fields[1]); err != nil {
				return Position{}, err
			}
			if cells[p.EnPassant] != NoPiece {
				return Position{}, fmt.Errorf("%w: en passant square %s is occupied", ErrMalformed, fields[1])
			}
		}
		if p.HalfMoves, err = strconv.Atoi(fields[2]); err != nil || p.HalfMoves < 0 {
			return Position{}, fmt.Errorf("%w: bad half-move clock %q", ErrMalformed, fields[2])
		}
		castling, err := strconv.Atoi(fields[3])
		if err != nil || castling < 0 || castling > int(AllCastling) {
			return Position{}, fmt.Errorf("%w: bad castling rights %q", ErrMalformed, fields[3])
		}
		p.Castling = CastlingRights(castling)
	}

	if err := validateKings(p); err != nil {
		return Position{}, err
	}
	return p, nil
}

func decodeCells(board string, geo Geometry) ([]Piece, error) {
	var tokens []string
	ranks := strings.Split(board, rankSeparator)
	if len(ranks) == 1 {
		tokens = strings.Split(board, cellSeparator)
	} else {
		if len(ranks) != geo.Height {
			return nil, fmt.Errorf("%w: expected %d ranks, got %d", ErrMalformed, geo.Height, len(ranks))
		}
		for i, rank := range ranks {
			cells := strings.Split(rank, cellSeparator)
			if len(cells) != geo.Width {
				return nil, fmt.Errorf("%w: rank %d has %d cells, expected %d", ErrMalformed, geo.Height-i, len(cells), geo.Width)
			}
			tokens = append(tokens, cells...)
		}
	}
	if len(tokens) != geo.Squares() {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrMalformed, geo.Squares(), len(tokens))
	}

	cells := make([]Piece, len(tokens))
	for i, token := range tokens {
		piece, ok := ParsePiece(strings.TrimSpace(token))
		if !ok {
			return nil, fmt.Errorf("%w: bad cell token %q", ErrMalformed, token)
		}
		cells[i] = piece
	}
	return cells, nil
}

func validateKings(p Position) error {
	var kings [2]int
	for _, piece := range p.Cells {
		if piece.Type() == King {
			kings[piece.Color()]++
		}
	}
	for c, n := range kings {
		if n != 1 {
			return fmt.Errorf("%w: %s has %d kings, expected exactly one", ErrMalformed, Color(c), n)
		}
	}
	opponent := p.Turn.Other()
	if Attacked(p.Cells, p.Geometry, p.KingSquare(opponent), p.Turn) {
		return fmt.Errorf("%w: side not to move is in check", ErrMalformed)
	}
	return nil
}

// Encode is the inverse of ParsePosition. The extended form carries the en passant target,
// the half-move clock and the castling rights.
func (p Position) Encode(extended bool) string {
	var sb strings.Builder
	for sq, piece := range p.Cells {
		if sq > 0 {
			if !p.Geometry.Linear() && sq%p.Geometry.Width == 0 {
				sb.WriteString(rankSeparator)
			} else {
				sb.WriteString(cellSeparator)
			}
		}
		sb.WriteString(piece.String())
	}
	sb.WriteString(fieldSep)
	sb.WriteString(p.Turn.String())
	if extended {
		sb.WriteString(fieldSep)
		sb.WriteString(p.Geometry.SquareName(p.EnPassant))
		sb.WriteString(fieldSep)
		sb.WriteString(strconv.Itoa(p.HalfMoves))
		sb.WriteString(fieldSep)
		sb.WriteString(strconv.Itoa(int(p.Castling)))
	}
	return sb.String()
}

func (p Position) String() string {
	return p.Encode(true)
}

// Key is the search key of a position under a rule set: the extended encoding with fields the
// rules make irrelevant zeroed, so positions that play identically share one key.
func (p Position) Key(rules RuleSet) string {
	if !rules.FiftyMove {
		p.HalfMoves = 0
	}
	if !rules.EnPassant {
		p.EnPassant = NoSquare
	}
	if !rules.Castling {
		p.Castling = NoCastling
	}
	return p.Encode(true)
}
