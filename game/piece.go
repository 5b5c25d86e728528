package game

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

var pieceLetters = [...]byte{0, 'k', 'q', 'r', 'b', 'n', 'p'}

func (t PieceType) String() string {
	if t == NoPieceType || int(t) >= len(pieceLetters) {
		return ""
	}
	return string(pieceLetters[t])
}

func parsePieceType(letter byte) (PieceType, bool) {
	for t := King; t <= Pawn; t++ {
		if pieceLetters[t] == letter {
			return t, true
		}
	}
	return NoPieceType, false
}

// Piece packs the colour into bit 3 and the type into bits 0-2. The zero value is an empty cell.
type Piece uint8

const NoPiece Piece = 0

func NewPiece(c Color, t PieceType) Piece {
	return Piece(uint8(c)<<3 | uint8(t))
}

func (p Piece) Type() PieceType {
	return PieceType(p & 7)
}

func (p Piece) Color() Color {
	return Color(p >> 3)
}

// String renders the cell token used by the position encoding: "x" for empty, else colour + type.
func (p Piece) String() string {
	if p == NoPiece {
		return "x"
	}
	return p.Color().String() + p.Type().String()
}

func ParsePiece(token string) (Piece, bool) {
	if token == "x" {
		return NoPiece, true
	}
	if len(token) != 2 {
		return NoPiece, false
	}
	var c Color
	switch token[0] {
	case 'w':
		c = White
	case 'b':
		c = Black
	default:
		return NoPiece, false
	}
	t, ok := parsePieceType(token[1])
	if !ok {
		return NoPiece, false
	}
	return NewPiece(c, t), true
}
