package game

type offset struct {
	dRow, dCol int
}

var (
	orthogonal  = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal    = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	kingSteps   = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	knightLeaps = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	fileLeaps   = []offset{{-2, 0}, {2, 0}}
)

// knightOffsets: on a single file the knight leaps exactly two squares along the file.
func (g Geometry) knightOffsets() []offset {
	if g.Linear() {
		return fileLeaps
	}
	return knightLeaps
}

// forward is the row direction a colour's pawns advance in. White starts at the bottom.
func forward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// Attacked reports whether sq is attacked by any piece of colour by. It walks each attacker's
// movement pattern in reverse from sq.
func Attacked(cells []Piece, g Geometry, sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}
	pawn := NewPiece(by, Pawn)
	for _, dCol := range []int{-1, 1} {
		if from, ok := g.Step(sq, -forward(by), dCol); ok && cells[from] == pawn {
			return true
		}
	}
	if leaperAttacks(cells, g, sq, g.knightOffsets(), NewPiece(by, Knight)) ||
		leaperAttacks(cells, g, sq, kingSteps, NewPiece(by, King)) {
		return true
	}
	queen := NewPiece(by, Queen)
	return sliderAttacks(cells, g, sq, orthogonal, NewPiece(by, Rook), queen) ||
		sliderAttacks(cells, g, sq, diagonal, NewPiece(by, Bishop), queen)
}

func leaperAttacks(cells []Piece, g Geometry, sq Square, offsets []offset, attacker Piece) bool {
	for _, o := range offsets {
		if from, ok := g.Step(sq, o.dRow, o.dCol); ok && cells[from] == attacker {
			return true
		}
	}
	return false
}

func sliderAttacks(cells []Piece, g Geometry, sq Square, dirs []offset, slider, queen Piece) bool {
	for _, d := range dirs {
		from := sq
		for {
			next, ok := g.Step(from, d.dRow, d.dCol)
			if !ok {
				break
			}
			from = next
			if piece := cells[from]; piece != NoPiece {
				if piece == slider || piece == queen {
					return true
				}
				break
			}
		}
	}
	return false
}
