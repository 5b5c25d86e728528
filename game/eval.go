package game

// Material values in centipawns, indexed by piece type.
var PieceValue = [...]int{
	NoPieceType: 0,
	King:        0,
	Queen:       900,
	Rook:        500,
	Bishop:      330,
	Knight:      320,
	Pawn:        100,
}

// Piece-square tables on a native 8x8 grid from White's perspective, index 0 = a1.
var (
	pawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -20, -20, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, 5, 10, 25, 25, 10, 5, 5,
		10, 10, 20, 30, 30, 20, 10, 10,
		50, 50, 50, 50, 50, 50, 50, 50,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightTable = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopTable = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookTable = [64]int{
		0, 0, 0, 5, 5, 0, 0, 0,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	queenTable = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 5, 5, 5, 5, 5, 0, -10,
		0, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMiddlegameTable = [64]int{
		20, 30, 10, 0, 0, 10, 30, 20,
		20, 20, 0, 0, 0, 0, 20, 20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	kingEndgameTable = [64]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -40, -30, -20, -20, -30, -40, -50,
	}
)

const endgameMaterial = 1300

// IsEndgame: no queens on the board, or either side down to less than a rook and a minor.
func IsEndgame(p Position) bool {
	var material [2]int
	queens := false
	for _, piece := range p.Cells {
		if piece == NoPiece {
			continue
		}
		material[piece.Color()] += PieceValue[piece.Type()]
		if piece.Type() == Queen {
			queens = true
		}
	}
	return !queens || material[White] < endgameMaterial || material[Black] < endgameMaterial
}

// tableIndex projects a board square onto the 8x8 table as seen by colour c. Ranks are
// stretched so the first and last rank of any board land on the table's first and last rank;
// files keep their relative centre position, so a single file scores like the e-file.
func tableIndex(g Geometry, sq Square, c Color) int {
	rank := g.Rank(sq) - 1
	if c == Black {
		rank = g.Height - 1 - rank
	}
	tableRank := (rank*7 + (g.Height-1)/2) / (g.Height - 1)
	tableFile := (2*g.Col(sq) + 1) * 8 / (2 * g.Width)
	return tableRank*8 + tableFile
}

func squareBonus(g Geometry, piece Piece, sq Square, endgame bool) int {
	var table *[64]int
	switch piece.Type() {
	case Pawn:
		table = &pawnTable
	case Knight:
		table = &knightTable
	case Bishop:
		table = &bishopTable
	case Rook:
		table = &rookTable
	case Queen:
		table = &queenTable
	case King:
		table = &kingMiddlegameTable
		if endgame {
			table = &kingEndgameTable
		}
	default:
		return 0
	}
	return table[tableIndex(g, sq, piece.Color())]
}

// Evaluate is the static evaluation: material plus piece-square bonuses, positive when the
// side to move stands better.
func Evaluate(p Position) int {
	endgame := IsEndgame(p)
	score := 0
	for i, piece := range p.Cells {
		if piece == NoPiece {
			continue
		}
		value := PieceValue[piece.Type()] + squareBonus(p.Geometry, piece, Square(i), endgame)
		if piece.Color() == White {
			score += value
		} else {
			score -= value
		}
	}
	if p.Turn == Black {
		return -score
	}
	return score
}

// EvaluateMaterial counts material only.
func EvaluateMaterial(p Position) int {
	score := 0
	for _, piece := range p.Cells {
		if piece == NoPiece {
			continue
		}
		if piece.Color() == p.Turn {
			score += PieceValue[piece.Type()]
		} else {
			score -= PieceValue[piece.Type()]
		}
	}
	return score
}
