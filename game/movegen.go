package game

var (
	gridPromotions = []PieceType{Queen, Rook, Bishop, Knight}
	filePromotions = []PieceType{Rook, Knight}
)

func LegalMoves(p Position, rules RuleSet) []Move {
	return p.LegalMoves(rules)
}

// LegalMoves generates pseudo-legal moves and drops every move that leaves the mover's king
// attacked. Castling is never generated even when castling rights are tracked.
func (p Position) LegalMoves(rules RuleSet) []Move {
	pseudo := p.pseudoLegalMoves(rules)
	legal := pseudo[:0]
	for _, m := range pseudo {
		if !p.exposesKing(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (p Position) HasLegalMove(rules RuleSet) bool {
	for _, m := range p.pseudoLegalMoves(rules) {
		if !p.exposesKing(m) {
			return true
		}
	}
	return false
}

func (p Position) pseudoLegalMoves(rules RuleSet) []Move {
	moves := make([]Move, 0, 16)
	for i, piece := range p.Cells {
		if piece == NoPiece || piece.Color() != p.Turn {
			continue
		}
		from := Square(i)
		switch piece.Type() {
		case King:
			moves = p.leaperMoves(from, kingSteps, moves)
		case Knight:
			moves = p.leaperMoves(from, p.Geometry.knightOffsets(), moves)
		case Rook:
			moves = p.sliderMoves(from, orthogonal, moves)
		case Bishop:
			moves = p.sliderMoves(from, diagonal, moves)
		case Queen:
			moves = p.sliderMoves(from, orthogonal, moves)
			moves = p.sliderMoves(from, diagonal, moves)
		case Pawn:
			moves = p.pawnMoves(from, rules, moves)
		}
	}
	return moves
}

func (p Position) leaperMoves(from Square, offsets []offset, moves []Move) []Move {
	for _, o := range offsets {
		to, ok := p.Geometry.Step(from, o.dRow, o.dCol)
		if !ok {
			continue
		}
		if target := p.Cells[to]; target == NoPiece || target.Color() != p.Turn {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (p Position) sliderMoves(from Square, dirs []offset, moves []Move) []Move {
	for _, d := range dirs {
		to := from
		for {
			next, ok := p.Geometry.Step(to, d.dRow, d.dCol)
			if !ok {
				break
			}
			to = next
			target := p.Cells[to]
			if target == NoPiece {
				moves = append(moves, Move{From: from, To: to})
				continue
			}
			if target.Color() != p.Turn {
				moves = append(moves, Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

func (p Position) pawnMoves(from Square, rules RuleSet, moves []Move) []Move {
	g := p.Geometry
	dRow := forward(p.Turn)
	if to, ok := g.Step(from, dRow, 0); ok && p.Cells[to] == NoPiece {
		moves = p.appendPawnMove(from, to, rules, moves)
		if g.Row(from) == pawnStartRow(g, p.Turn) {
			if double, ok := g.Step(to, dRow, 0); ok && p.Cells[double] == NoPiece {
				moves = p.appendPawnMove(from, double, rules, moves)
			}
		}
	}
	for _, dCol := range []int{-1, 1} {
		to, ok := g.Step(from, dRow, dCol)
		if !ok {
			continue
		}
		target := p.Cells[to]
		switch {
		case target != NoPiece && target.Color() != p.Turn:
			moves = p.appendPawnMove(from, to, rules, moves)
		case target == NoPiece && rules.EnPassant && to == p.EnPassant:
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (p Position) appendPawnMove(from, to Square, rules RuleSet, moves []Move) []Move {
	if !rules.Promotion || p.Geometry.Row(to) != promotionRow(p.Geometry, p.Turn) {
		return append(moves, Move{From: from, To: to})
	}
	promotions := gridPromotions
	if p.Geometry.Linear() {
		promotions = filePromotions
	}
	for _, t := range promotions {
		moves = append(moves, Move{From: from, To: to, Promotion: t})
	}
	return moves
}

// pawnStartRow is rank 2 for White and rank H-1 for Black.
func pawnStartRow(g Geometry, c Color) int {
	if c == White {
		return g.Height - 2
	}
	return 1
}

func promotionRow(g Geometry, c Color) int {
	if c == White {
		return 0
	}
	return g.Height - 1
}

// exposesKing plays m on a scratch board and reports whether the mover's king is attacked.
func (p Position) exposesKing(m Move) bool {
	cells := make([]Piece, len(p.Cells))
	copy(cells, p.Cells)
	placePiece(cells, p.Geometry, m)
	king := m.To
	if cells[m.To].Type() != King {
		king = kingSquare(cells, p.Turn)
	}
	return Attacked(cells, p.Geometry, king, p.Turn.Other())
}

// placePiece moves the piece on the board, handling promotion and the en passant capture.
// It returns the captured piece, if any.
func placePiece(cells []Piece, g Geometry, m Move) Piece {
	piece := cells[m.From]
	captured := cells[m.To]
	if piece.Type() == Pawn && captured == NoPiece && g.Col(m.From) != g.Col(m.To) {
		// en passant: the passed pawn sits beside the mover, not on the target square
		passed, _ := g.Square(g.Row(m.From), g.Col(m.To))
		captured = cells[passed]
		cells[passed] = NoPiece
	}
	if m.Promotion != NoPieceType {
		piece = NewPiece(piece.Color(), m.Promotion)
	}
	cells[m.To] = piece
	cells[m.From] = NoPiece
	return captured
}
