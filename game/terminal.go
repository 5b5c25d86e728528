package game

type Status uint8

const (
	NotTerminal Status = iota
	Stalemate
	WhiteMated
	BlackMated
	DrawFifty
	DrawThreefold
)

var statusNames = [...]string{"not-terminal", "stalemate", "white-mated", "black-mated", "draw-fifty", "draw-threefold"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

func (s Status) Terminal() bool {
	return s != NotTerminal
}

func (s Status) Mate() bool {
	return s == WhiteMated || s == BlackMated
}

func (s Status) Draw() bool {
	return s.Terminal() && !s.Mate()
}

// Terminal classifies p. A side without legal moves is mated when in check and stalemated
// otherwise; the fifty-move and threefold draws apply only when their flags are on.
func Terminal(p Position, rules RuleSet) Status {
	return Classify(p, rules, p.HasLegalMove(rules))
}

// Classify is Terminal for callers that already know whether p has a legal move.
func Classify(p Position, rules RuleSet, hasMoves bool) Status {
	if !hasMoves {
		if !p.InCheck() {
			return Stalemate
		}
		if p.Turn == White {
			return WhiteMated
		}
		return BlackMated
	}
	if rules.FiftyMove && p.HalfMoves >= 100 {
		return DrawFifty
	}
	if rules.Threefold && p.RepetitionCount() >= 3 {
		return DrawThreefold
	}
	return NotTerminal
}

func (p Position) Terminal(rules RuleSet) Status {
	return Terminal(p, rules)
}
