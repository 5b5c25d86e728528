package game

// StandardRules switches on every rule orthodox chess knows about.
func StandardRules() RuleSet {
	return RuleSet{
		Castling:  true,
		EnPassant: true,
		FiftyMove: true,
		Threefold: true,
		Promotion: true,
		Strategy:  Optimal,
	}
}
