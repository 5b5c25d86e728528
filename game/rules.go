package game

import (
	"fmt"
	"strings"
)

type Strategy uint8

const (
	Optimal Strategy = iota
	RiskSeeking
	Weak
)

var strategyNames = [...]string{"optimal", "risk-seeking", "weak"}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", s)
}

func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Strategy(i), nil
		}
	}
	return Optimal, fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// RuleSet is a flat, immutable record of the optional rules in force. It is passed by value.
type RuleSet struct {
	Castling  bool     `yaml:"castling" json:"castling"`
	EnPassant bool     `yaml:"en_passant" json:"en_passant"`
	FiftyMove bool     `yaml:"fifty_move" json:"fifty_move"`
	Threefold bool     `yaml:"threefold" json:"threefold"`
	Promotion bool     `yaml:"promotion" json:"promotion"`
	Strategy  Strategy `yaml:"strategy" json:"strategy"`
}

// DefaultRules has every optional rule switched off and plays optimally.
func DefaultRules() RuleSet {
	return RuleSet{Strategy: Optimal}
}

func (r RuleSet) WithStrategy(s Strategy) RuleSet {
	r.Strategy = s
	return r
}
