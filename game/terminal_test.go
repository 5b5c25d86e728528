package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestTerminal(t *testing.T) {
	tests := []struct {
		name     string
		position string
		rules    RuleSet
		want     Status
	}{
		{"rook mates the white king", "bk,x,x,x,x,x,x,x,x,br,x,wk:w", DefaultRules(), WhiteMated},
		{"rook mates the black king", "bk,x,wr,x,x,x,x,x,x,x,x,wk:b", DefaultRules(), BlackMated},
		{"boxed-in king is stalemated", "bk,x,wk,x,x,x:b", DefaultRules(), Stalemate},
		{"start position is live", "bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w", DefaultRules(), NotTerminal},
		{"mate outranks the fifty-move draw", "bk,x,x,x,x,x,x,x,x,br,x,wk:w:-:120:0", StandardRules(), WhiteMated},
		{"fifty-move draw with moves available", "bk,x,x,x,x,x,x,wn,x,x,x,wk:w:-:100:0", StandardRules(), DrawFifty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustParse(t, tt.position)
			require.Equal(t, tt.want, Terminal(p, tt.rules))
		})
	}
}

func TestTerminalIsExhaustive(t *testing.T) {
	starts := []string{
		"bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w",
		"bk,bn,br,bp,x,x,wp,wr,wn,wk:w",
		"br,bn,bk/bp,bp,bp/x,x,x/x,x,x/wp,wp,wp/wr,wn,wk:w",
	}
	rng := rand.New(rand.NewSource(11))
	rules := StandardRules()
	for _, s := range starts {
		for round := 0; round < 20; round++ {
			p := mustParse(t, s)
			for ply := 0; ply < 200; ply++ {
				status := Terminal(p, rules)
				moves := p.LegalMoves(rules)
				if len(moves) == 0 {
					require.Contains(t, []Status{Stalemate, WhiteMated, BlackMated}, status,
						"Position %s without moves must be mate or stalemate", p)
					require.Equal(t, p.InCheck(), status.Mate())
				}
				if status == NotTerminal {
					require.NotEmpty(t, moves, "Live position %s should have moves", p)
				}
				if status.Terminal() {
					break
				}
				p = p.Play(moves[rng.Intn(len(moves))], rules)
			}
		}
	}
}
