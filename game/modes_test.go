package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadModes(t *testing.T) {
	t.Run("decodes modes with their rules", func(t *testing.T) {
		doc := `
modes:
  - name: gardner
    start: "bk,br,bn,br,bn,x,x,wn,wr,wn,wr,wk:w"
  - name: pawns
    start: "br,bn,bk/bp,bp,bp/x,x,x/x,x,x/wp,wp,wp/wr,wn,wk:w"
    rules:
      promotion: true
      en_passant: true
      fifty_move: true
      strategy: risk-seeking
`
		modes, err := LoadModes(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, modes, 2)
		require.Equal(t, DefaultRules(), modes[0].Rules, "Omitted rules should default to all off")
		require.Equal(t, RuleSet{Promotion: true, EnPassant: true, FiftyMove: true, Strategy: RiskSeeking}, modes[1].Rules)

		p, err := modes[1].Position()
		require.NoError(t, err)
		require.Equal(t, 3, p.Geometry.Width)

		mode, ok := FindMode(modes, "gardner")
		require.True(t, ok)
		require.Equal(t, modes[0], mode)
	})

	errs := map[string]string{
		"unknown strategy": "modes:\n  - name: a\n    start: \"bk,x,x,wk:w\"\n    rules: {strategy: reckless}\n",
		"bad start":        "modes:\n  - name: a\n    start: \"bk,x,x,x:w\"\n",
		"unknown field":    "modes:\n  - name: a\n    start: \"bk,x,x,wk:w\"\n    rules: {castle: true}\n",
		"duplicate name":   "modes:\n  - name: a\n    start: \"bk,x,x,wk:w\"\n  - name: a\n    start: \"bk,x,x,wk:w\"\n",
		"empty document":   "",
	}
	for name, doc := range errs {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := LoadModes(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestStrategyText(t *testing.T) {
	for _, s := range []Strategy{Optimal, RiskSeeking, Weak} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var parsed Strategy
		require.NoError(t, parsed.UnmarshalText(text))
		require.Equal(t, s, parsed)
	}
}
