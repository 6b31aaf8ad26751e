package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTradePlanMatches(t *testing.T) {
	trade := &TradePlan{
		Title:       "Bitcoin above $100,000 today",
		EventTicker: "KXBTCD-25AUG25",
	}

	require.True(t, trade.Matches(""))
	require.True(t, trade.Matches("bitcoin"))
	require.True(t, trade.Matches("BITCOIN"))
	require.True(t, trade.Matches("kxbtcd"))
	require.True(t, trade.Matches("above $100"))
	require.False(t, trade.Matches("ethereum"))
}

func TestHasThoughtChain(t *testing.T) {
	var v VerifiedTrade
	require.False(t, v.HasThoughtChain())

	v.ReasoningAudit = "flat audit text"
	require.False(t, v.HasThoughtChain())

	v.ThoughtChain = []ThoughtStep{{StepNumber: 1, Thought: "checking source"}}
	require.True(t, v.HasThoughtChain())
}
