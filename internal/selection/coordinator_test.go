package selection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyVerifiedSelectsAndExpandsFirst(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2", "m3"}, true)

	require.Equal(t, "m1", c.Selected())
	require.Equal(t, "m1", c.Expanded())
}

func TestApplyVerifiedEmptyClearsEverything(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2"}, true)

	c.ApplyVerified(nil, true)

	require.Empty(t, c.Selected())
	require.Empty(t, c.Expanded())
}

func TestApplyVerifiedKeepsSurvivingSelection(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2", "m3"}, true)
	c.Select("m2")
	c.ToggleExpand("m2")

	// m2 survives the refresh, in a different rank position.
	c.ApplyVerified([]string{"m3", "m2"}, true)

	require.Equal(t, "m2", c.Selected())
	require.Equal(t, "m2", c.Expanded())
}

func TestApplyVerifiedClearsStaleExpansionByExactID(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2"}, true)
	c.ToggleExpand("m2")
	require.Equal(t, "m2", c.Expanded())

	// m2 is gone; auto-expand replaces it with the new top trade.
	c.ApplyVerified([]string{"m3", "m4"}, true)
	require.Equal(t, "m3", c.Expanded())

	// Without auto-expand a stale expansion just clears.
	c.ToggleExpand("m4")
	c.ApplyVerified([]string{"m5"}, false)
	require.Empty(t, c.Expanded())
}

func TestToggleExpandIsIdempotentPair(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2"}, false)

	c.ToggleExpand("m2")
	require.True(t, c.IsExpanded("m2"))

	c.ToggleExpand("m2")
	require.False(t, c.IsExpanded("m2"))
	require.Empty(t, c.Expanded())
}

func TestExpandAndSelectAreIndependent(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2", "m3"}, false)

	c.Select("m1")
	c.ToggleExpand("m3")

	// Browsing the list must not collapse the open detail.
	c.Select("m2")
	require.Equal(t, "m2", c.Selected())
	require.Equal(t, "m3", c.Expanded())

	// Toggling a detail must not move the cursor.
	c.ToggleExpand("m1")
	require.Equal(t, "m2", c.Selected())
	require.Equal(t, "m1", c.Expanded())
}

func TestOnlyOneExpandedAtATime(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2"}, false)

	c.ToggleExpand("m1")
	c.ToggleExpand("m2")

	require.False(t, c.IsExpanded("m1"))
	require.True(t, c.IsExpanded("m2"))
}

func TestCollapseAllClosesDetailKeepsSelection(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1", "m2"}, true)
	c.Select("m2")

	c.CollapseAll()
	require.Empty(t, c.Expanded())
	require.Equal(t, "m2", c.Selected())
}

func TestSelectUnknownIDIgnored(t *testing.T) {
	c := NewCoordinator(nil)
	c.ApplyVerified([]string{"m1"}, false)

	c.Select("nope")
	require.Equal(t, "m1", c.Selected())

	c.SelectIndex(5)
	require.Equal(t, "m1", c.Selected())
}

func TestSelectionCallbackFiresOnChangeOnly(t *testing.T) {
	var fired []string
	c := NewCoordinator(func(id string) { fired = append(fired, id) })

	c.ApplyVerified([]string{"m1", "m2"}, true)
	c.Select("m2")
	c.Select("m2") // no-op, must not fire again
	c.ToggleExpand("m1")

	require.Equal(t, []string{"m1", "m2"}, fired)
}
