package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvProviderSignInSignOut(t *testing.T) {
	t.Setenv("EDGEDESK_API_KEY", "")
	p := NewEnvProvider()
	require.False(t, p.CurrentSession().Authenticated())

	var seen []Session
	p.OnSessionChange(func(s Session) { seen = append(seen, s) })

	require.NoError(t, p.SignIn("sk-test"))
	require.True(t, p.CurrentSession().Authenticated())
	require.Equal(t, "manual", p.CurrentSession().Source)

	p.SignOut()
	require.False(t, p.CurrentSession().Authenticated())

	require.Len(t, seen, 2)
	require.Equal(t, "sk-test", seen[0].APIKey)
	require.Empty(t, seen[1].APIKey)
}

func TestEnvProviderReadsEnvironment(t *testing.T) {
	t.Setenv("EDGEDESK_API_KEY", "from-env")
	p := NewEnvProvider()

	s := p.CurrentSession()
	require.True(t, s.Authenticated())
	require.Equal(t, "env", s.Source)
}
