package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElizaNeverFails(t *testing.T) {
	e := NewEliza()
	inputs := []string{
		"hello", "I need a vacation", "why can't I sleep?",
		"because I said so", "you are a machine", "", "asdfghjkl",
	}
	for _, in := range inputs {
		reply, err := e.Respond(context.Background(), in)
		require.NoError(t, err, "input %q", in)
		require.NotEmpty(t, reply, "input %q", in)
	}
}

func TestElizaReflectsCapturedFragment(t *testing.T) {
	e := NewEliza()
	reply, err := e.Respond(context.Background(), "I need my coffee")
	require.NoError(t, err)
	require.Equal(t, "Why do you need your coffee?", reply)
}

func TestElizaRotatesResponses(t *testing.T) {
	e := NewEliza()

	first, err := e.Respond(context.Background(), "hello")
	require.NoError(t, err)
	second, err := e.Respond(context.Background(), "hello")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The rotation wraps back around.
	third, err := e.Respond(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, first, third)
}

func TestElizaIsDeterministic(t *testing.T) {
	a := NewEliza()
	b := NewEliza()
	script := []string{"hi", "I am tired", "I am tired", "something random", "no"}
	for _, in := range script {
		ra, err := a.Respond(context.Background(), in)
		require.NoError(t, err)
		rb, err := b.Respond(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, ra, rb, "input %q", in)
	}
}
