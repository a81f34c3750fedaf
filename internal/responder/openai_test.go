package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAIMissingKeyResolvesAsReply(t *testing.T) {
	o := NewOpenAI(CredentialFunc(func() string { return "" }))

	reply, err := o.Respond(context.Background(), "ping")
	require.NoError(t, err)
	require.Equal(t, missingKeyReply, reply)
}

func TestCredentialFuncReadsPerCall(t *testing.T) {
	key := ""
	src := CredentialFunc(func() string { return key })
	require.Equal(t, "", src.APIKey())

	key = "sk-x"
	require.Equal(t, "sk-x", src.APIKey())
}
