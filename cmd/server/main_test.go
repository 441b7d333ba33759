package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, version+"\n", out.String())
}

func TestServeFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"config", "addr", "log-level", "room-ttl", "sweep-interval"} {
		assert.NotNil(t, root.Flags().Lookup(name), "root flag %s", name)
	}

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
}
