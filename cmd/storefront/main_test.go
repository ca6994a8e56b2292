package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())

	listing := out.String()
	for _, want := range []string{
		"/cart/{productID:[0-9]+}",
		"/charge/{price:[0-9]+}",
		"cart.remove",
		"signup",
		"health",
	} {
		assert.Contains(t, listing, want)
	}
	assert.NotContains(t, listing, "/metrics")
}
