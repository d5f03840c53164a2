package command

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContextCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addContextFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestQueryContextFromFlags(t *testing.T) {
	assert.Nil(t, queryContextFromFlags(newContextCmd(t)))

	qctx := queryContextFromFlags(newContextCmd(t, "--location", "Oslo", "--time-of-day", "evening"))
	require.NotNil(t, qctx)
	assert.Equal(t, "Oslo", qctx.Location)
	assert.Equal(t, "evening", qctx.TimeOfDay)
	assert.Nil(t, qctx.Temperature)

	// zero degrees is a real reading
	qctx = queryContextFromFlags(newContextCmd(t, "--temperature", "0"))
	require.NotNil(t, qctx)
	require.NotNil(t, qctx.Temperature)
	assert.Equal(t, 0.0, *qctx.Temperature)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"recommend", "ingredients"},
		{"recommend", "mood"},
		{"recommend", "feedback"},
		{"chat"},
		{"greeting"},
		{"ingredients"},
		{"moods"},
		{"recipes", "list"},
		{"recipes", "get"},
		{"favorites", "toggle"},
		{"token", "issue"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}
