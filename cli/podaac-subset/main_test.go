package main

import (
	"bytes"
	"testing"

	"github.com/glorpus-work/podaac-subset/internal/cli"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"tokens", "config", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "verbose", "output", "netrc"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
	for _, flag := range []string{"ext", "out-dir", "variables", "progress", "dry-run", "strict"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestRootCmd_InvalidDateExitsWithFailure(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"2020-01-01", "2020-01-02T00:00:00", "MUR-JPL-L4-GLOB-v4.1",
		"--config", t.TempDir() + "/config.yaml"})

	err := cmd.Execute()
	require.ErrorIs(t, err, errors.ErrInvalidDate)
	assert.Equal(t, cli.ExitCodeFailure, cli.ExitCode(err))
}

func TestRootCmd_Version(t *testing.T) {
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version", "--config", t.TempDir() + "/config.yaml"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "podaac-subset version "+cli.Version)
}
