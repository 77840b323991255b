package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	v "github.com/oddeye/oddeye/pkg/version"
)

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("oddeye")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "oddeye version: "+v.Version)
	require.Contains(t, out.String(), "Go Version:")
}

func TestNewVersionCommand_Short(t *testing.T) {
	cmd := NewVersionCommand("oddeye")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "oddeye version: "+v.Version+"\n", out.String())
}
