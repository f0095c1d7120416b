package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_WithName(t *testing.T) {
	backend, server := newFakeBackend(t)

	cmd := newAddCmd(addOptions{clientOptions: testClientOptions(server.URL)})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"aapl", "Apple Inc."})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "Added AAPL (Apple Inc.)\n", out.String())
	h, ok := backend.find("AAPL")
	require.True(t, ok)
	assert.Equal(t, "Apple Inc.", h.Name)
}

func TestAddCmd_NameDefaultsToSymbol(t *testing.T) {
	backend, server := newFakeBackend(t)

	cmd := newAddCmd(addOptions{clientOptions: testClientOptions(server.URL)})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{" msft "})

	require.NoError(t, cmd.Execute())

	h, ok := backend.find("MSFT")
	require.True(t, ok)
	assert.Equal(t, "MSFT", h.Name)
}

func TestAddCmd_JSON(t *testing.T) {
	_, server := newFakeBackend(t)

	opts := addOptions{clientOptions: testClientOptions(server.URL)}
	opts.jsonMode = true
	cmd := newAddCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"AAPL", "Apple Inc."})

	require.NoError(t, cmd.Execute())

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "added", result["status"])
	assert.Equal(t, "AAPL", result["symbol"])
	assert.NotContains(t, result, "quantity")
}

func TestAddCmd_BlankSymbol(t *testing.T) {
	cmd := newAddCmd(addOptions{clientOptions: testClientOptions("http://127.0.0.1:1")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"  "})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol is required")
}

func TestAddCmd_BackendError(t *testing.T) {
	backend, server := newFakeBackend(t)
	backend.fail = http.StatusBadRequest

	cmd := newAddCmd(addOptions{clientOptions: testClientOptions(server.URL)})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"AAPL"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add AAPL")
	assert.Contains(t, err.Error(), "API error (400)")
}
