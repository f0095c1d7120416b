package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonandersen/folio/pkg/folioapi"
)

func TestSearchCmd(t *testing.T) {
	backend, server := newFakeBackend(t)
	backend.results = []folioapi.SearchResult{
		{Symbol: "AAPL", Description: "Apple Inc.", Type: "Common Stock"},
		{Symbol: "", Description: "No symbol"},
		{Symbol: "APLE", Type: "REIT"},
	}

	cmd := newSearchCmd(searchOptions{clientOptions: testClientOptions(server.URL)})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"apple", "inc"})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "AAPL")
	assert.Contains(t, output, "Apple Inc.")
	assert.Contains(t, output, "APLE")
	assert.NotContains(t, output, "No symbol")
	assert.Equal(t, []string{"apple inc"}, backend.queries)
}

func TestSearchCmd_CapsResults(t *testing.T) {
	backend, server := newFakeBackend(t)
	for i := 0; i < 15; i++ {
		backend.results = append(backend.results, folioapi.SearchResult{Symbol: fmt.Sprintf("S%02d", i)})
	}

	opts := searchOptions{clientOptions: testClientOptions(server.URL), limit: 50}
	opts.jsonMode = true
	cmd := newSearchCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"s"})

	require.NoError(t, cmd.Execute())

	var results []folioapi.SearchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, folioapi.MaxSearchResults)
	assert.Equal(t, "S09", results[9].Symbol)
}

func TestSearchCmd_Limit(t *testing.T) {
	backend, server := newFakeBackend(t)
	backend.results = []folioapi.SearchResult{{Symbol: "A"}, {Symbol: "B"}, {Symbol: "C"}}

	opts := searchOptions{clientOptions: testClientOptions(server.URL), limit: 2}
	opts.jsonMode = true
	cmd := newSearchCmd(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"x"})

	require.NoError(t, cmd.Execute())

	var results []folioapi.SearchResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestSearchCmd_NoResults(t *testing.T) {
	_, server := newFakeBackend(t)

	cmd := newSearchCmd(searchOptions{clientOptions: testClientOptions(server.URL)})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"zzzz"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "No results found\n", out.String())
}

func TestSearchCmd_BlankQuery(t *testing.T) {
	cmd := newSearchCmd(searchOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{" "})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}
