package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		`{"env":"SERVER","userAgent":"","isAPIFailure":false,"message":"Error: boom","requestUrl":"","reduxInfo":null,"stack":"Error: boom\n    at main.go:3"}`,
		`plain text line`,
		`{"level":"INFO","msg":"listening"}`,
		`{"error":{"env":"CLIENT","message":"Error: wrapped","reduxInfo":null}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(in), &out))

	got := out.String()
	assert.Contains(t, got, "  \"message\": \"Error: boom\"")
	assert.Contains(t, got, "Error: boom\n    at main.go:3")
	assert.Contains(t, got, "plain text line\n")
	assert.Contains(t, got, `{"level":"INFO","msg":"listening"}`+"\n")
	assert.Contains(t, got, "  \"env\": \"CLIENT\"")
	assert.Contains(t, got, "\"message\": \"Error: wrapped\"")
}

func TestRun_EmptyInput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}
