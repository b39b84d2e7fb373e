package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	out := &bytes.Buffer{}
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  nova \n")), "Enter name", out)
	require.NoError(t, err)
	assert.Equal(t, "nova", got)
	assert.Equal(t, "Enter name\n> ", out.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "p", out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "p", out)
	require.Error(t, err)
}

func TestGetPassword_Piped(t *testing.T) {
	out := &bytes.Buffer{}
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("s3cret\r\nnext\n")), out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_Terminal(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origTerm, origRead })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }
	pw, err := GetPassword(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []byte("hidden"), pw)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{})
	require.Error(t, err)
}
