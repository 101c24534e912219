package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var w bytes.Buffer

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  a@b.com \n")), "Enter email", &w)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got)
	assert.Equal(t, "Enter email\n> ", w.String())

	got, err = GetSimpleText(bufio.NewReader(strings.NewReader("partial")), "x", io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "x", io.Discard)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetPassword_Piped(t *testing.T) {
	in := strings.NewReader("s3cret\r\nnext\n")

	pw, err := GetPassword(in, bufio.NewReader(in), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))

	_, err = GetPassword(strings.NewReader(""), bufio.NewReader(strings.NewReader("")), io.Discard)
	require.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	origTerm, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origTerm, origRead })

	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("hidden"), nil }

	var w bytes.Buffer
	pw, err := GetPassword(os.Stdin, bufio.NewReader(strings.NewReader("")), &w)
	require.NoError(t, err)
	assert.Equal(t, "hidden", string(pw))
	assert.Equal(t, "Enter password: \n", w.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("tty gone") }
	_, err = GetPassword(os.Stdin, bufio.NewReader(strings.NewReader("")), io.Discard)
	require.Error(t, err)
}
