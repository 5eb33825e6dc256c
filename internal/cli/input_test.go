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

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origTerm, origRead := isTerminal, readPassword
	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) { return pw, err }
	t.Cleanup(func() {
		isTerminal = origTerm
		readPassword = origRead
	})
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  alice@example.org \nnext\n"))

	got, err := GetSimpleText(r, "Enter email", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.org", got)
	assert.Equal(t, "Enter email\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("tail"))
	got, err := GetSimpleText(r, "p", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "tail", got)

	_, err = GetSimpleText(r, "p", &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("s3cret"), nil)
	var out bytes.Buffer

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), "Enter password", &out)
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), pw)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("tty gone"))

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), "Enter password", &bytes.Buffer{})
	require.EqualError(t, err, "tty gone")
}

func TestGetPassword_Piped(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	pw, err := GetPassword(bufio.NewReader(strings.NewReader("Abcd1234\n")), "Enter password", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []byte("Abcd1234"), pw)
}
