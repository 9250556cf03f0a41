package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/santa/lang"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func readSources(t *testing.T, stdin string, paths ...string) (string, []string) {
	t.Helper()

	src, err := openSources(paths, strings.NewReader(stdin))
	require.NoError(t, err)

	t.Cleanup(func() { assert.NoError(t, src.Close()) })

	data, err := io.ReadAll(src)
	require.NoError(t, err)

	return string(data), src.Names()
}

func TestOpenSources_Stdin(t *testing.T) {
	data, names := readSources(t, "x = 1;")
	assert.Equal(t, "x = 1;", data)
	assert.Equal(t, []string{"-"}, names)
}

func TestOpenSources_Order(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.santa", "a = 1;")
	b := writeFile(t, dir, "b.santa", "b = 2;")

	data, names := readSources(t, "c = 3;", "-", b, a)
	assert.Equal(t, "b = 2;\na = 1;\nc = 3;", data)
	assert.Equal(t, []string{b, a, "-"}, names)
}

func TestOpenSources_Dedup(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.santa", "a = 1;")

	link := filepath.Join(dir, "link.santa")
	require.NoError(t, os.Symlink(a, link))

	rel, err := filepath.Rel(mustGetwd(t), a)
	require.NoError(t, err)

	data, names := readSources(t, "", a, link, rel, "-", "-")
	assert.Equal(t, "a = 1;\n", data)
	assert.Equal(t, []string{a, "-"}, names)
}

func TestOpenSources_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.santa", "a = 1;")

	_, err := openSources([]string{a, filepath.Join(dir, "missing.santa")}, nil)
	require.ErrorIs(t, err, ErrReadSource)
	assert.Contains(t, err.Error(), "read source")

	_, err = openSources([]string{dir}, nil)
	require.ErrorIs(t, err, ErrReadSource)
	assert.ErrorIs(t, err, errIsDir)
}

func mustGetwd(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)

	return wd
}

func TestError(t *testing.T) {
	err := ErrWriteConfig.Wrap(ErrFileExists)
	assert.ErrorIs(t, err, ErrWriteConfig)
	assert.ErrorIs(t, err, ErrFileExists)
	assert.NotErrorIs(t, err, ErrMarshal)
	assert.Equal(t, "write configuration file: file exists (use --force to overwrite)", err.Error())


	var lerr *lang.Error
	require.ErrorAs(t, ErrReadSource.Wrap(io.EOF), &lerr)
	assert.Equal(t, "read source: EOF", lerr.Error())
	assert.ErrorIs(t, lerr, io.EOF)
}
