package document

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestLoad_IndexesLines(t *testing.T) {
	path := writeFile(t, []byte("alpha\nbeta\ngamma"))

	doc, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 3, doc.LineCount())
	require.Equal(t, "beta", doc.LineText(2))
	require.Equal(t, "gamma", doc.LineText(3))
	require.Equal(t, 16, doc.Len())
	require.Equal(t, 16, doc.ByteLen())
	require.Equal(t, path, doc.Path())
	require.NotEmpty(t, doc.ID())
}

func TestLoad_EmptyFile(t *testing.T) {
	doc, err := Load(writeFile(t, nil))

	require.NoError(t, err, "empty file is not an error")
	require.Equal(t, 0, doc.Len())
	require.Equal(t, 1, doc.LineCount())
	require.Equal(t, "", doc.LineText(1))
}

func TestLoad_TrailingNewlineAddsEmptyLine(t *testing.T) {
	doc, err := Load(writeFile(t, []byte("one\ntwo\n")))

	require.NoError(t, err)
	require.Equal(t, 3, doc.LineCount())
	require.Equal(t, "", doc.LineText(3))
}

func TestLoad_MultiByteCharacters(t *testing.T) {
	doc, err := Load(writeFile(t, []byte("héllo\n日本語")))

	require.NoError(t, err)
	require.Equal(t, 9, doc.Len(), "length counts characters, not bytes")
	require.Equal(t, 16, doc.ByteLen())
	require.Equal(t, []rune("日本語"), doc.LineRunes(2))
	require.Equal(t, 3, doc.LineLength(2))
}

func TestLoad_StripsBOM(t *testing.T) {
	doc, err := Load(writeFile(t, []byte("\xEF\xBB\xBFhi")))

	require.NoError(t, err)
	require.Equal(t, "hi", doc.Text())
	require.Equal(t, 5, doc.ByteLen())
}

func TestLoad_CRLFKeepsCarriageReturn(t *testing.T) {
	doc, err := Load(writeFile(t, []byte("a\r\nb")))

	require.NoError(t, err)
	require.Equal(t, 2, doc.LineCount())
	require.Equal(t, "a\r", doc.LineText(1))
}

func TestLoad_InvalidUTF8(t *testing.T) {
	path := writeFile(t, []byte("ok\n\xff\xfe rest"))

	_, err := Load(path)

	require.ErrorIs(t, err, ErrDecode)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	require.Equal(t, 3, decErr.Offset)
	require.Equal(t, path, decErr.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))

	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, fs.ErrNotExist, "cause stays reachable")
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	require.Equal(t, "open", ioErr.Op)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())

	require.ErrorIs(t, err, ErrIO)
}

func TestLoad_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file modes")
	}
	path := writeFile(t, []byte("secret"))
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := Load(path)

	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestLoad_ReplacesRatherThanMutates(t *testing.T) {
	path := writeFile(t, []byte("first"))
	first, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("second\nversion"), 0o644))
	second, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "first", first.Text(), "earlier document is untouched")
	require.Equal(t, 2, second.LineCount())
	require.NotEqual(t, first.ID(), second.ID())
}
