package input

import (
	"encoding/base64"
	"testing"

	"evidencelens/internal/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ReadsExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/uploads/trend.csv", []byte("time,amp\n0,1\n"), 0644))

	src, err := NewResolver(fs, 1024).Resolve("/uploads/trend.csv", "trend.csv")
	require.NoError(t, err)
	assert.True(t, src.FromPath)
	assert.Equal(t, "/uploads/trend.csv", src.Path)
	assert.Equal(t, "time,amp\n0,1\n", src.Content)
	assert.Equal(t, int64(13), src.Size)
	assert.False(t, src.Encoded)
}

func TestResolver_InlineContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/uploads", 0755))

	src, err := NewResolver(fs, 1024).Resolve(`time,amp\n0,1`, "trend.csv")
	require.NoError(t, err)
	assert.False(t, src.FromPath)
	assert.Equal(t, `time,amp\n0,1`, src.Content)

	// A directory is not a file to read.
	src, err = NewResolver(fs, 1024).Resolve("/uploads", "trend.csv")
	require.NoError(t, err)
	assert.Equal(t, "/uploads", src.Content)
}

func TestResolver_EncodesRawWorkbook(t *testing.T) {
	fs := afero.NewMemMapFs()
	raw := append([]byte("PK\x03\x04"), []byte("rest of zip")...)
	require.NoError(t, afero.WriteFile(fs, "/book.xlsx", raw, 0644))
	encoded := base64.StdEncoding.EncodeToString(raw)
	require.NoError(t, afero.WriteFile(fs, "/book.b64", []byte(encoded), 0644))

	src, err := NewResolver(fs, 1024).Resolve("/book.xlsx", "Book.XLSX")
	require.NoError(t, err)
	assert.True(t, src.Encoded)
	assert.Equal(t, encoded, src.Content)

	// Already-encoded content passes through.
	src, err = NewResolver(fs, 1024).Resolve("/book.b64", "book.xlsx")
	require.NoError(t, err)
	assert.False(t, src.Encoded)
	assert.Equal(t, encoded, src.Content)
}

func TestResolver_SizeLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/big.csv", make([]byte, 64), 0644))

	_, err := NewResolver(fs, 32).Resolve("/big.csv", "big.csv")
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = NewResolver(fs, 4).Resolve("a,b\n1,2", "inline.csv")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
