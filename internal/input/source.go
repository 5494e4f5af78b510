package input

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"

	"evidencelens/internal/errors"

	"github.com/spf13/afero"
)

// zipMagic opens every XLSX workbook.
var zipMagic = []byte("PK\x03\x04")

// Source is the resolved content of one evidence argument.
type Source struct {
	Content  string
	Path     string // empty when the argument was the content itself
	Size     int64
	Encoded  bool // raw workbook bytes were base64-encoded on read
	FromPath bool
}

// Resolver turns a CLI argument into evidence content. An argument naming an
// existing regular file is read from the filesystem; anything else is taken
// as inline content.
type Resolver struct {
	fs       afero.Fs
	maxBytes int64
}

// NewResolver creates a resolver over fs that rejects content above maxBytes.
func NewResolver(fs afero.Fs, maxBytes int64) *Resolver {
	return &Resolver{fs: fs, maxBytes: maxBytes}
}

// NewOsResolver resolves against the real filesystem.
func NewOsResolver(maxBytes int64) *Resolver {
	return NewResolver(afero.NewOsFs(), maxBytes)
}

// Resolve reads arg. filename decides whether raw workbook bytes need to be
// base64-encoded for the spreadsheet reader.
func (r *Resolver) Resolve(arg, filename string) (*Source, error) {
	info, err := r.fs.Stat(arg)
	if err != nil || info.IsDir() {
		if int64(len(arg)) > r.maxBytes {
			return nil, errors.InvalidInput(fmt.Sprintf("inline content is %d bytes, limit is %d", len(arg), r.maxBytes))
		}
		return &Source{Content: arg, Size: int64(len(arg))}, nil
	}

	if info.Size() > r.maxBytes {
		return nil, errors.InvalidInput(fmt.Sprintf("%s is %d bytes, limit is %d", arg, info.Size(), r.maxBytes))
	}
	data, err := afero.ReadFile(r.fs, arg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", arg)
	}

	src := &Source{Content: string(data), Path: arg, Size: int64(len(data)), FromPath: true}
	if isWorkbook(filename) && bytes.HasPrefix(data, zipMagic) {
		src.Content = base64.StdEncoding.EncodeToString(data)
		src.Encoded = true
	}
	return src, nil
}

func isWorkbook(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}
