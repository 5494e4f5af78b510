package ports

import "evidencelens/domain/evidence"

// TableReader turns the raw content of one evidence file into a table.
type TableReader interface {
	// Name identifies the reader in logs.
	Name() string
	// CanHandle reports whether the reader accepts the file's extension.
	CanHandle(filename string) bool
	// Read parses raw content. Binary formats receive base64 text.
	Read(content string) (*ReadResult, error)
}

// ReadResult is a parsed table plus how it was read.
type ReadResult struct {
	Table *evidence.Table
	// Delimiter is the accepted delimiter for delimited text, or the
	// format label for structured sources.
	Delimiter string
	// DefaultEvidenceType is used when the caller configured no category.
	DefaultEvidenceType string
}

// ReaderSelector picks the table reader for a filename.
type ReaderSelector interface {
	ReaderFor(filename string) (TableReader, error)
}
