package tabular

import (
	"fmt"

	"evidencelens/adapters/coercer"
	"evidencelens/domain/core"
	"evidencelens/internal"
	"evidencelens/ports"
)

// DataReader selects a table reader for an evidence file by its extension,
// case-insensitively.
type DataReader struct {
	readers []ports.TableReader
}

// NewDataReader creates a reader over the given table readers, consulted in order.
func NewDataReader(readers ...ports.TableReader) *DataReader {
	return &DataReader{readers: readers}
}

// NewDefaultDataReader registers the delimited, spreadsheet and JSON readers.
func NewDefaultDataReader(logger *internal.Logger) *DataReader {
	return NewDataReader(
		NewDelimitedReader(coercer.Default, logger),
		NewSpreadsheetReader(coercer.Default, logger),
		NewRecordsReader(logger),
	)
}

// ReaderFor returns the first registered reader that accepts filename.
func (d *DataReader) ReaderFor(filename string) (ports.TableReader, error) {
	for _, reader := range d.readers {
		if reader.CanHandle(filename) {
			return reader, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, filename)
}

// RegisteredReaders returns the names of all registered readers.
func (d *DataReader) RegisteredReaders() []string {
	names := make([]string, len(d.readers))
	for i, reader := range d.readers {
		names[i] = reader.Name()
	}
	return names
}
