// Package filesource reads the dashboard's file inputs: the enriched dataset CSV and the
// forecast YAML file. It also watches the dataset for changes.
package filesource

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/fi-dashboard/internal/domain"
	"github.com/vfg2006/fi-dashboard/pkg/utils"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DatasetReader loads the enriched dataset from its backing store
type DatasetReader interface {
	Read(ctx context.Context) (*domain.Dataset, error)
	Path() string
}

type csvDatasetReader struct {
	path string
}

func NewDatasetReader(path string) DatasetReader {
	return &csvDatasetReader{path: path}
}

func (r *csvDatasetReader) Path() string {
	return r.path
}

func (r *csvDatasetReader) Read(ctx context.Context) (*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadDataset(r.path)
}

// ReadDataset reads the CSV at path and parses its date columns
func ReadDataset(path string) (*domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer file.Close()

	dataset, err := ParseDataset(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parse dataset %s", path)
	}
	return dataset, nil
}

// ParseDataset reads a CSV stream with a header row. Rows may be shorter or longer than
// the header; cells are kept verbatim.
func ParseDataset(r io.Reader) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("dataset has no header row")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), utf8BOM))
	}

	dataset := &domain.Dataset{
		Header: header,
		Rows:   records[1:],
		Dates:  make(map[string][]*time.Time),
	}

	for _, column := range domain.DateColumns {
		if !dataset.HasColumn(column) {
			continue
		}
		parsed := make([]*time.Time, dataset.Len())
		for i := range dataset.Rows {
			parsed[i] = utils.CoerceDate(dataset.Value(i, column))
		}
		dataset.Dates[column] = parsed
	}

	return dataset, nil
}

// WriteCSV serialises the dataset header and rows exactly as they were read
func WriteCSV(w io.Writer, dataset *domain.Dataset) error {
	if dataset == nil {
		return errors.New("no dataset to write")
	}

	writer := csv.NewWriter(w)
	if err := writeRecord(w, writer, dataset.Header); err != nil {
		return errors.Wrap(err, "write dataset header")
	}
	for i, row := range dataset.Rows {
		if err := writeRecord(w, writer, row); err != nil {
			return errors.Wrapf(err, "write dataset row %d", i+1)
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flush dataset")
}

// emptyRecord stands for a record whose only cell is empty; csv.Writer would emit a blank
// line, which readers skip.
const emptyRecord = "\"\"\n"

func writeRecord(w io.Writer, writer *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return writer.Write(record)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, emptyRecord)
	return err
}
