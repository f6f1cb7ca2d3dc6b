package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/tourneystats/internal/domain/model"
	"github.com/okian/tourneystats/pkg/logger"
	"github.com/okian/tourneystats/pkg/metrics"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

// FileStore reads tournament tables from CSV files and XLSX workbooks. The
// first record of a source is its header row.
type FileStore struct {
	baseDir string
	logger  logger.Logger
	metrics *metrics.Manager
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at the working directory.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		baseDir: ".",
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the on-disk path of src.
func (s *FileStore) Resolve(src Source) string {
	if filepath.IsAbs(src.Path) {
		return src.Path
	}
	return filepath.Join(s.baseDir, src.Path)
}

// Load reads one tournament table.
func (s *FileStore) Load(ctx context.Context, src Source) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Resolve(src)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, src.Name, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		records [][]string
		format  string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		format = formatCSV
		records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		format = formatXLSX
		records, err = readXLSX(path, src.Sheet)
	default:
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("load %s: %w", src.Name, ErrNoHeader)
	}

	table := &model.Table{
		Name:   src.Name,
		Header: records[0],
		Rows:   records[1:],
	}
	if s.metrics != nil {
		s.metrics.RecordTournamentLoaded(format)
	}
	s.logger.Debug(ctx, "tournament table loaded",
		logger.String("tournament", src.Name),
		logger.String("path", path),
		logger.String("format", format),
		logger.Int("rows", table.Len()),
		logger.Int("columns", len(table.Header)),
	)
	return table, nil
}

// LoadAll reads every source in order and stops at the first failure.
func (s *FileStore) LoadAll(ctx context.Context, srcs []Source) ([]*model.Table, error) {
	tables := make([]*model.Table, 0, len(srcs))
	for _, src := range srcs {
		t, err := s.Load(ctx, src)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // spreadsheet exports drop trailing empty cells
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, ErrSheetNotFound
		}
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}
	return f.GetRows(sheet)
}
