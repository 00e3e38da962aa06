package mindhunter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/paveg/mindhunter/internal/common"
	"github.com/paveg/mindhunter/internal/config"
	"github.com/paveg/mindhunter/internal/dataframe"
	"github.com/paveg/mindhunter/internal/errors"
	mhio "github.com/paveg/mindhunter/internal/io"
	"github.com/paveg/mindhunter/internal/stats"
	"github.com/paveg/mindhunter/internal/validation"
)

// ColumnStatistics is the cached record of one numeric column.
type ColumnStatistics = stats.ColumnStatistics

// NormalityReport is the result of CheckNormality.
type NormalityReport = stats.NormalityReport

// Config holds the analyzer settings.
type Config = config.Config

// Error is the error type returned by analyzer operations.
type Error = errors.DataFrameError

// NewConfig returns the default configuration.
func NewConfig() Config {
	return config.NewConfig()
}

// IsNotFound reports whether err means a column has no cached statistics.
func IsNotFound(err error) bool {
	return errors.IsNotFound(err)
}

// Analyzer owns a private copy of a dataset together with the statistics cache
// built from it. The cache is computed once at construction and again on Replace
// or Rebuild; Clean changes the data but leaves the cache alone.
//
// An Analyzer is not safe for concurrent use without external synchronization.
type Analyzer struct {
	df     *dataframe.DataFrame
	cache  *stats.Cache
	config Config
	logger *slog.Logger
	mem    memory.Allocator
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConfig sets the configuration. Zero fields take their defaults.
func WithConfig(cfg Config) Option {
	return func(a *Analyzer) {
		a.config = cfg.WithDefaults()
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAllocator sets the Arrow allocator used for the analyzer's copies.
func WithAllocator(mem memory.Allocator) Option {
	return func(a *Analyzer) {
		if mem != nil {
			a.mem = mem
		}
	}
}

// New copies df and builds the statistics cache. Later changes to, or release
// of, df are not visible to the analyzer.
func New(df *DataFrame, opts ...Option) (*Analyzer, error) {
	if df == nil {
		return nil, errors.NewInvalidInputError("New", "nil DataFrame")
	}
	a, err := newAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	a.install(df.df.Clone(a.mem))
	return a, nil
}

func newAnalyzer(opts []Option) (*Analyzer, error) {
	a := &Analyzer{
		config: config.NewConfig(),
		logger: slog.Default(),
		mem:    memory.NewGoAllocator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := a.config.Validate(); err != nil {
		return nil, errors.NewValidationError("New", "", err.Error())
	}
	return a, nil
}

// ReadCSV ingests delimited text and builds an Analyzer over it.
func ReadCSV(r io.Reader, opts ...Option) (*Analyzer, error) {
	a, err := newAnalyzer(opts)
	if err != nil {
		return nil, err
	}

	options := mhio.DefaultCSVOptions()
	options.Delimiter = a.config.DelimiterRune()
	options.MissingValues = a.config.MissingValues

	df, err := mhio.NewCSVReader(r, options, a.mem).Read()
	if err != nil {
		return nil, err
	}
	a.install(df)
	return a, nil
}

// LoadFile ingests a .csv, .tsv, .xlsx or .parquet file and builds an Analyzer over it.
func LoadFile(path string, opts ...Option) (*Analyzer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" {
		return ReadCSV(f, opts...)
	}
	if ext == ".tsv" {
		return ReadCSV(f, append(opts, withDelimiter("\t"))...)
	}

	a, err := newAnalyzer(opts)
	if err != nil {
		return nil, err
	}

	var reader mhio.DataReader
	switch ext {
	case ".xlsx":
		options := mhio.DefaultExcelOptions()
		options.MissingValues = a.config.MissingValues
		reader = mhio.NewExcelReader(f, options, a.mem)
	case ".parquet":
		reader = mhio.NewParquetReader(f, a.mem)
	default:
		return nil, errors.NewUnsupportedTypeError("LoadFile", ext)
	}

	df, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	a.install(df)
	return a, nil
}

func withDelimiter(delimiter string) Option {
	return func(a *Analyzer) {
		a.config.Delimiter = delimiter
	}
}

// install takes ownership of df, releases the previous dataset and rebuilds the cache.
func (a *Analyzer) install(df *dataframe.DataFrame) {
	if a.df != nil {
		a.df.Release()
	}
	a.df = df
	a.Rebuild()
}

// Rebuild recomputes the statistics cache from the current dataset.
func (a *Analyzer) Rebuild() {
	a.cache = stats.Build(a.df)
	a.logger.Debug("statistics cache built",
		slog.Int("rows", a.df.Len()),
		slog.Int("columns", a.df.Width()),
		slog.Int("numeric_columns", a.cache.Len()))
}

// Replace substitutes a copy of df for the current dataset and rebuilds the cache.
func (a *Analyzer) Replace(df *DataFrame) error {
	if df == nil {
		return errors.NewInvalidInputError("Replace", "nil DataFrame")
	}
	a.install(df.df.Clone(a.mem))
	return nil
}

// Clean normalizes every column name, then drops rows holding a missing value
// and duplicate rows. Each rune in stripCharacters is replaced by '_' in column
// names; with none given, the configured strip characters are used, or if those
// are empty, every character that is neither a word character nor whitespace.
//
// Clean is idempotent. It does not rebuild the statistics cache; call Rebuild.
// If two columns would share a normalized name Clean fails and changes nothing.
func (a *Analyzer) Clean(stripCharacters ...rune) error {
	if len(stripCharacters) == 0 {
		stripCharacters = []rune(a.config.StripCharacters)
	}
	normalizer := common.NewNameNormalizer(stripCharacters...)

	renamed, err := a.df.Rename(normalizer.NormalizeAll(a.df.Columns()))
	if err != nil {
		return err
	}
	defer renamed.Release()

	complete := renamed.DropMissing(a.mem)
	defer complete.Release()

	rowsBefore := a.df.Len()
	a.df.Release()
	a.df = complete.DropDuplicates(a.mem)

	a.logger.Debug("dataset cleaned",
		slog.Int("rows_before", rowsBefore),
		slog.Int("rows_after", a.df.Len()),
		slog.Any("columns", a.df.Columns()))
	return nil
}

// Select returns the named columns, in the order requested. Unknown names are
// reported as a warning and skipped. The caller owns the result and must release it.
func (a *Analyzer) Select(names ...string) *DataFrame {
	if len(names) == 0 {
		a.logger.Warn("no column names provided")
		return &DataFrame{df: dataframe.New()}
	}

	sel := validation.Partition(a.df, names...)
	if len(sel.Invalid) > 0 {
		a.logger.Warn("columns not found in dataset",
			slog.String("invalid_columns", strings.Join(sel.Invalid, ", ")))
	}
	return &DataFrame{df: a.df.Select(sel.Valid...)}
}

// Columns returns the current column names.
func (a *Analyzer) Columns() []string {
	return a.df.Columns()
}

// DataFrame returns a view of the whole dataset. The view shares immutable
// buffers with the analyzer; the caller owns it and must release it.
func (a *Analyzer) DataFrame() *DataFrame {
	return &DataFrame{df: a.df.Select(a.df.Columns()...)}
}

// StatsFor returns the cached statistics of a numeric column. The error
// satisfies IsNotFound for unknown and non-numeric columns.
func (a *Analyzer) StatsFor(column string) (ColumnStatistics, error) {
	return a.cache.StatsFor(column)
}

// AllStats returns a copy of every cached record.
func (a *Analyzer) AllStats() map[string]ColumnStatistics {
	return a.cache.All()
}

// StatColumns returns the names of the columns that have cached statistics.
func (a *Analyzer) StatColumns() []string {
	return a.cache.Columns()
}

// DescribeLabelColumn is the leading column of a Describe table; it holds the
// row labels.
const DescribeLabelColumn = stats.DescribeLabelColumn

// Describe returns the count, mean, std, min, quartiles and max of the given
// columns, or of every numeric column, as a table read from the cache.
func (a *Analyzer) Describe(columns ...string) (*DataFrame, error) {
	df, err := stats.Describe(a.cache, a.mem, columns...)
	if err != nil {
		return nil, err
	}
	return &DataFrame{df: df}, nil
}

// CoefficientOfVariation computes std/mean for the given columns (all numeric
// columns if none) from the current data. The result is not cached and may
// differ from the cache if the data changed since the last build.
func (a *Analyzer) CoefficientOfVariation(columns ...string) (map[string]float64, error) {
	return stats.CoefficientOfVariation(a.df, columns...)
}

// ZScore standardizes every numeric column of the current data.
// The caller owns the result and must release it.
func (a *Analyzer) ZScore() *DataFrame {
	return &DataFrame{df: stats.ZScore(a.df, a.mem)}
}

// DensityCurve fits a Gaussian to a numeric column and returns grid points
// between the column minimum and maximum with the density at each point.
func (a *Analyzer) DensityCurve(column string) (xs, ys []float64, err error) {
	values, missing, err := a.numeric("DensityCurve", column)
	if err != nil {
		return nil, nil, err
	}
	return stats.DensityCurve(maskMissing(values, missing), a.config.DensityGridSize)
}

// CheckNormality gives a rough, descriptive view of how normal a column looks.
func (a *Analyzer) CheckNormality(column string) (NormalityReport, error) {
	values, missing, err := a.numeric("CheckNormality", column)
	if err != nil {
		return NormalityReport{}, err
	}
	return stats.CheckNormality(maskMissing(values, missing))
}

// Release frees the Arrow memory held by the analyzer.
func (a *Analyzer) Release() {
	if a.df != nil {
		a.df.Release()
		a.df = nil
	}
}

func (a *Analyzer) numeric(op, column string) ([]float64, []bool, error) {
	if err := validation.ValidateColumns(a.df, op, column); err != nil {
		return nil, nil, err
	}
	values, missing, ok := a.df.Float64Values(column)
	if !ok {
		return nil, nil, errors.NewNotFoundError(op, column).WithHint("column is not numeric")
	}
	return values, missing, nil
}

// maskMissing returns values with missing entries dropped.
func maskMissing(values []float64, missing []bool) []float64 {
	kept := make([]float64, 0, len(values))
	for i, v := range values {
		if !missing[i] {
			kept = append(kept, v)
		}
	}
	return kept
}
