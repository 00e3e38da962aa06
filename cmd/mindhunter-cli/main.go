package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/paveg/mindhunter"
	"github.com/paveg/mindhunter/internal/config"
	"github.com/paveg/mindhunter/internal/version"
)

const usageText = `mindhunter CLI (version %s)

Usage: mindhunter-cli -file PATH [options]

Options:
  -file PATH
		Dataset to load (.csv, .tsv, .xlsx, .parquet)
  -config PATH
		Configuration file (.json, .yaml, .yml)
  -clean
		Normalize column names and drop missing and duplicate rows
  -strip CHARS
		Characters replaced by '_' in column names (implies -clean)
  -column NAME
		Print statistics for one column only
  -describe
		Print the count/mean/std/min/quartiles/max summary
  -zscore PATH
		Write the z-score table to PATH as CSV, or Parquet for .parquet ('-' for CSV on stdout)
  -density NAME
		Print the Gaussian density curve of a column
  -normality NAME
		Print a quick normality check of a column
  -json
		Print JSON instead of tables
  -v, -version
		Print version information and exit
  -h, -help
		Show this help message and exit
`

type options struct {
	file      string
	config    string
	clean     bool
	strip     string
	column    string
	describe  bool
	zscore    string
	density   string
	normality string
	json      bool
	version   bool
}

func main() {
	// Variables from .env are defaults; the real environment wins.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
	}

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fset := flag.NewFlagSet("mindhunter-cli", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprintf(stderr, usageText, version.Version)
	}

	fset.StringVar(&opts.file, "file", "", "Dataset to load")
	fset.StringVar(&opts.config, "config", "", "Configuration file")
	fset.BoolVar(&opts.clean, "clean", false, "Clean the dataset")
	fset.StringVar(&opts.strip, "strip", "", "Characters replaced by '_' in column names")
	fset.StringVar(&opts.column, "column", "", "Print statistics for one column")
	fset.BoolVar(&opts.describe, "describe", false, "Print the summary table")
	fset.StringVar(&opts.zscore, "zscore", "", "Write z-scores as CSV")
	fset.StringVar(&opts.density, "density", "", "Print the density curve of a column")
	fset.StringVar(&opts.normality, "normality", "", "Print a normality check of a column")
	fset.BoolVar(&opts.json, "json", false, "Print JSON")
	fset.BoolVar(&opts.version, "v", false, "Print version and exit")
	fset.BoolVar(&opts.version, "version", false, "Print version and exit") // alias

	if err := fset.Parse(args); err != nil {
		return options{}, err
	}
	if opts.strip != "" {
		opts.clean = true
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.version {
		fmt.Fprint(stdout, version.Info().String())
		return nil
	}
	if opts.file == "" {
		fmt.Fprintf(stderr, usageText, version.Version)
		return errors.New("-file is required")
	}

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	analyzer, err := mindhunter.LoadFile(opts.file,
		mindhunter.WithConfig(cfg),
		mindhunter.WithLogger(logger))
	if err != nil {
		return err
	}
	defer analyzer.Release()

	if opts.clean {
		if err := analyzer.Clean([]rune(opts.strip)...); err != nil {
			return err
		}
		analyzer.Rebuild()
	}

	switch {
	case opts.zscore != "":
		return writeZScores(analyzer, opts.zscore, stdout)
	case opts.density != "":
		return printDensity(analyzer, opts.density, opts.json, stdout)
	case opts.normality != "":
		return printNormality(analyzer, opts.normality, opts.json, stdout)
	case opts.describe:
		return printDescribe(analyzer, opts.json, stdout)
	default:
		return printStats(analyzer, opts.column, opts.json, stdout)
	}
}

// loadConfig reads the optional config file, then applies MINDHUNTER_* variables.
func loadConfig(path string) (config.Config, error) {
	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	cfg = config.LoadFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func printStats(a *mindhunter.Analyzer, column string, asJSON bool, w io.Writer) error {
	columns := a.StatColumns()
	if column != "" {
		columns = []string{column}
	}

	records := make(map[string]mindhunter.ColumnStatistics, len(columns))
	for _, name := range columns {
		cs, err := a.StatsFor(name)
		if err != nil {
			return err
		}
		records[name] = cs
	}

	if asJSON {
		return writeJSON(w, jsonSafeStats(records))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmissing\tmean\tstd\tmin\tq1\tmedian\tq3\tmax\tmode\tmad\tskew\tkurt\tcv\tsem")
	for _, name := range columns {
		cs := records[name]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			name, cs.Count, cs.MissingCount, cs.Mean, cs.StdDev, cs.Min, cs.Q1, cs.Median, cs.Q3, cs.Max,
			cs.Mode, cs.MAD, cs.Skewness, cs.Kurtosis, cs.CV, cs.SEM)
	}
	return tw.Flush()
}

func printDescribe(a *mindhunter.Analyzer, asJSON bool, w io.Writer) error {
	summary, err := a.Describe()
	if err != nil {
		return err
	}
	defer summary.Release()

	if asJSON {
		labelSeries, ok := summary.Column(mindhunter.DescribeLabelColumn)
		if !ok {
			return fmt.Errorf("describe table has no %q column", mindhunter.DescribeLabelColumn)
		}
		labels := labelSeries.Array()
		defer labels.Release()

		table := make(map[string]map[string]any, summary.Width())
		for _, name := range summary.Columns()[1:] {
			values, missing, _ := summary.Float64Values(name)
			row := make(map[string]any, len(values))
			for i, v := range values {
				if missing[i] {
					v = math.NaN()
				}
				row[labels.ValueStr(i)] = jsonFloat(v)
			}
			table[name] = row
		}
		return writeJSON(w, table)
	}

	return summary.WriteCSV(w, '\t')
}

func writeZScores(a *mindhunter.Analyzer, path string, stdout io.Writer) error {
	scores := a.ZScore()
	defer scores.Release()

	if path == "-" {
		return scores.WriteCSV(stdout, ',')
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return scores.WriteParquet(f)
	}
	return scores.WriteCSV(f, ',')
}

func printDensity(a *mindhunter.Analyzer, column string, asJSON bool, w io.Writer) error {
	xs, ys, err := a.DensityCurve(column)
	if err != nil {
		return err
	}

	if asJSON {
		points := make([][2]any, len(xs))
		for i := range xs {
			points[i] = [2]any{jsonFloat(xs[i]), jsonFloat(ys[i])}
		}
		return writeJSON(w, map[string]any{"column": column, "points": points})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "x\tdensity")
	for i := range xs {
		fmt.Fprintf(tw, "%.6g\t%.6g\n", xs[i], ys[i])
	}
	return tw.Flush()
}

func printNormality(a *mindhunter.Analyzer, column string, asJSON bool, w io.Writer) error {
	report, err := a.CheckNormality(column)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(w, jsonObject(report))
	}

	fmt.Fprintf(w, "Mean: %.3f\n", report.Mean)
	fmt.Fprintf(w, "Median: %.3f\n", report.Median)
	fmt.Fprintf(w, "Mean close to median?: %t\n", report.MeanNearMedian)
	fmt.Fprintf(w, "Percentage within 1 std: %.1f%% (should be ~68%%)\n", report.WithinOneStd*100)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// jsonFloat maps NaN and infinities, which JSON cannot carry, to strings.
func jsonFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}

func jsonSafeStats(records map[string]mindhunter.ColumnStatistics) map[string]map[string]any {
	out := make(map[string]map[string]any, len(records))
	for name, cs := range records {
		out[name] = jsonObject(cs)
	}
	return out
}

// jsonObject flattens a struct into a map keyed by its json tags, passing
// float fields through jsonFloat.
func jsonObject(v any) map[string]any {
	rv := reflect.ValueOf(v)
	rt := rv.Type()

	out := make(map[string]any, rt.NumField())
	for i := range rt.NumField() {
		key, _, _ := strings.Cut(rt.Field(i).Tag.Get("json"), ",")
		if key == "" || key == "-" {
			continue
		}
		field := rv.Field(i)
		if field.Kind() == reflect.Float64 {
			out[key] = jsonFloat(field.Float())
			continue
		}
		out[key] = field.Interface()
	}
	return out
}
