package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/woozymasta/coordparse/internal/geo"
	"github.com/woozymasta/coordparse/internal/logger"
	"github.com/woozymasta/coordparse/internal/parser"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// errFailed marks a run where at least one input did not parse.
var errFailed = errors.New("some coordinates failed to parse")

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Input     string `short:"i" long:"in"         description:"Input file with one coordinate per line. Reads from stdin if empty and no COORD given"`
	Output    string `short:"o" long:"out"        description:"Output file path. Writes to stdout if empty"`
	Format    string `short:"f" long:"format"     description:"Output format" choice:"json" choice:"yaml" choice:"geojson" choice:"dms" default:"json"`
	Precision int    `short:"p" long:"precision"  description:"Decimal places in output values" default:"6"`
	KeepGoing bool   `short:"k" long:"keep-going" description:"Record failures in the output and continue"`
	Compact   bool   `long:"compact"              description:"Minify json and geojson output"`

	Args struct {
		Coords []string `positional-arg-name:"COORD"`
	} `positional-args:"yes"`
}

// Record is the output for a single input.
type Record struct {
	Point  *geo.Point `json:"point,omitempty" yaml:"point,omitempty"`
	Input  string     `json:"input" yaml:"input"`
	Error  string     `json:"error,omitempty" yaml:"error,omitempty"`
	Values []float64  `json:"values,omitempty" yaml:"values,omitempty"`
	DMS    []string   `json:"dms,omitempty" yaml:"dms,omitempty"`
}

func main() {
	var opts Options
	p := flags.NewParser(&opts, flags.Default)
	p.Usage = "[OPTIONS] [COORD...]"
	if _, err := p.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.Precision < 0 || opts.Precision > 15 {
		log.Fatal().Int("precision", opts.Precision).Msg("Precision must be between 0 and 15")
	}

	out := io.Writer(os.Stdout)
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating output file")
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := run(opts, os.Stdin, out); err != nil {
		if !errors.Is(err, errFailed) {
			log.Error().Err(err).Msg("Conversion failed")
		}
		os.Exit(1)
	}
}

// run parses every input and writes the records in the selected format.
// It returns errFailed when any input was rejected.
func run(opts Options, stdin io.Reader, out io.Writer) error {
	inputs := opts.Args.Coords
	if len(inputs) == 0 {
		lines, err := readLines(opts.Input, stdin)
		if err != nil {
			return err
		}
		inputs = lines
	}

	records := make([]Record, 0, len(inputs))
	failed := 0
	for _, input := range inputs {
		rec, err := convert(input, opts.Precision)
		if err != nil {
			log.Warn().Err(err).Str("input", input).Msg("Failed to parse coordinate")
			failed++
			if !opts.KeepGoing {
				return errFailed
			}
		}
		records = append(records, rec)
	}

	data, err := render(opts.Format, records, opts.Compact)
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	log.Debug().Int("total", len(records)).Int("failed", failed).Msg("Coordinates converted")

	if failed > 0 {
		return errFailed
	}
	return nil
}

// readLines returns the non-empty trimmed lines of the file at path,
// or of stdin when path is empty.
func readLines(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("error reading input file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	return lines, nil
}

// convert parses one input. The returned record carries the error text on failure.
func convert(input string, precision int) (Record, error) {
	rec := Record{Input: input}

	coords, err := parser.ParseCoordinates(input)
	if err == nil {
		err = geo.CheckFinite(coords)
	}
	if err == nil && len(coords) == 2 {
		var p geo.Point
		if p, err = geo.PointFromCoordinates(coords); err == nil {
			p = p.Round(precision)
			rec.Point = &p
		}
	}
	if err != nil {
		rec.Error = err.Error()
		return rec, err
	}

	rec.Values = make([]float64, len(coords))
	rec.DMS = make([]string, len(coords))
	for i, c := range coords {
		rec.Values[i] = geo.Round(c.Value, precision)
		rec.DMS[i] = geo.FormatDMS(c.Value, c.Axis)
	}

	return rec, nil
}

func render(format string, records []Record, compact bool) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(records)

	case "dms":
		var b strings.Builder
		for _, rec := range records {
			if rec.Error != "" {
				fmt.Fprintf(&b, "%s\terror: %s\n", rec.Input, rec.Error)
				continue
			}
			fmt.Fprintf(&b, "%s\t%s\n", rec.Input, strings.Join(rec.DMS, " "))
		}
		return []byte(b.String()), nil

	case "geojson":
		features := make([]geo.GeoJSONFeature, 0, len(records))
		for _, rec := range records {
			if rec.Point == nil {
				continue
			}
			features = append(features, geo.NewPointFeature(*rec.Point, map[string]interface{}{
				"input": rec.Input,
				"dms":   rec.DMS,
			}))
		}
		return marshalJSON(geo.NewFeatureCollection(features), compact)

	default:
		return marshalJSON(records, compact)
	}
}

func marshalJSON(v any, compact bool) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil || !compact {
		return append(data, '\n'), err
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)
	small, err := m.Bytes("application/json", data)
	if err != nil {
		return nil, err
	}

	return append(small, '\n'), nil
}
