package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/woozymasta/geoconv/internal/config"
	"github.com/woozymasta/geoconv/internal/logger"
	"github.com/woozymasta/geoconv/internal/pipeline"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Input      string `short:"i" long:"in"     description:"Input file path. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" env:"OUTPUT_FORMAT" description:"Structured output format" choice:"json" choice:"yaml" default:"json"`
}

var (
	opts Options
	pipe *pipeline.Pipeline
)

// errInvalid makes the process exit with 1 without printing anything more.
var errInvalid = errors.New("geometry is invalid")

func main() {
	envErr := godotenv.Load()

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.SubcommandsOptional = false

	mustAdd(parser, "to-wkt", "Convert GeoJSON to WKT", &toWKTCommand{})
	mustAdd(parser, "to-geojson", "Convert WKT lines to GeoJSON", &toGeoJSONCommand{})
	mustAdd(parser, "validate", "Validate GeoJSON geometry", &validateCommand{})
	mustAdd(parser, "simplify", "Simplify GeoJSON geometry with Douglas-Peucker", &simplifyCommand{})
	mustAdd(parser, "transform", "Convert coordinates between WGS84, GCJ02 and BD09", &transformCommand{})
	mustAdd(parser, "measure", "Print per-feature statistics", &measureCommand{})
	mustAdd(parser, "distance", "Print centroid distances between every pair of features", &distanceCommand{})
	mustAdd(parser, "examples", "List the bundled examples or print one", &examplesCommand{})

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		opts.Logger.Setup()
		if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
			log.Warn().Err(envErr).Msg("Failed to read .env file")
		}

		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		pipe = pipeline.New(cfg)

		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		switch {
		case errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp:
			fmt.Println(flagsErr.Message)
			os.Exit(0)
		case errors.As(err, &flagsErr):
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		case errors.Is(err, errInvalid):
			os.Exit(1)
		default:
			log.Error().Err(err).Msg("Command failed")
			os.Exit(1)
		}
	}
}

func mustAdd(p *flags.Parser, name, short string, cmd flags.Commander) {
	if _, err := p.AddCommand(name, short, short, cmd); err != nil {
		panic(err)
	}
}
