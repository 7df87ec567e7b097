package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/esimov/seamcarve"
	"github.com/esimov/seamcarve/config"
	"github.com/esimov/seamcarve/logging"
	"github.com/esimov/seamcarve/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤│││  ├─┤├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴└─┘┴ ┴┴└─ └┘ └─┘

Content aware image resize tool.
    Version: %s

Usage:
    seamcarve [flags]
    seamcarve [flags] IN OUT WIDTH [HEIGHT]

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	newWidth    = flag.Int("width", 0, "New width")
	newHeight   = flag.Int("height", 0, "New height")
	percentage  = flag.Bool("perc", false, "Reduce image by percentage")
	debug       = flag.Bool("debug", false, "Log every removed seam")
	workers     = flag.Int("conc", 0, "Number of files to process concurrently (defaults to the number of CPUs)")
	configFile  = flag.String("config", "", "YAML configuration file")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Invalid configuration: %v", err), utils.ErrorMessage))
	}

	// The command line flags take precedence over the configuration.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debug
		case "conc":
			cfg.Workers = *workers
		}
	})

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(utils.DecorateText(fmt.Sprintf("Unable to initialize the logger: %v", err), utils.ErrorMessage))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Positional form: IN OUT WIDTH [HEIGHT]
	if args := flag.Args(); len(args) > 0 {
		if err := parseArgs(args); err != nil {
			flag.Usage()
			log.Fatal(utils.DecorateText(fmt.Sprintf("\n%v", err), utils.ErrorMessage))
		}
	}

	if *newWidth == 0 && *newHeight == 0 {
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nPlease provide a width, height or percentage for image rescaling!", utils.ErrorMessage),
			"\n",
		))
	}

	proc := &seamcarve.Processor{
		NewWidth:   *newWidth,
		NewHeight:  *newHeight,
		Percentage: *percentage,
		Debug:      cfg.Debug,
		Logger:     logger,
	}

	if *destination != pipeName {
		spinnerText := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SEAMCARVE", utils.StatusMessage),
			utils.DecorateText("is resizing the image...", utils.DefaultMessage))
		proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*100, true)
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		if proc.Spinner != nil {
			proc.Spinner.RestoreCursor()
		}
		logger.Sync()
		os.Exit(1)
	}()

	op := &seamcarve.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  cfg.Workers,
	}
	if err := proc.Execute(op); err != nil {
		logger.Sync()
		log.Fatal(fmt.Sprintf("%s %s",
			utils.DecorateText("\nError resizing the image:", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		))
	}
}

// parseArgs fills in the source, destination and target size from the positional arguments.
// The height is kept when omitted.
func parseArgs(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return fmt.Errorf("expected IN OUT WIDTH [HEIGHT], got %d arguments", len(args))
	}
	w, err := strconv.Atoi(args[2])
	if err != nil || w <= 0 {
		return fmt.Errorf("invalid width %q, expected a positive number", args[2])
	}
	h := 0
	if len(args) == 4 {
		if h, err = strconv.Atoi(args[3]); err != nil || h <= 0 {
			return fmt.Errorf("invalid height %q, expected a positive number", args[3])
		}
	}

	*source, *destination = args[0], args[1]
	*newWidth, *newHeight = w, h
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel, zapcore.InfoLevel)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	return logging.NewLogger(logging.Options{
		Level:       level,
		Development: cfg.Development,
		FilePath:    cfg.LogFile,
	})
}
