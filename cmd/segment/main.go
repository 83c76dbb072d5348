// Command segment partitions an image into color clusters and writes one PNG
// per cluster.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-segment-mcp/internal/imaging"
	"github.com/ironsheep/image-segment-mcp/internal/logger"
	"github.com/ironsheep/image-segment-mcp/internal/segment"
)

// config holds the command-line settings.
type config struct {
	InputPath       string
	OutputDirectory string
	Tolerance       float64
	BlurRadius      float64
	Trim            bool
	RescanRejected  bool
	LogFile         string
}

func main() {
	cfg := parseFlags()

	if cfg.LogFile != "" {
		logFile, err := logger.Init(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
	} else {
		logger.Stderr()
	}

	if err := validateConfig(cfg); err != nil {
		log.Printf("Configuration error: %v", err)
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Printf("Application error: %v", err)
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags defines and parses command-line flags, returning them
// in a config struct.
func parseFlags() *config {
	cfg := &config{}

	pflag.StringVarP(&cfg.InputPath, "input", "i", "", "Path to the input image (png, jpeg, gif, bmp).")
	pflag.StringVarP(&cfg.OutputDirectory, "output", "o", "./clusters", "Directory to write cluster(N).png files to.")
	pflag.Float64VarP(&cfg.Tolerance, "tolerance", "t", segment.DefaultTolerance, "Maximum redmean distance between colors of one cluster (40 works well for photos).")
	pflag.Float64Var(&cfg.BlurRadius, "blur", 0, "Gaussian blur radius applied before segmenting. 0 disables smoothing.")
	pflag.BoolVar(&cfg.Trim, "trim", false, "Crop each cluster image to its bounding box.")
	pflag.BoolVar(&cfg.RescanRejected, "rescan-rejected", false, "Let later clusters re-test pixels an earlier cluster rejected.")
	pflag.StringVar(&cfg.LogFile, "log-file", "", "Append logs to this file instead of stderr.")

	pflag.Parse()
	return cfg
}

// validateConfig checks if the provided configuration is valid.
func validateConfig(cfg *config) error {
	if cfg.InputPath == "" {
		return fmt.Errorf("--input/-i flag is required")
	}
	if _, err := os.Stat(cfg.InputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", cfg.InputPath)
	}
	if cfg.OutputDirectory == "" {
		return fmt.Errorf("--output/-o must not be empty")
	}
	if err := (segment.Options{Tolerance: cfg.Tolerance}).Validate(); err != nil {
		return fmt.Errorf("--tolerance: %w", err)
	}
	if cfg.BlurRadius < 0 {
		return fmt.Errorf("--blur must not be negative")
	}
	return nil
}

// run segments the input image, writes the cluster files and prints a
// summary to out.
func run(cfg *config, out io.Writer) error {
	log.Printf("Segmenting %s with tolerance %v.", cfg.InputPath, cfg.Tolerance)

	segments := imaging.NewSegmentCache(imaging.NewImageCache())
	res, err := segments.Segment(cfg.InputPath, imaging.SegmentOptions{
		Tolerance:      cfg.Tolerance,
		RescanRejected: cfg.RescanRejected,
		BlurRadius:     cfg.BlurRadius,
	})
	if err != nil {
		return err
	}
	log.Printf("Flood fill produced %d clusters, %d after merging, in %s.",
		res.Initial, len(res.Clusters), res.Elapsed)

	files, err := imaging.SaveClusters(res, cfg.OutputDirectory, imaging.ExportOptions{Trim: cfg.Trim})
	if err != nil {
		return fmt.Errorf("failed to save clusters: %w", err)
	}
	log.Printf("Wrote %d files to %s.", len(files), cfg.OutputDirectory)

	printSummary(out, res, cfg.OutputDirectory)
	return nil
}

func printSummary(out io.Writer, res *segment.Result, dir string) {
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	durationStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("202"))
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	fmt.Fprintf(out, "Image: %dx%d\n", res.Width, res.Height)
	fmt.Fprintf(out, "Clusters: %s (%d before merging)\n",
		countStyle.Render(fmt.Sprint(len(res.Clusters))), res.Initial)
	fmt.Fprintf(out, "Processing time: %s\n",
		durationStyle.Render(fmt.Sprintf("%.4fs", res.Elapsed.Seconds())))
	fmt.Fprintf(out, "Output: %s\n", pathStyle.Render(dir))

	var b strings.Builder
	for i, c := range res.Clusters {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(c.Color.Hex())).Render("  ")
		fmt.Fprintf(&b, "  %s %-16s %s %8d px\n", swatch, imaging.ClusterFileName(i), c.Color.Hex(), c.Len())
	}
	fmt.Fprint(out, b.String())
}
