package main

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dsnet/compress/bzip2"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/iconsmith/iconsmith/pkg/config"
	"github.com/iconsmith/iconsmith/pkg/icon/export"
	"github.com/iconsmith/iconsmith/pkg/icon/ico"
	"github.com/iconsmith/iconsmith/pkg/icon/spec"
	"github.com/iconsmith/iconsmith/pkg/logging"
	"github.com/iconsmith/iconsmith/pkg/source"
	"github.com/iconsmith/iconsmith/pkg/watch"
)

const version = export.Version

var (
	sourcePath     string
	outputPath     string
	packIDs        []string
	archiveFormat  string
	fitFlag        string
	paddingFlag    float64
	backgroundFlag string
	configPath     string
	logLevel       string
	versionFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "iconsmith",
	Short: "Generate platform icon and asset bundles",
	Long:  `Generate platform icon and asset bundles from one source image`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build an asset bundle from a source image",
		RunE:  runBuild,
	}
	addBuildFlags(buildCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the bundle whenever the source image changes",
		RunE:  runWatch,
	}
	addBuildFlags(watchCmd)

	packsCmd := &cobra.Command{
		Use:   "packs",
		Short: "List the available packs",
		Run:   runPacks,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect <bundle>",
		Short: "List the contents of a generated archive or .ico file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	rootCmd.AddCommand(buildCmd, watchCmd, packsCmd, inspectCmd)
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "Path to source image (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path for the bundle archive")
	cmd.Flags().StringSliceVarP(&packIDs, "packs", "p", nil, "Pack ids to generate (comma separated)")
	cmd.Flags().StringVar(&archiveFormat, "format", "", "Archive format: zip, tar.gz or tar.bz2")
	cmd.Flags().StringVar(&fitFlag, "fit", "", "Default fit mode: contain or cover")
	cmd.Flags().Float64Var(&paddingFlag, "padding", 0, "Default padding ratio in [0, 0.5)")
	cmd.Flags().StringVar(&backgroundFlag, "background", "", "Default background color (#RRGGBB)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	if err := cmd.MarkFlagRequired("source"); err != nil {
		panic(err)
	}
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("iconsmith %s\n", version)
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() hclog.Logger {
	level := logLevel
	if level == "" {
		level = logging.GetLogLevel("info")
	}

	var output io.Writer = os.Stderr
	if logPath := os.Getenv("ICONSMITH_LOG_PATH"); logPath != "" {
		if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			output = file
		}
	}

	return logging.NewLogger("iconsmith", level, output)
}

// exportOptions resolves config file, flags and built-in defaults into
// one export option set. Flags win over the config file.
func exportOptions(cmd *cobra.Command) (export.Options, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return export.Options{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("fit") {
		cfg.Defaults.Fit = fitFlag
	}
	if cmd.Flags().Changed("padding") {
		cfg.Defaults.Padding = paddingFlag
	}
	if cmd.Flags().Changed("background") {
		cfg.Defaults.Background = backgroundFlag
	}
	if cmd.Flags().Changed("format") {
		cfg.Archive.Format = archiveFormat
	}

	place, err := cfg.Placement()
	if err != nil {
		return export.Options{}, err
	}

	ids := packIDs
	if len(ids) == 0 {
		ids = cfg.Packs
	}
	if len(ids) == 0 {
		return export.Options{}, fmt.Errorf("no packs selected; pick from: %s", strings.Join(spec.IDs(), ", "))
	}

	return export.Options{PackIDs: ids, Defaults: place, ArchiveFormat: cfg.Archive.Format}, nil
}

func buildOnce(cmd *cobra.Command, logger hclog.Logger) error {
	opts, err := exportOptions(cmd)
	if err != nil {
		return err
	}

	src, err := source.LoadFile(sourcePath)
	if err != nil {
		return err
	}
	logger.Info("🖼️ Source loaded", "path", sourcePath, "size", fmt.Sprintf("%dx%d", src.Width, src.Height), "type", src.MIME)

	res, err := export.Export(src.Image, opts, logger)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = "iconsmith" + res.Extension
	}
	if err := os.WriteFile(out, res.Archive, 0o644); err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Warn("⚠️ " + w)
	}
	logger.Info("💾 Bundle written", "path", out, "bytes", len(res.Archive))
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	return buildOnce(cmd, newLogger())
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if err := buildOnce(cmd, logger); err != nil {
		return err
	}

	w, err := watch.New(sourcePath, func() error { return buildOnce(cmd, logger) }, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func runPacks(cmd *cobra.Command, args []string) {
	for _, id := range spec.IDs() {
		p := spec.Registry[id]
		fmt.Printf("%-18s %s (%d outputs)\n", p.ID, p.Name, len(p.Outputs))
		fmt.Printf("%-18s %s\n", "", p.Description)
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch {
	case strings.HasSuffix(path, ".ico"):
		return inspectICO(data)
	case strings.HasSuffix(path, ".zip"):
		return inspectZip(data)
	case strings.HasSuffix(path, ".tar.gz"):
		gr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return err
		}
		defer gr.Close()
		return inspectTar(gr)
	case strings.HasSuffix(path, ".tar.bz2"):
		br, err := bzip2.NewReader(bytes.NewReader(data), nil)
		if err != nil {
			return err
		}
		defer br.Close()
		return inspectTar(br)
	default:
		return fmt.Errorf("don't know how to inspect %s", path)
	}
}

func inspectICO(data []byte) error {
	entries, err := ico.ParseDirectory(data)
	if err != nil {
		return err
	}
	fmt.Printf("icon container: %d images\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %3dx%-3d %2d bpp  %7d bytes at offset %d\n",
			e.PixelSize(), e.PixelSize(), e.BitCount, e.ByteSize, e.Offset)
	}
	return nil
}

func inspectZip(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return err
	}
	fmt.Printf("zip archive: %d entries\n", len(zr.File))
	for _, f := range zr.File {
		fmt.Printf("  %8d  %s\n", f.UncompressedSize64, f.Name)
	}
	return nil
}

func inspectTar(r io.Reader) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("  %8d  %s\n", hdr.Size, hdr.Name)
	}
}
