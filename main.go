package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/qrkit/api"
	"github.com/openclaw/qrkit/config"
	"github.com/openclaw/qrkit/qrcode"
	"github.com/openclaw/qrkit/render"
)

var version = "v0.1.0"

// encodeFlags are shared by the commands that encode content locally.
type encodeFlags struct {
	level  string
	margin int
}

func (f *encodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.level, "ec", "e", "M", "Error correction level (L, M, Q, H)")
	cmd.Flags().IntVarP(&f.margin, "margin", "m", qrcode.DefaultMargin, "Quiet zone width in modules")
}

func (f *encodeFlags) options() (qrcode.Options, error) {
	level, err := qrcode.ParseLevel(f.level)
	if err != nil {
		return qrcode.Options{}, err
	}
	margin := f.margin
	return qrcode.Options{Level: level, Margin: &margin}, nil
}

func main() {
	root := &cobra.Command{
		Use:          "qrkit",
		Short:        "QR code encoder with PNG and terminal output",
		SilenceUsage: true,
	}

	// --- serve command -------------------------------------------------------
	var configPath, envPath string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve QR codes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, envPath)
		},
	}
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to config file")
	serveCmd.Flags().StringVar(&envPath, "env-file", ".env", "Path to optional .env file")
	root.AddCommand(serveCmd)

	// --- png command ---------------------------------------------------------
	var pngFlags encodeFlags
	var width, height int
	var out string
	pngCmd := &cobra.Command{
		Use:   "png [content]",
		Short: "Write a QR code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPNG(cmd.OutOrStdout(), args[0], width, height, out, pngFlags)
		},
	}
	pngFlags.register(pngCmd)
	pngCmd.Flags().IntVar(&width, "width", 256, "Image width in pixels")
	pngCmd.Flags().IntVar(&height, "height", 256, "Image height in pixels")
	pngCmd.Flags().StringVarP(&out, "out", "o", "qr.png", "Output file, - for stdout")
	root.AddCommand(pngCmd)

	// --- ascii command -------------------------------------------------------
	var asciiFlags encodeFlags
	var compact, invert bool
	asciiCmd := &cobra.Command{
		Use:   "ascii [content]",
		Short: "Print a QR code to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runASCII(cmd.OutOrStdout(), args[0], compact, invert, asciiFlags)
		},
	}
	asciiFlags.register(asciiCmd)
	asciiCmd.Flags().BoolVar(&compact, "compact", false, "Use half-block characters, two rows per line")
	asciiCmd.Flags().BoolVar(&invert, "invert", false, "Swap dark and light, for dark terminals")
	root.AddCommand(asciiCmd)

	// --- info command --------------------------------------------------------
	var infoFlags encodeFlags
	infoCmd := &cobra.Command{
		Use:   "info [content]",
		Short: "Show the version, mask and mode chosen for content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0], infoFlags)
		},
	}
	infoFlags.register(infoCmd)
	root.AddCommand(infoCmd)

	// --- status command ------------------------------------------------------
	var statusAddr string
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout(), statusAddr)
		},
	}
	statusCmd.Flags().StringVar(&statusAddr, "addr", "http://localhost:8556", "Server HTTP address")
	root.AddCommand(statusCmd)

	// --- version command -----------------------------------------------------
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qrkit %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// runServe is the HTTP service entrypoint.
func runServe(configPath, envPath string) error {
	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("starting qrkit", "version", version, "port", cfg.Port, "error_correction", cfg.ErrorCorrection)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: api.NewRouter(&api.Server{
			Options: cfg.EncodeOptions(),
			Limits: api.Limits{
				DefaultSize:      cfg.DefaultSize,
				MaxSize:          cfg.MaxSize,
				MaxContentLength: cfg.MaxContentLength,
				MaxASCIIModules:  cfg.MaxASCIIModules,
			},
			Log:       log,
			Version:   version,
			StartTime: time.Now(),
		}),
		ReadTimeout:  cfg.ReadTimeout.Duration,
		WriteTimeout: cfg.WriteTimeout.Duration,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("goodbye")
	return nil
}

func runPNG(stdout io.Writer, content string, width, height int, out string, f encodeFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	if out == "-" {
		return render.WritePNG(stdout, content, width, height, opts)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := render.WritePNG(file, content, width, height, opts); err != nil {
		file.Close()
		os.Remove(out)
		return err
	}
	return file.Close()
}

func runASCII(stdout io.Writer, content string, compact, invert bool, f encodeFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	code, err := qrcode.Encode(content, opts)
	if err != nil {
		return err
	}
	bm := code.Bitmap(f.margin)

	var s string
	switch {
	case compact:
		s = render.ToCompact(bm, invert)
	case invert:
		s = render.InvertedGlyphs.Render(bm)
	default:
		s = render.ToASCII(bm)
	}
	_, err = io.WriteString(stdout, s)
	return err
}

func runInfo(stdout io.Writer, content string, f encodeFlags) error {
	opts, err := f.options()
	if err != nil {
		return err
	}
	code, err := qrcode.Encode(content, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "version: %d\nlevel:   %s\nmask:    %d\nmode:    %s\nmodules: %d\n",
		code.Version, code.Level, code.Mask, code.Mode, code.Size())
	return err
}

// runStatus queries the server's status endpoint.
func runStatus(stdout io.Writer, addr string) error {
	resp, err := http.Get(addr + "/status")
	if err != nil {
		return fmt.Errorf("failed to reach server at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(stdout, resp.Body)
	return err
}
