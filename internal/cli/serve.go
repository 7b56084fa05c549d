package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/seevg/internal/logging"
	"github.com/yaklabco/seevg/internal/server"
	"github.com/yaklabco/seevg/pkg/config"
)

type serveFlags struct {
	dark bool
}

func newServeCommand() *cobra.Command {
	var cfg config.Config
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve [FILE]",
		Short: "Open the browser inspector",
		Long: `Serve the inspector: the markup in an editor next to a live preview.

Hovering an element in the preview outlines it and highlights its tag in
the markup; clicking locks the highlight until the element is clicked
again or the lock is cleared. Pasted SVG replaces the document, formatted
to the editor width.

Without FILE a sample drawing is shown. With --watch the page follows
changes to FILE on disk.`,
		Example: `  seevg serve
  seevg serve --watch logo.svg
  seevg serve --addr :8080 --dark=false logo.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&cfg.Serve.Addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	cmd.Flags().BoolVar(&flags.dark, "dark", true, "preview on a dark background")
	cmd.Flags().IntVar(&cfg.Serve.Zoom, "zoom", 0, "initial preview zoom in percent, 25 to 300")
	cmd.Flags().BoolVar(&cfg.Serve.Watch, "watch", false, "reload FILE when it changes on disk")

	return cmd
}

func runServe(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *serveFlags) error {
	cfg, _, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dark") {
		cfg.Serve.DarkBackground = flags.dark
	}

	logger := logging.NewInteractive()
	logger.SetLevel(logging.Default().GetLevel())

	var document, path string
	if len(args) == 1 {
		document, err = readSource(cmd, args[0])
		if err != nil {
			return err
		}
		if args[0] != "-" {
			path = args[0]
		}
	}
	if cfg.Serve.Watch && path == "" {
		logger.Warn("--watch needs a file; not watching")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	srv := server.New(server.Options{
		Addr:           cfg.Serve.Addr,
		Document:       document,
		Path:           path,
		Watch:          cfg.Serve.Watch,
		Formatter:      cfg.FormatterOptions(),
		FontSize:       cfg.Format.FontSize,
		DarkBackground: cfg.Serve.DarkBackground,
		Zoom:           cfg.Serve.Zoom,
	})
	return srv.ListenAndServe(ctx)
}
