package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/OFFIS-RIT/plotline/internal/setup"
	"github.com/OFFIS-RIT/plotline/internal/util"
	"github.com/OFFIS-RIT/plotline/pkg/graph"
	"github.com/OFFIS-RIT/plotline/pkg/loader"
	"github.com/OFFIS-RIT/plotline/pkg/logger"
	"github.com/OFFIS-RIT/plotline/pkg/logger/console"

	"github.com/spf13/cobra"
)

type options struct {
	characters string
	top        int
	chunkSize  int
	parts      int
	json       bool
	debug      bool
}

func command() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "analyze [story.txt]",
		Short: "Analyze a Thai story",
		Long:  `Print statistics, characters, the relation graph and the sentiment arc of a Thai text file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.SilenceUsage = true

	cmd.Flags().StringVarP(&opts.characters, "characters", "c", "", "Comma separated character names to add")
	cmd.Flags().IntVarP(&opts.top, "top", "n", 0, "Characters kept in the relation graph, negative keeps all")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", 0, "Tokens per sentiment chunk")
	cmd.Flags().IntVar(&opts.parts, "parts", 0, "Split the sentiment arc into this many chunks")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return cmd
}

func run(ctx context.Context, out io.Writer, path string, opts *options) error {
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  opts.debug,
		Output: os.Stderr,
	}))

	analyzer, err := setup.Analyzer(setup.Overrides{
		TopN:      opts.top,
		ChunkSize: opts.chunkSize,
		Parts:     opts.parts,
	})
	if err != nil {
		return err
	}
	loaders, err := setup.Loaders(ctx, true)
	if err != nil {
		return err
	}

	file, err := loaders.File(filepath.Base(path), loader.SourceTypeFile, path)
	if err != nil {
		return err
	}
	text, err := file.GetText(ctx)
	if err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, text, graph.ParseNames(opts.characters))
	if err != nil {
		return fmt.Errorf("failed to analyze %s: %w", path, err)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	}
	return render(out, result)
}

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
