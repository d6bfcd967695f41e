// Command filtersynth synthesizes analog filters described in a YAML file.
//
// Usage:
//
//	filtersynth design [--stages] [--sample-rate fs] [--filter name] file.yaml
//	filtersynth response [--points n] [--filter name] file.yaml
//	filtersynth families
//
// Edge frequencies in the file are angular (rad/s); reported frequencies are
// in Hz.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analog/analog/filter"
	"github.com/cwbudde/algo-analog/internal/config"
	"github.com/cwbudde/algo-analog/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	debug   bool
	jsonLog bool
}

func newRootCmd() *cobra.Command {
	var rf rootFlags

	cmd := &cobra.Command{
		Use:          "filtersynth",
		Short:        "Analog filter synthesis and stage partitioning",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&rf.debug, "debug", false, "log order search iterations")
	cmd.PersistentFlags().BoolVar(&rf.jsonLog, "json-log", false, "write JSON log records to stderr")

	cmd.AddCommand(designCmd(&rf), responseCmd(&rf), familiesCmd())

	return cmd
}

func (rf *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	return logger.New(cmd.ErrOrStderr(), logger.Config{Debug: rf.debug, JSON: rf.jsonLog})
}

// synthesize loads path and builds every filter, or only the one named
// only when it is set.
func synthesize(path, only string, log *slog.Logger) ([]*filter.Filter, error) {
	entries, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	var out []*filter.Filter

	for i, e := range entries {
		if only != "" && e.Name != only {
			continue
		}

		opts := append([]filter.Option{filter.WithLogger(log.With("filter", e.Name))}, e.Options...)
		f := filter.New(e.Spec, opts...)
		f.AddNameIndex(i)
		out = append(out, f)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no filter named %q in %s", only, path)
	}

	return out, nil
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
