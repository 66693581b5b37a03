package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/activeset"
	"github.com/hupe1980/activeset/blobstore"
	"github.com/hupe1980/activeset/codec"
	"github.com/hupe1980/activeset/internal/conv"
	"github.com/hupe1980/activeset/prommetrics"
	"github.com/hupe1980/activeset/vectorfile"
)

// app carries state shared by all subcommands, populated before each run.
type app struct {
	cfgPath     string
	root        string
	metricsFile string

	cfg    Config
	store  blobstore.BlobStore
	codec  codec.Codec
	logger *activeset.Logger
	opts   []vectorfile.Option

	stats    *activeset.BasicMetricsCollector
	registry *prometheus.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:                "activeset",
		Short:              "Partial reads and writes of chunked vector blobs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.finish,
	}
	cmd.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&a.root, "root", "", "use a local store rooted at this directory")
	cmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics of this run to a textfile")

	cmd.AddCommand(
		a.newWriteCmd(),
		a.newReadCmd(),
		a.newPatchCmd(),
		a.newInspectCmd(),
		a.newListCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	if a.root != "" {
		cfg.Store.Type, cfg.Store.Root = "local", a.root
	}
	if a.metricsFile != "" {
		cfg.Metrics.File = a.metricsFile
	}
	a.cfg = cfg

	if a.logger, err = cfg.logger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if a.codec, err = cfg.newCodec(); err != nil {
		return err
	}
	a.stats = &activeset.BasicMetricsCollector{}
	collectors := multiCollector{a.stats}
	if cfg.Metrics.File != "" {
		a.registry = prometheus.NewRegistry()
		collectors = append(collectors, prommetrics.NewCollector(a.registry, ""))
	}
	if a.opts, err = cfg.options(a.logger, collectors); err != nil {
		return err
	}
	a.store, err = cfg.openStore(cmd.Context())
	return err
}

// finish reports the I/O statistics of the run.
func (a *app) finish(cmd *cobra.Command, _ []string) error {
	s := a.stats.GetStats()
	a.logger.DebugContext(cmd.Context(), "io stats",
		"reads", s.ReadCount,
		"read_errors", s.ReadErrors,
		"read_elements", s.ReadElements,
		"read_chunks", s.ReadChunks,
		"read_bytes", s.ReadBytes,
		"read_avg", time.Duration(s.ReadAvgNanos),
		"writes", s.WriteCount,
		"write_errors", s.WriteErrors,
		"write_elements", s.WriteElements,
		"write_chunks", s.WriteChunks,
		"write_bytes", s.WriteBytes,
	)
	if a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.File, a.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// selectorFlags builds a Selector from command line flags. Without flags
// the selector is AllActive.
type selectorFlags struct {
	indices  []uint
	file     string
	inactive bool
}

func addSelectorFlags(cmd *cobra.Command, f *selectorFlags) {
	cmd.Flags().UintSliceVarP(&f.indices, "indices", "i", nil, "active indices, in order")
	cmd.Flags().StringVarP(&f.file, "select", "s", "", "file with a JSON array of active indices")
	cmd.Flags().BoolVar(&f.inactive, "inactive", false, "select no element")
	cmd.MarkFlagsMutuallyExclusive("inactive", "indices")
	cmd.MarkFlagsMutuallyExclusive("inactive", "select")
}

func (f *selectorFlags) build(cmd *cobra.Command, cd codec.Codec) (*activeset.Selector, error) {
	if f.inactive {
		return activeset.NewInactive(), nil
	}
	sel := activeset.New()
	for _, i := range f.indices {
		idx, err := conv.ToUint32(i)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %w", err)
		}
		sel.AddIndex(idx)
	}
	if f.file != "" {
		data, err := readInput(cmd, f.file)
		if err != nil {
			return nil, err
		}
		var idx []uint32
		if err := cd.Unmarshal(data, &idx); err != nil {
			return nil, fmt.Errorf("failed to decode selector %s: %w", f.file, err)
		}
		sel.AddIndices(idx...)
	}
	return sel, nil
}

// readInput reads a file, or standard input for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

func (a *app) readValues(cmd *cobra.Command, path string) ([]float64, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	var values []float64
	if err := a.codec.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode values %s: %w", path, err)
	}
	return values, nil
}

func (a *app) print(cmd *cobra.Command, v any) error {
	out, err := a.codec.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
	return err
}

func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

func (a *app) newWriteCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "write NAME VALUES",
		Short: "Store a JSON array of values as a new vector blob",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := a.readValues(cmd, args[1])
			if err != nil {
				return err
			}
			var info vectorfile.Info
			switch kind {
			case "float32":
				info, err = vectorfile.Write(cmd.Context(), a.store, args[0], toFloat32(values), a.opts...)
			case "float64":
				info, err = vectorfile.Write(cmd.Context(), a.store, args[0], values, a.opts...)
			default:
				return fmt.Errorf("unknown element type %q", kind)
			}
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "float64", "element type: float32 or float64")
	return cmd
}

func (a *app) newReadCmd() *cobra.Command {
	var sf selectorFlags
	cmd := &cobra.Command{
		Use:   "read NAME",
		Short: "Print the active elements of a vector blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.build(cmd, a.codec)
			if err != nil {
				return err
			}
			f, err := vectorfile.Open(cmd.Context(), a.store, args[0], a.opts...)
			if err != nil {
				return err
			}
			defer f.Close()

			switch f.Kind() {
			case vectorfile.KindFloat32:
				values, err := vectorfile.ReadActive[float32](cmd.Context(), f, sel)
				if err != nil {
					return err
				}
				return a.print(cmd, values)
			default:
				values, err := vectorfile.ReadActive[float64](cmd.Context(), f, sel)
				if err != nil {
					return err
				}
				return a.print(cmd, values)
			}
		},
	}
	addSelectorFlags(cmd, &sf)
	return cmd
}

func (a *app) newPatchCmd() *cobra.Command {
	var sf selectorFlags
	cmd := &cobra.Command{
		Use:   "patch NAME VALUES",
		Short: "Overwrite the active elements of a vector blob",
		Long: "Overwrite the active elements of a vector blob with a JSON array of\n" +
			"values in selector order. Inactive elements keep their stored values.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.build(cmd, a.codec)
			if err != nil {
				return err
			}
			values, err := a.readValues(cmd, args[1])
			if err != nil {
				return err
			}

			f, err := vectorfile.Open(cmd.Context(), a.store, args[0], a.opts...)
			if err != nil {
				return err
			}
			kind := f.Kind()
			_ = f.Close()

			var info vectorfile.Info
			if kind == vectorfile.KindFloat32 {
				info, err = vectorfile.WriteActive(cmd.Context(), a.store, args[0], sel, toFloat32(values), a.opts...)
			} else {
				info, err = vectorfile.WriteActive(cmd.Context(), a.store, args[0], sel, values, a.opts...)
			}
			if err != nil {
				return err
			}
			return a.print(cmd, info)
		},
	}
	addSelectorFlags(cmd, &sf)
	return cmd
}

// inspectReport is the output of the inspect command.
type inspectReport struct {
	vectorfile.Info
	Selector string `json:"selector"`
	Active   int    `json:"active"`
}

func (a *app) newInspectCmd() *cobra.Command {
	var sf selectorFlags
	cmd := &cobra.Command{
		Use:   "inspect NAME",
		Short: "Describe a vector blob and how many elements a selector covers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.build(cmd, a.codec)
			if err != nil {
				return err
			}
			f, err := vectorfile.Open(cmd.Context(), a.store, args[0], a.opts...)
			if err != nil {
				return err
			}
			defer f.Close()

			return a.print(cmd, inspectReport{
				Info:     f.Info(),
				Selector: sel.Summary(),
				Active:   sel.ActiveSize(f.Len()),
			})
		},
	}
	addSelectorFlags(cmd, &sf)
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [PREFIX]",
		Short: "List stored blobs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prefix string
			if len(args) == 1 {
				prefix = args[0]
			}
			names, err := a.store.List(cmd.Context(), prefix)
			if err != nil {
				return err
			}
			a.logger.WithCount(len(names)).DebugContext(cmd.Context(), "listed blobs", "prefix", prefix)
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
