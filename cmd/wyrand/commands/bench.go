package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opd-ai/go-wyrand"
)

const defaultBenchSizes = "16B,256B,4KiB,1MiB"

type benchOptions struct {
	sizes    string
	duration time.Duration
}

// benchCase is one algorithm under measurement.
type benchCase struct {
	name string
	sum  func([]byte) uint64
}

func benchCases() []benchCase {
	legacy := wyrand.DefaultSecret(wyrand.Legacy)
	current := wyrand.DefaultSecret(wyrand.Current)
	return []benchCase{
		{"wyhash/legacy", func(b []byte) uint64 { return wyrand.Sum64WithSecret(0, legacy, b) }},
		{"wyhash/current", func(b []byte) uint64 { return wyrand.Sum64WithSecret(0, current, b) }},
		{"xxhash", xxhash.Sum64},
	}
}

func newBenchCommand(env *Env) *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure hashing throughput against xxhash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sizes, err := parseSizes(opts.sizes)
			if err != nil {
				return err
			}
			if opts.duration <= 0 {
				return fmt.Errorf("duration must be positive, got %v", opts.duration)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Size", "Algorithm", "ns/op", "Throughput"})

			for _, size := range sizes {
				data := make([]byte, size)
				wyrand.NewRand(wyrand.Current, size).Read(data)

				for _, bc := range benchCases() {
					nsPerOp := measure(bc.sum, data, opts.duration)
					env.Log.Debug("bench case",
						zap.String("algorithm", bc.name),
						zap.Uint64("size", size),
						zap.Float64("ns_per_op", nsPerOp))

					t.AppendRow(table.Row{
						humanize.IBytes(size),
						bc.name,
						fmt.Sprintf("%.2f", nsPerOp),
						throughput(size, nsPerOp),
					})
				}
				t.AppendSeparator()
			}

			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.sizes, "sizes", defaultBenchSizes, "comma-separated input sizes, e.g. 64B,4KiB")
	cmd.Flags().DurationVar(&opts.duration, "duration", 200*time.Millisecond, "time spent per case")

	return cmd
}

// parseSizes parses a comma-separated list of humanized byte sizes.
func parseSizes(list string) ([]uint64, error) {
	var sizes []uint64
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := humanize.ParseBytes(field)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", field, err)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

// sink keeps the compiler from discarding benchmarked calls.
var sink uint64

// measure runs sum over data in doubling batches until d has elapsed and
// returns the mean nanoseconds per call.
func measure(sum func([]byte) uint64, data []byte, d time.Duration) float64 {
	var ops int64
	batch := int64(1)
	start := time.Now()
	for {
		for i := int64(0); i < batch; i++ {
			sink += sum(data)
		}
		ops += batch
		if elapsed := time.Since(start); elapsed >= d {
			return float64(elapsed) / float64(ops)
		}
		if batch < 1<<20 {
			batch *= 2
		}
	}
}

func throughput(size uint64, nsPerOp float64) string {
	if nsPerOp <= 0 {
		return "n/a"
	}
	perSec := float64(size) * 1e9 / nsPerOp
	return humanize.IBytes(uint64(perSec)) + "/s"
}
