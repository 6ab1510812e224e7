package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-wyrand"
)

const (
	formatU64   = "u64"
	formatU32   = "u32"
	formatHex   = "hex"
	formatBytes = "bytes"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown format")

type randOptions struct {
	revisionFlags
	count  int
	format string
}

func newRandCommand(env *Env) *cobra.Command {
	var opts randOptions

	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Print a wyrand pseudorandom stream",
		Long: `Print --count values drawn from a wyrand generator seeded with --seed.

Formats: u64 and u32 print one decimal value per line, hex prints 16 hex
digits per line, bytes writes --count raw bytes (little-endian words).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rev, err := opts.parse()
			if err != nil {
				return err
			}
			if opts.count < 0 {
				return fmt.Errorf("count must not be negative, got %d", opts.count)
			}
			return writeRandom(cmd.OutOrStdout(), wyrand.NewRand(rev, opts.seed), opts.count, opts.format)
		},
	}

	opts.register(cmd, env)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 10, "number of values (bytes for --format bytes)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatU64, "output format: u64, u32, hex, bytes")

	return cmd
}

func writeRandom(w io.Writer, rng *wyrand.Rand, count int, format string) error {
	switch format {
	case formatU64, formatU32, formatHex:
	case formatBytes:
		_, err := io.CopyN(w, rng, int64(count))
		return err
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 24)
	for i := 0; i < count; i++ {
		buf = buf[:0]
		switch format {
		case formatU64:
			buf = strconv.AppendUint(buf, rng.Uint64(), 10)
		case formatU32:
			buf = strconv.AppendUint(buf, uint64(rng.Uint32()), 10)
		case formatHex:
			buf = fmt.Appendf(buf, "%016x", rng.Uint64())
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
