package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opd-ai/go-wyrand"
)

// ErrVectorMismatch is returned when any test vector fails.
var ErrVectorMismatch = errors.New("test vectors failed")

func newVerifyCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <vectors.json>",
		Short: "Check this implementation against a test vector file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suite, err := wyrand.LoadTestVectors(env.Fs, args[0])
			if err != nil {
				return err
			}
			env.Log.Info("loaded test vectors",
				zap.String("path", args[0]),
				zap.String("version", suite.Version),
				zap.Int("count", len(suite.Vectors)))

			out := cmd.OutOrStdout()
			var failed int
			for _, res := range suite.Verify() {
				switch {
				case res.Err != nil:
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", res.Name, res.Err)
				case !res.OK():
					failed++
					fmt.Fprintf(out, "FAIL %s: got %016x, want %016x\n", res.Name, res.Got, res.Expected)
				}
			}

			fmt.Fprintf(out, "%d/%d vectors passed\n", len(suite.Vectors)-failed, len(suite.Vectors))
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrVectorMismatch, failed, len(suite.Vectors))
			}
			return nil
		},
	}
}
