package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-wyrand"
)

func newSecretCommand(env *Env) *cobra.Command {
	var revision string

	cmd := &cobra.Command{
		Use:   "secret <seed>",
		Short: "Derive and check a wyhash secret",
		Long: `Derive the four secret constants for <seed> (decimal or 0x-prefixed hex)
and check that every value is odd, every pair differs in exactly 32 bits,
and, for the current revision, every value is prime.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rev, err := wyrand.ParseRevision(revision)
			if err != nil {
				return err
			}
			seed, err := strconv.ParseUint(args[0], 0, 64)
			if err != nil {
				return fmt.Errorf("invalid seed: %w", err)
			}

			secret := wyrand.MakeSecret(rev, seed)
			out := cmd.OutOrStdout()
			for i, v := range secret.Values() {
				fmt.Fprintf(out, "secret[%d] = 0x%016x\n", i, v)
			}
			if err := secret.Validate(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "valid %s secret\n", rev)
			return err
		},
	}

	cmd.Flags().StringVarP(&revision, "revision", "r", env.Config.Revision, "algorithm revision: legacy or current")

	return cmd
}
