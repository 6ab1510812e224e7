// Package commands implements the wyrand CLI subcommands.
package commands

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opd-ai/go-wyrand"
	"github.com/opd-ai/go-wyrand/internal/config"
)

// Version is set at build time with -ldflags "-X ...commands.Version=...".
var Version = "dev"

// Env carries the dependencies shared by every subcommand.
type Env struct {
	Config config.Config
	Log    *zap.Logger
	Fs     afero.Fs
	In     io.Reader
	Out    io.Writer
}

// NewRootCommand creates the wyrand command tree.
func NewRootCommand(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "wyrand",
		Short: "wyhash digests and wyrand random streams",
		Long: `wyrand computes wyhash digests and wyrand pseudorandom streams for the
legacy (final v4) and current (final v4.2) revisions of the algorithms.

Settings default to the WYRAND_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(env.Out)
	root.SetIn(env.In)

	root.AddCommand(
		newHashCommand(env),
		newRandCommand(env),
		newSecretCommand(env),
		newVerifyCommand(env),
		newBenchCommand(env),
		newVersionCommand(),
	)

	return root
}

// revisionFlags holds the flags that pick a revision and seed.
type revisionFlags struct {
	revision string
	seed     uint64
}

func (f *revisionFlags) register(cmd *cobra.Command, env *Env) {
	cmd.Flags().StringVarP(&f.revision, "revision", "r", env.Config.Revision, "algorithm revision: legacy or current")
	cmd.Flags().Uint64Var(&f.seed, "seed", env.Config.Seed, "seed value")
}

func (f *revisionFlags) parse() (wyrand.Revision, error) {
	return wyrand.ParseRevision(f.revision)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte("wyrand " + Version + "\n"))
			return err
		},
	}
}
