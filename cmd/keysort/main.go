package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kochabx/keysort/app"
	"github.com/kochabx/keysort/log"
)

const greeting = "Hello, world!"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "keysort",
		Short:        "Compare key-derivation strategies for sorting numeric strings",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), greeting)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default ./keysort.yaml if present)")
	root.PersistentFlags().Uint64("seed", 0, "seed for dataset generation; 0 uses a random seed")
	root.PersistentFlags().String("log-level", "info", "log level")

	root.AddCommand(newCheckCmd(), newBenchCmd())
	return root
}

// commonBinds maps config keys to the persistent flags.
var commonBinds = map[string]string{
	"seed":      "seed",
	"log.level": "log-level",
}

func withBinds(binds map[string]string) map[string]string {
	all := make(map[string]string, len(commonBinds)+len(binds))
	for k, v := range commonBinds {
		all[k] = v
	}
	for k, v := range binds {
		all[k] = v
	}
	return all
}

// run sets up logging from s and runs task to completion under an
// Application that cancels it on SIGINT/SIGTERM.
func run(ctx context.Context, s *Settings, name string, task func(context.Context, *log.Logger) error, closers ...app.Option) error {
	base, err := log.Setup(s.Log)
	if err != nil {
		return err
	}
	logger := base.WithField("run_id", uuid.NewString())
	prev := log.G
	log.SetGlobalLogger(logger)
	defer log.SetGlobalLogger(prev)

	opts := []app.Option{
		app.WithContext(ctx),
		app.WithTask(name, func(ctx context.Context) error {
			return task(ctx, logger)
		}),
	}
	opts = append(opts, closers...)
	opts = append(opts, app.WithClose("logger", func(context.Context) error {
		return base.Close()
	}, 0))

	return app.New(opts...).Run()
}
