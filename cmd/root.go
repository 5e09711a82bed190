package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sched-autogen/config"
	"sched-autogen/internal/generator"
	"sched-autogen/internal/logger"
	"sched-autogen/internal/random"
)

// NewRootCmd builds the command tree. Flags are bound into v so they take
// precedence over the config file.
func NewRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sched-autogen",
		Short: "Generate random input files for the scheduler simulator",
		Long: `sched-autogen writes synthetic workloads for the process scheduler
simulator. Each run creates input0 through input6 in the output directory, one
process per line as "arrival<TAB>total_cpu<TAB>cpu_burst<TAB>io_burst".`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			log, closer := logger.New(cfg.Log)
			defer closer.Close()

			g := generator.New(cfg.Limits, random.New(cfg.Seed), log)
			if _, err := g.GenerateDir(cfg.OutputDir); err != nil {
				log.Error("generation aborted", "output_dir", cfg.OutputDir, "error", err)
				return err
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config-file", "", "config file (default is ./config.yaml when present)")
	flags.String("output-dir", ".", "directory the input files are written to")
	flags.Uint64("seed", 0, "seed for reproducible output (default: random)")
	_ = v.BindPFlag("output_dir", flags.Lookup("output-dir"))
	_ = v.BindPFlag("seed", flags.Lookup("seed"))

	rootCmd.AddCommand(newServeCmd(v, &cfgFile))
	return rootCmd
}

func Execute() {
	if err := NewRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
