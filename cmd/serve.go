package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sched-autogen/api"
	"sched-autogen/config"
	"sched-autogen/internal/logger"
)

func newServeCmd(v *viper.Viper, cfgFile *string) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated workloads over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, *cfgFile)
			if err != nil {
				return err
			}
			log, closer := logger.New(cfg.Log)
			defer closer.Close()

			app := api.NewApp(api.NewWorkloadHandlerImpl(cfg, log))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				_ = app.Shutdown()
			}()

			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Info("serving workloads", "addr", addr, "output_dir", cfg.OutputDir)
			if err := app.Listen(addr); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
	serveCmd.Flags().Int("port", 9095, "port the HTTP API listens on")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	return serveCmd
}
