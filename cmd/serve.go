package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vblock/vblock/internal/serve"
)

func init() {
	service := serve.NewCommand()

	command := &cobra.Command{
		Use:   "serve",
		Short: "serve video block decoration server",
		Long:  `serve video block decoration server`,
		Run:   service.Run,
	}

	cobra.OnInitialize(func() {
		service.Config.Set()
		service.Preflight()
	})

	// re-apply on config file change
	onConfigLoad = append(onConfigLoad, func() {
		service.Config.Set()
		service.ConfigReload()
	})

	if err := service.Config.Init(command); err != nil {
		log.Panic().Err(err).Msg("unable to initialize serve command")
	}

	rootCmd.AddCommand(command)
}
