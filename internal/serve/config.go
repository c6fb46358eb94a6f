package serve

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vblock/vblock/internal/server"
)

type Player struct {
	ScriptURL    string        `mapstructure:"script-url"`
	Namespace    string        `mapstructure:"namespace"`
	PollInterval time.Duration `mapstructure:"poll-interval"`
	ReadyTimeout time.Duration `mapstructure:"ready-timeout"`
}

type Analytics struct {
	ListLimit         int           `mapstructure:"list-limit"`
	SessionExpiration time.Duration `mapstructure:"session-expiration"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute"`
}

type Config struct {
	Server    server.Config `mapstructure:",squash"`
	Player    Player        `mapstructure:"player"`
	Analytics Analytics     `mapstructure:"analytics"`
}

func (c Config) Init(cmd *cobra.Command) error {
	if err := c.Server.Init(cmd); err != nil {
		return err
	}

	cmd.PersistentFlags().String("player.script-url", "", "url of the player script to probe and load")
	if err := viper.BindPFlag("player.script-url", cmd.PersistentFlags().Lookup("player.script-url")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("player.namespace", "", "global constructor the player script registers")
	if err := viper.BindPFlag("player.namespace", cmd.PersistentFlags().Lookup("player.namespace")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("player.poll-interval", 100*time.Millisecond, "interval between player readiness probes")
	if err := viper.BindPFlag("player.poll-interval", cmd.PersistentFlags().Lookup("player.poll-interval")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("player.ready-timeout", 10*time.Second, "time limit before the player is declared unavailable")
	if err := viper.BindPFlag("player.ready-timeout", cmd.PersistentFlags().Lookup("player.ready-timeout")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("analytics.list-limit", 0, "in-memory event list bound, negative disables the list")
	if err := viper.BindPFlag("analytics.list-limit", cmd.PersistentFlags().Lookup("analytics.list-limit")); err != nil {
		return err
	}

	cmd.PersistentFlags().Duration("analytics.session-expiration", 30*time.Minute, "idle time before a playback session is dropped")
	if err := viper.BindPFlag("analytics.session-expiration", cmd.PersistentFlags().Lookup("analytics.session-expiration")); err != nil {
		return err
	}

	cmd.PersistentFlags().Int("analytics.requests-per-minute", 0, "per-ip event ingestion limit")
	if err := viper.BindPFlag("analytics.requests-per-minute", cmd.PersistentFlags().Lookup("analytics.requests-per-minute")); err != nil {
		return err
	}

	return nil
}

func (c *Config) Set() {
	if err := viper.Unmarshal(c); err != nil {
		log.Panic().Msg("unable to unmarshal config structure")
	}

	if c.Player.ScriptURL == "" {
		log.Panic().Msg("player.script-url is required")
	}
}
