// Package main provides the command line tool for watching a room's
// live event feed from a terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/landoop/livefeed"
	"github.com/landoop/livefeed/pkg/webcast/config"
	"github.com/landoop/livefeed/pkg/webcast/events"
)

// buildRevision is set at build time via -ldflags; empty in a dev build.
var buildRevision = ""

const examplePrefix = `livefeed-cli %s`

func exampleString(str string) string {
	return fmt.Sprintf(examplePrefix, str)
}

var (
	configPath string
	envPath    string
	sessionID  string
	noLiveCheck bool
)

var rootCmd = &cobra.Command{
	Use:                        "livefeed-cli [command] [flags]",
	Example:                    exampleString(`watch @someone`),
	Short:                      "livefeed-cli watches a room's real-time event feed from a terminal.",
	Long:                       "livefeed-cli - watch chat, gift, like, and member events for a live room",
	SilenceUsage:               true,
	SilenceErrors:              true,
	TraverseChildren:           true,
	SuggestionsMinimumDistance: 1,
}

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch [handle or room id]",
		Short:   "Connect to a room and print its event feed until interrupted.",
		Example: exampleString(`watch @someone`),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
	return cmd
}

func loadConfiguration() (config.Configuration, error) {
	if envPath != "" {
		if err := config.LoadEnvFile(envPath); err != nil {
			return config.Configuration{}, err
		}
	}

	cfg := config.Defaults()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Configuration{}, err
		}
		cfg = loaded
	}

	cfg = config.EnvOverride(cfg)
	if sessionID != "" {
		cfg.SessionID = sessionID
	}

	return cfg, nil
}

func runWatch(cmd *cobra.Command, handle string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	client := livefeed.New(cfg)

	client.On(events.KindConnect, func(events.Event) {
		fmt.Fprintf(cmd.OutOrStdout(), "connected to %s\n", handle)
	})
	client.On(events.KindChat, func(ev events.Event) {
		msg := ev.(events.ChatMessage)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", msg.User.Nickname, msg.Comment)
	})
	client.On(events.KindGift, func(ev events.Event) {
		msg := ev.(events.GiftMessage)
		fmt.Fprintf(cmd.OutOrStdout(), "%s sent gift %d x%d\n", msg.User.Nickname, msg.GiftID, msg.RepeatCount)
	})
	client.On(events.KindMember, func(ev events.Event) {
		msg := ev.(events.MemberMessage)
		fmt.Fprintf(cmd.OutOrStdout(), "%s joined\n", msg.User.Nickname)
	})
	client.On(events.KindLike, func(ev events.Event) {
		msg := ev.(events.LikeMessage)
		fmt.Fprintf(cmd.OutOrStdout(), "%s liked x%d (total %d)\n", msg.User.Nickname, msg.Count, msg.Total)
	})
	client.On(events.KindLiveEnd, func(events.Event) {
		fmt.Fprintln(cmd.OutOrStdout(), "stream ended")
	})
	client.On(events.KindDisconnect, func(ev events.Event) {
		d := ev.(events.DisconnectEvent)
		if d.Err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "disconnected: %v\n", d.Err)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "disconnected")
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var opts []livefeed.StartOption
	if noLiveCheck {
		opts = append(opts, livefeed.WithoutLiveCheck())
	}

	return client.Start(ctx, handle, opts...)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a livefeed-cli YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", "", "path to a .env file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session-id", "", "authenticated session cookie, required for SendRoomChat")
	rootCmd.PersistentFlags().BoolVar(&noLiveCheck, "skip-live-check", false, "skip the room-info liveness probe before connecting")

	rootCmd.AddCommand(newWatchCommand())

	if buildRevision != "" {
		rootCmd.Version = buildRevision
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
