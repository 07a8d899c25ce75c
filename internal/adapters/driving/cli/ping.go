package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/annolab/geotag/internal/adapters/driven/gazetteer/httpchannel"
)

var pingEndpoint string

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the gazetteer service is reachable",
	RunE: func(cmd *cobra.Command, _ []string) error {
		channel := httpchannel.NewChannel(httpchannel.Config{
			BaseURL: pingEndpoint,
			Timeout: 10 * time.Second,
		})
		if err := channel.Ping(context.Background()); err != nil {
			return err
		}
		cmd.Println("Gazetteer service is reachable.")
		return nil
	},
}

func init() {
	pingCmd.Flags().StringVar(&pingEndpoint, "endpoint", "", "gazetteer service base URL")
	rootCmd.AddCommand(pingCmd)
}
