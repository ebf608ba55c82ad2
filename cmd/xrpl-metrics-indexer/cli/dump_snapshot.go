package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/clients/snapshotclient"
	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/config"
)

func DumpSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-snapshot",
		Short: "Fetches the remote daily snapshot and prints it as JSON",
		Run:   dumpSnapshot,
	}

	return cmd
}

func dumpSnapshot(cmd *cobra.Command, args []string) {
	if err := dumpSnapshotE(cmd, args); err != nil {
		log.Err(err).Msg("Failed to dump snapshot")
		os.Exit(1)
	}

	os.Exit(0)
}

func dumpSnapshotE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	client := snapshotclient.NewClient(&cfg.Snapshot)
	snapshot, err := client.GetSnapshot(ctx)
	if err != nil {
		return err
	}

	buff, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(buff))
	return nil
}
