package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/server"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// TxCmd groups the commands submitting messages to a running server.
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Transactions subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(BroadcastCmd())

	return cmd
}

// BroadcastCmd submits the message envelope stored in a file.
func BroadcastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "broadcast [file]",
		Short: "Broadcast a message envelope read from a file, - for stdin",
		Long: `Broadcast a message envelope of the form

	{"type": "auction/MsgAddBid", "value": {"bidder": "...", "nft_id": 1, "amount": "100"}}

and print the events it emitted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readEnvelope(cmd, args[0])
			if err != nil {
				return err
			}

			c, err := server.ClientFromCmd(cmd)
			if err != nil {
				return err
			}

			res, err := c.Broadcast(cmd.Context(), env)
			if err != nil {
				return err
			}

			return server.PrintJSON(cmd, res)
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func readEnvelope(cmd *cobra.Command, path string) (timedtypes.Envelope, error) {
	var (
		bz  []byte
		err error
	)
	if path == "-" {
		bz, err = io.ReadAll(cmd.InOrStdin())
	} else {
		bz, err = os.ReadFile(path)
	}
	if err != nil {
		return timedtypes.Envelope{}, err
	}

	var env timedtypes.Envelope
	if err := json.Unmarshal(bz, &env); err != nil {
		return timedtypes.Envelope{}, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.Type == "" {
		return timedtypes.Envelope{}, fmt.Errorf("envelope has no type")
	}

	return env, nil
}
