package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/server"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// GetQueryCmd returns the cli query commands for the transmission module.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("Querying commands for the %s module", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryParams(),
		CmdQueryTransmission(),
		CmdQueryTransmissions(),
		CmdQueryQueue(),
	)

	return cmd
}

// CmdQueryParams implements a command that will return the current parameters of the transmission module.
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current parameters of the transmission module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "params/"+types.ModuleName)
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryTransmission implements a command that will return the protocol set
// on an NFT.
func CmdQueryTransmission() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transmission [nft-id]",
		Short: "Query the transmission protocol of an NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid nft id %q: %w", args[0], err)
			}

			return server.QueryAndPrint(cmd, fmt.Sprintf("transmissions/%d", id))
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryTransmissions implements a command that will return every protocol.
func CmdQueryTransmissions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transmissions",
		Short: "Query every transmission protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "transmissions")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryQueue implements a command that will return the timed protocols in
// processing order.
func CmdQueryQueue() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Query the timed protocols in processing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "transmissions/queue")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}
