package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/server"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

// GetQueryCmd returns the cli query commands for the rent module.
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
		CmdQueryContract(),
		CmdQueryContracts(),
		CmdQueryQueues(),
	)

	return cmd
}

// CmdQueryParams implements a command that will return the current parameters of the rent module.
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current parameters of the rent module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "params/"+types.ModuleName)
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryContract implements a command that will return the rent contract of
// an NFT together with its pending offers.
func CmdQueryContract() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract [nft-id]",
		Short: "Query the rent contract of an NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid nft id %q: %w", args[0], err)
			}

			return server.QueryAndPrint(cmd, fmt.Sprintf("rent/contracts/%d", id))
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func CmdQueryContracts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Query every rent contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "rent/contracts")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func CmdQueryQueues() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "queues",
		Short: "Query the available, fixed and subscription queues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "rent/queues")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}
