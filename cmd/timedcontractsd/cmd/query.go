package cmd

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/server"
	auctioncli "github.com/tempo-labs/timed-contracts/x/auction/client/cli"
	rentcli "github.com/tempo-labs/timed-contracts/x/rent/client/cli"
	transmissioncli "github.com/tempo-labs/timed-contracts/x/transmission/client/cli"
)

// QueryCmd groups the commands querying a running server.
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		auctioncli.GetQueryCmd(),
		rentcli.GetQueryCmd(),
		transmissioncli.GetQueryCmd(),
		simpleQueryCmd("height", "Query the last executed block", "height"),
		simpleQueryCmd("genesis", "Export the current state", "genesis"),
		simpleQueryCmd("msg-types", "List the accepted message types", "msgs"),
		addressQueryCmd("balance", "Query the free balance of an account", "balances/"),
		numberQueryCmd("nft", "Query an NFT", "nfts/"),
		numberQueryCmd("events", "Query the events of a block", "events/"),
		paramsQueryCmd(),
	)

	return cmd
}

func simpleQueryCmd(use, short, path string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return server.QueryAndPrint(cmd, path)
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func addressQueryCmd(use, short, prefix string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [address]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, prefix+args[0])
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func numberQueryCmd(use, short, prefix string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [number]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}

			return server.QueryAndPrint(cmd, prefix+strconv.FormatUint(n, 10))
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

func paramsQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params [module]",
		Short: "Query the parameters of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "params/"+args[0])
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}
