package cli

import (
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/tempo-labs/timed-contracts/server"
	"github.com/tempo-labs/timed-contracts/x/auction/types"
)

// GetQueryCmd returns the cli query commands for the auction module.
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
		CmdQueryAuction(),
		CmdQueryAuctions(),
		CmdQueryClaim(),
		CmdQueryDeadlines(),
	)

	return cmd
}

// CmdQueryParams implements a command that will return the current parameters of the auction module.
func CmdQueryParams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Query the current parameters of the auction module",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "params/"+types.ModuleName)
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryAuction implements a command that will return the auction of an NFT.
func CmdQueryAuction() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auction [nft-id]",
		Short: "Query the auction of an NFT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid nft id %q: %w", args[0], err)
			}

			return server.QueryAndPrint(cmd, fmt.Sprintf("auctions/%d", id))
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryAuctions implements a command that will return every live auction.
func CmdQueryAuctions() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auctions",
		Short: "Query every live auction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "auctions")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryClaim implements a command that will return the outbid amount owed
// to an account.
func CmdQueryClaim() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim [address]",
		Short: "Query the outbid amount an account can claim",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "claims/"+args[0])
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}

// CmdQueryDeadlines implements a command that will return the deadline queue.
func CmdQueryDeadlines() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "Query the auction deadline queue in processing order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.QueryAndPrint(cmd, "auctions/deadlines")
		},
	}

	server.AddQueryFlagsToCmd(cmd)

	return cmd
}
