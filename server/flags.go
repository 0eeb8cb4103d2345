package server

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	FlagNode = "node"

	DefaultNode = "http://localhost:1317"
)

// AddQueryFlagsToCmd adds the flags every command talking to a server needs.
func AddQueryFlagsToCmd(cmd *cobra.Command) {
	cmd.Flags().String(FlagNode, DefaultNode, "<host>:<port> of the server to query")
}

// ClientFromCmd returns a client for the server named by the --node flag.
func ClientFromCmd(cmd *cobra.Command) (*Client, error) {
	node, err := cmd.Flags().GetString(FlagNode)
	if err != nil {
		return nil, err
	}

	return NewClient(node), nil
}

// QueryAndPrint runs GET /v1/<path> and prints the indented JSON result.
func QueryAndPrint(cmd *cobra.Command, path string) error {
	client, err := ClientFromCmd(cmd)
	if err != nil {
		return err
	}

	var res json.RawMessage
	if err := client.Get(cmd.Context(), path, &res); err != nil {
		return err
	}

	return PrintJSON(cmd, res)
}

// PrintJSON writes v to the command output as indented JSON.
func PrintJSON(cmd *cobra.Command, v any) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
