package cmd_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/app"
	"github.com/tempo-labs/timed-contracts/cmd/timedcontractsd/cmd"
	"github.com/tempo-labs/timed-contracts/server"
	"github.com/tempo-labs/timed-contracts/testutils"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--"+cmd.FlagHome, home))

	err := root.Execute()
	return out.String(), err
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()

	bz, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, bz, 0o600))

	return path
}

func TestConfigPrecedence(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, home, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, `log_level = "info"`)

	_, err = execute(t, home, "config", "init", "--"+cmd.FlagLogLevel, "error")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(home, "config", "config.toml"))

	out, err = execute(t, home, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, `log_level = "error"`)

	t.Setenv("TIMED_LOG_LEVEL", "debug")
	out, err = execute(t, home, "config", "show")
	require.NoError(t, err)
	require.Contains(t, out, `log_level = "debug"`)

	out, err = execute(t, home, "config", "show", "--"+cmd.FlagLogLevel, "warn")
	require.NoError(t, err)
	require.Contains(t, out, `log_level = "warn"`)
}

func TestInvalidConfigIsRejected(t *testing.T) {
	_, err := execute(t, t.TempDir(), "config", "show", "--"+cmd.FlagLogFormat, "xml")
	require.Error(t, err)

	t.Setenv("TIMED_FEE_COLLECTOR", "proposer")
	_, err = execute(t, t.TempDir(), "config", "show")
	require.Error(t, err)
}

func TestGenesisCommands(t *testing.T) {
	out, err := execute(t, t.TempDir(), "genesis", "default")
	require.NoError(t, err)

	var doc app.GenesisDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Equal(t, app.DefaultOptions().ChainID, doc.ChainID)
	require.Contains(t, doc.AppState, "transmission")

	_, err = execute(t, t.TempDir(), "genesis", "validate", writeJSON(t, doc))
	require.NoError(t, err)

	doc.AppState["auction"] = json.RawMessage(`{"params":{}}`)
	_, err = execute(t, t.TempDir(), "genesis", "validate", writeJSON(t, doc))
	require.Error(t, err)

	// missing file in the home directory
	_, err = execute(t, t.TempDir(), "genesis", "validate")
	require.Error(t, err)
}

func TestSimulate(t *testing.T) {
	alice := testutils.Address("alice")
	bob := testutils.Address("bob")

	mint, err := timedtypes.Wrap(&nfttypes.MsgCreateNFT{Owner: alice, Offchain: "ipfs://nft"})
	require.NoError(t, err)
	transfer, err := timedtypes.Wrap(&balancestypes.MsgTransfer{From: alice, To: bob, Amount: math.NewInt(1)})
	require.NoError(t, err)

	s := app.Scenario{Steps: []app.Step{
		{Msg: &mint, ExpectEvents: []string{nfttypes.EventTypeNFTCreated}},
		{Msg: &transfer, ExpectError: "insufficient balance"},
		{AdvanceTo: 3},
	}}

	out, err := execute(t, t.TempDir(), "simulate", writeJSON(t, s))
	require.NoError(t, err)

	var results []app.StepResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	require.Equal(t, uint64(3), results[2].Height)

	s.Steps[1].ExpectError = ""
	_, err = execute(t, t.TempDir(), "simulate", writeJSON(t, s))
	require.ErrorIs(t, err, balancestypes.ErrInsufficientBalance)
}

func TestQueryAndBroadcast(t *testing.T) {
	engine, err := app.NewEngine(log.NewNopLogger(), app.DefaultOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, engine.InitGenesis(engine.DefaultGenesis()))

	ts := httptest.NewServer(server.New(engine, log.NewNopLogger()).Router())
	defer ts.Close()

	node := "--" + server.FlagNode

	env, err := timedtypes.Wrap(&nfttypes.MsgCreateNFT{Owner: testutils.Address("alice"), Offchain: "ipfs://nft"})
	require.NoError(t, err)

	out, err := execute(t, t.TempDir(), "tx", "broadcast", writeJSON(t, env), node, ts.URL)
	require.NoError(t, err)

	var res app.TxResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Events, 1)

	out, err = execute(t, t.TempDir(), "query", "nft", "0", node, ts.URL)
	require.NoError(t, err)

	var n nfttypes.NFT
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	require.Equal(t, testutils.Address("alice"), n.Owner)

	out, err = execute(t, t.TempDir(), "query", "transmission", "params", node, ts.URL)
	require.NoError(t, err)
	require.Contains(t, out, "max_block_duration")

	_, err = execute(t, t.TempDir(), "query", "transmission", "transmission", "0", node, ts.URL)
	require.Error(t, err)
}
