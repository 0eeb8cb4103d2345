package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/deadline"
	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

func TestGenesisStateValidate(t *testing.T) {
	require.NoError(t, types.DefaultGenesisState().Validate())

	subscription := testContract()

	fixed := testContract()
	fixed.Duration = types.FixedDuration(100)

	available := testContract()
	available.StartBlock = nil
	available.Rentee = ""

	valid := func() types.GenesisState {
		return *types.NewGenesisState(
			types.DefaultParams(),
			[]types.RawRentContract{subscription.ToRaw(1), fixed.ToRaw(2), available.ToRaw(3)},
			[]deadline.Entry[uint32]{{ID: 3, DueAt: 500}},
			[]deadline.Entry[uint32]{{ID: 2, DueAt: 112}},
			[]deadline.Entry[uint32]{{ID: 1, DueAt: 14}},
			[]types.Offer{{NFTID: 3, Rentees: []string{addr("rentee")}}},
		)
	}

	testCases := []struct {
		name       string
		malleate   func(gs *types.GenesisState)
		expectPass bool
	}{
		{"valid", func(*types.GenesisState) {}, true},
		{
			"missing queue entry",
			func(gs *types.GenesisState) { gs.SubscriptionQueue = nil },
			false,
		},
		{
			"contract in the wrong queue",
			func(gs *types.GenesisState) {
				gs.FixedQueue = []deadline.Entry[uint32]{{ID: 1, DueAt: 14}}
				gs.SubscriptionQueue = []deadline.Entry[uint32]{{ID: 2, DueAt: 112}}
			},
			false,
		},
		{
			"fixed deadline differs from the end block",
			func(gs *types.GenesisState) { gs.FixedQueue[0].DueAt = 113 },
			false,
		},
		{
			"duplicate contract",
			func(gs *types.GenesisState) {
				gs.Contracts = append(gs.Contracts, gs.Contracts[0])
				gs.SubscriptionQueue = append(gs.SubscriptionQueue, deadline.Entry[uint32]{ID: 9, DueAt: 20})
			},
			false,
		},
		{
			"offers on a started contract",
			func(gs *types.GenesisState) { gs.Offers[0].NFTID = 1 },
			false,
		},
		{
			"duplicate offer",
			func(gs *types.GenesisState) {
				gs.Offers[0].Rentees = append(gs.Offers[0].Rentees, addr("rentee"))
			},
			false,
		},
		{
			"invalid params",
			func(gs *types.GenesisState) { gs.Params.AccountSizeLimit = 0 },
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gs := valid()
			tc.malleate(&gs)

			err := gs.Validate()
			if tc.expectPass {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
