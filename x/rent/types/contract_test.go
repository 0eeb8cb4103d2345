package types_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/tempo-labs/timed-contracts/x/rent/types"
)

func addr(name string) string {
	return sdk.AccAddress([]byte(name)).String()
}

func testContract() types.RentContract {
	start := uint64(12)

	return types.RentContract{
		CreationBlock:         10,
		StartBlock:            &start,
		Renter:                addr("renter"),
		Rentee:                addr("rentee"),
		Duration:              types.SubscriptionDuration(2, 10, true),
		AcceptanceType:        types.ManualAcceptance(addr("rentee"), addr("other")),
		RenterCanRevoke:       true,
		RentFee:               types.TokensRentFee(math.NewInt(10)),
		RenterCancellationFee: types.FixedCancellationFee(math.NewInt(5)),
		RenteeCancellationFee: types.NFTCancellationFee(9),
		TermsAccepted:         true,
	}
}

func TestContractRawRoundTrip(t *testing.T) {
	c := testContract()

	id, restored, err := types.ContractFromRaw(c.ToRaw(3))
	require.NoError(t, err)
	require.Equal(t, uint32(3), id)
	require.Equal(t, c, restored)

	// the raw form owns its own copies
	raw := c.ToRaw(3)
	*raw.StartBlock = 99
	raw.AcceptanceType.AllowList[0] = addr("mallory")
	require.Equal(t, uint64(12), *c.StartBlock)
	require.Equal(t, addr("rentee"), c.AcceptanceType.AllowList[0])

	raw = c.ToRaw(3)
	raw.Rentee = ""
	_, _, err = types.ContractFromRaw(raw)
	require.Error(t, err)

	raw = c.ToRaw(3)
	raw.StartBlock = nil
	_, _, err = types.ContractFromRaw(raw)
	require.Error(t, err)
}

func TestContractEndBlock(t *testing.T) {
	c := testContract()
	_, ok := c.EndBlock()
	require.False(t, ok)

	c.Duration = types.FixedDuration(100)
	end, ok := c.EndBlock()
	require.True(t, ok)
	require.Equal(t, uint64(112), end)

	c.StartBlock = nil
	_, ok = c.EndBlock()
	require.False(t, ok)
}

func TestAcceptanceAllows(t *testing.T) {
	require.True(t, types.AutoAcceptance().Allows(addr("anyone")))

	a := types.ManualAcceptance(addr("alice"))
	require.True(t, a.Allows(addr("alice")))
	require.False(t, a.Allows(addr("bob")))
}

func TestValidateTerms(t *testing.T) {
	tokens := types.TokensRentFee(math.NewInt(10))
	none := types.NoCancellationFee()

	testCases := []struct {
		name        string
		duration    types.Duration
		rentFee     types.RentFee
		renterFee   types.CancellationFee
		renteeFee   types.CancellationFee
		expectedErr error
	}{
		{
			name:      "fixed contract with flexible fees",
			duration:  types.FixedDuration(100),
			rentFee:   tokens,
			renterFee: types.FlexibleCancellationFee(math.NewInt(10)),
			renteeFee: types.FlexibleCancellationFee(math.NewInt(10)),
		},
		{
			name:      "subscription paid in tokens",
			duration:  types.SubscriptionDuration(10, 0, false),
			rentFee:   tokens,
			renterFee: types.FixedCancellationFee(math.NewInt(1)),
			renteeFee: types.NFTCancellationFee(5),
		},
		{
			name:        "zero blocks",
			duration:    types.FixedDuration(0),
			rentFee:     tokens,
			renterFee:   none,
			renteeFee:   none,
			expectedErr: types.ErrInvalidDuration,
		},
		{
			name:        "max duration below period",
			duration:    types.SubscriptionDuration(10, 5, false),
			rentFee:     tokens,
			renterFee:   none,
			renteeFee:   none,
			expectedErr: types.ErrInvalidDuration,
		},
		{
			name:        "zero rent fee",
			duration:    types.FixedDuration(10),
			rentFee:     types.TokensRentFee(math.ZeroInt()),
			renterFee:   none,
			renteeFee:   none,
			expectedErr: types.ErrInvalidFee,
		},
		{
			name:        "subscription paid with an nft",
			duration:    types.SubscriptionDuration(10, 0, false),
			rentFee:     types.NFTRentFee(4),
			renterFee:   none,
			renteeFee:   none,
			expectedErr: types.ErrNFTFeeOnSubscription,
		},
		{
			name:        "subscription with a flexible fee",
			duration:    types.SubscriptionDuration(10, 0, false),
			rentFee:     tokens,
			renterFee:   none,
			renteeFee:   types.FlexibleCancellationFee(math.NewInt(3)),
			expectedErr: types.ErrFlexibleFeeOnSubscription,
		},
		{
			name:        "rented nft used as fee",
			duration:    types.FixedDuration(10),
			rentFee:     tokens,
			renterFee:   types.NFTCancellationFee(1),
			renteeFee:   none,
			expectedErr: types.ErrCannotUseRentedNFTAsFee,
		},
		{
			name:        "same nft as rent fee and rentee fee",
			duration:    types.FixedDuration(10),
			rentFee:     types.NFTRentFee(4),
			renterFee:   none,
			renteeFee:   types.NFTCancellationFee(4),
			expectedErr: types.ErrInvalidFee,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := types.ValidateTerms(1, tc.duration, types.AutoAcceptance(), tc.rentFee, tc.renterFee, tc.renteeFee)
			if tc.expectedErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
