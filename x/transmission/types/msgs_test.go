package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	timedtypes "github.com/tempo-labs/timed-contracts/types"
	"github.com/tempo-labs/timed-contracts/x/transmission/types"
)

func TestMsgValidateBasic(t *testing.T) {
	owner := addr("owner")

	set := types.MsgSetTransmissionProtocol{
		Owner:        owner,
		NFTID:        1,
		Recipient:    addr("recipient"),
		Protocol:     types.AtBlock(100),
		Cancellation: types.CancellableUntil(50),
	}

	selfRecipient := set
	selfRecipient.Recipient = owner

	badConsentList := set
	badConsentList.Protocol = types.OnConsent([]string{"not-an-address"}, 1)

	lateCancellation := set
	lateCancellation.Cancellation = types.CancellableUntil(101)

	testCases := []struct {
		description string
		msg         timedtypes.Msg
		expectPass  bool
	}{
		{"valid set", set, true},
		{"set to self", selfRecipient, false},
		{"set with a bad consent list", badConsentList, false},
		{"set with a late cancellation", lateCancellation, false},
		{"valid remove", types.MsgRemoveTransmissionProtocol{Owner: owner, NFTID: 1}, true},
		{"remove without owner", types.MsgRemoveTransmissionProtocol{NFTID: 1}, false},
		{"valid reset", types.MsgResetTimer{Owner: owner, NFTID: 1, Block: 10}, true},
		{"reset to block zero", types.MsgResetTimer{Owner: owner, NFTID: 1}, false},
		{"valid consent", types.MsgAddConsent{Account: owner, NFTID: 1}, true},
		{"consent with a bad account", types.MsgAddConsent{Account: "nope", NFTID: 1}, false},
		{"valid params", types.MsgUpdateParams{Authority: owner, Params: types.DefaultParams()}, true},
		{"invalid params", types.MsgUpdateParams{Authority: owner, Params: types.Params{}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.expectPass {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
