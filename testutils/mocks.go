package testutils

import (
	"context"
	"reflect"

	"cosmossdk.io/math"
	"github.com/golang/mock/gomock"

	balancestypes "github.com/tempo-labs/timed-contracts/x/balances/types"
	marketplacetypes "github.com/tempo-labs/timed-contracts/x/marketplace/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
)

type MockBankKeeper struct {
	ctrl     *gomock.Controller
	recorder *MockBankKeeperMockRecorder
}

type MockBankKeeperMockRecorder struct {
	mock *MockBankKeeper
}

func NewMockBankKeeper(ctrl *gomock.Controller) *MockBankKeeper {
	mock := &MockBankKeeper{ctrl: ctrl}
	mock.recorder = &MockBankKeeperMockRecorder{mock}
	return mock
}

func (m *MockBankKeeper) EXPECT() *MockBankKeeperMockRecorder {
	return m.recorder
}

func (m *MockBankKeeper) Withdraw(ctx context.Context, addr string, amount math.Int, req balancestypes.ExistenceRequirement) (balancestypes.Imbalance, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Withdraw", ctx, addr, amount, req)
	ret0, _ := ret[0].(balancestypes.Imbalance)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockBankKeeperMockRecorder) Withdraw(ctx, addr, amount, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Withdraw", reflect.TypeOf((*MockBankKeeper)(nil).Withdraw), ctx, addr, amount, req)
}

func (m *MockBankKeeper) Deposit(ctx context.Context, addr string, imbalance balancestypes.Imbalance) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Deposit", ctx, addr, imbalance)
}

func (mr *MockBankKeeperMockRecorder) Deposit(ctx, addr, imbalance interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deposit", reflect.TypeOf((*MockBankKeeper)(nil).Deposit), ctx, addr, imbalance)
}

func (m *MockBankKeeper) FreeBalance(ctx context.Context, addr string) math.Int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FreeBalance", ctx, addr)
	ret0, _ := ret[0].(math.Int)
	return ret0
}

func (mr *MockBankKeeperMockRecorder) FreeBalance(ctx, addr interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FreeBalance", reflect.TypeOf((*MockBankKeeper)(nil).FreeBalance), ctx, addr)
}

type MockNFTKeeper struct {
	ctrl     *gomock.Controller
	recorder *MockNFTKeeperMockRecorder
}

type MockNFTKeeperMockRecorder struct {
	mock *MockNFTKeeper
}

func NewMockNFTKeeper(ctrl *gomock.Controller) *MockNFTKeeper {
	mock := &MockNFTKeeper{ctrl: ctrl}
	mock.recorder = &MockNFTKeeperMockRecorder{mock}
	return mock
}

func (m *MockNFTKeeper) EXPECT() *MockNFTKeeperMockRecorder {
	return m.recorder
}

func (m *MockNFTKeeper) GetNFT(ctx context.Context, id uint32) (nfttypes.NFT, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetNFT", ctx, id)
	ret0, _ := ret[0].(nfttypes.NFT)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockNFTKeeperMockRecorder) GetNFT(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetNFT", reflect.TypeOf((*MockNFTKeeper)(nil).GetNFT), ctx, id)
}

func (m *MockNFTKeeper) SetOwner(ctx context.Context, id uint32, owner string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetOwner", ctx, id, owner)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockNFTKeeperMockRecorder) SetOwner(ctx, id, owner interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetOwner", reflect.TypeOf((*MockNFTKeeper)(nil).SetOwner), ctx, id, owner)
}

func (m *MockNFTKeeper) SetFlag(ctx context.Context, id uint32, flag nfttypes.Flag, value bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetFlag", ctx, id, flag, value)
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockNFTKeeperMockRecorder) SetFlag(ctx, id, flag, value interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetFlag", reflect.TypeOf((*MockNFTKeeper)(nil).SetFlag), ctx, id, flag, value)
}

type MockMarketplaceKeeper struct {
	ctrl     *gomock.Controller
	recorder *MockMarketplaceKeeperMockRecorder
}

type MockMarketplaceKeeperMockRecorder struct {
	mock *MockMarketplaceKeeper
}

func NewMockMarketplaceKeeper(ctrl *gomock.Controller) *MockMarketplaceKeeper {
	mock := &MockMarketplaceKeeper{ctrl: ctrl}
	mock.recorder = &MockMarketplaceKeeperMockRecorder{mock}
	return mock
}

func (m *MockMarketplaceKeeper) EXPECT() *MockMarketplaceKeeperMockRecorder {
	return m.recorder
}

func (m *MockMarketplaceKeeper) GetMarketplace(ctx context.Context, id uint32) (marketplacetypes.Marketplace, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetMarketplace", ctx, id)
	ret0, _ := ret[0].(marketplacetypes.Marketplace)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

func (mr *MockMarketplaceKeeperMockRecorder) GetMarketplace(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetMarketplace", reflect.TypeOf((*MockMarketplaceKeeper)(nil).GetMarketplace), ctx, id)
}
