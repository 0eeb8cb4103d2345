package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/gorilla/mux"

	"github.com/tempo-labs/timed-contracts/app"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
	auctiontypes "github.com/tempo-labs/timed-contracts/x/auction/types"
	nfttypes "github.com/tempo-labs/timed-contracts/x/nft/types"
	renttypes "github.com/tempo-labs/timed-contracts/x/rent/types"
	transmissiontypes "github.com/tempo-labs/timed-contracts/x/transmission/types"
)

// maxBodySize bounds the size of a submitted message.
const maxBodySize = 1 << 20

type (
	// Server exposes an Engine over HTTP.
	Server struct {
		engine *app.Engine
		logger log.Logger
		router *mux.Router
	}

	// ErrorResponse is the body of every failed request.
	ErrorResponse struct {
		Codespace string `json:"codespace"`
		Code      uint32 `json:"code"`
		Log       string `json:"log"`
	}

	HeightResponse struct {
		Height uint64 `json:"height"`
	}

	EventsResponse struct {
		Height uint64      `json:"height"`
		Events []app.Event `json:"events"`
	}

	BalanceResponse struct {
		Address string `json:"address"`
		Balance string `json:"balance"`
	}
)

// notFound lists the errors answered with 404.
var notFound = []error{
	sdkerrors.ErrNotFound,
	auctiontypes.ErrAuctionNotFound,
	renttypes.ErrContractNotFound,
	transmissiontypes.ErrTransmissionNotFound,
	nfttypes.ErrNFTNotFound,
}

// New returns a server routing requests to engine.
func New(engine *app.Engine, logger log.Logger) *Server {
	s := &Server{
		engine: engine,
		logger: logger.With("module", "server"),
		router: mux.NewRouter(),
	}
	s.registerRoutes()

	return s
}

// Router returns the HTTP handler of the server.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) registerRoutes() {
	r := s.router.PathPrefix("/v1").Subrouter()
	r.Use(s.logRequests)

	r.HandleFunc("/msgs", s.handleBroadcast).Methods(http.MethodPost)
	r.HandleFunc("/msgs", s.handleMsgTypes).Methods(http.MethodGet)
	r.HandleFunc("/height", s.handleHeight).Methods(http.MethodGet)
	r.HandleFunc("/events/{height:[0-9]+}", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/genesis", s.handleGenesis).Methods(http.MethodGet)
	r.HandleFunc("/params/{module}", s.handleParams).Methods(http.MethodGet)

	r.HandleFunc("/balances/{address}", s.handleBalance).Methods(http.MethodGet)
	r.HandleFunc("/nfts/{nft_id:[0-9]+}", s.handleNFT).Methods(http.MethodGet)

	r.HandleFunc("/auctions", s.handleAuctions).Methods(http.MethodGet)
	r.HandleFunc("/auctions/deadlines", s.handleAuctionDeadlines).Methods(http.MethodGet)
	r.HandleFunc("/auctions/{nft_id:[0-9]+}", s.handleAuction).Methods(http.MethodGet)
	r.HandleFunc("/claims/{address}", s.handleClaim).Methods(http.MethodGet)

	r.HandleFunc("/rent/contracts", s.handleRentContracts).Methods(http.MethodGet)
	r.HandleFunc("/rent/contracts/{nft_id:[0-9]+}", s.handleRentContract).Methods(http.MethodGet)
	r.HandleFunc("/rent/queues", s.handleRentQueues).Methods(http.MethodGet)

	r.HandleFunc("/transmissions", s.handleTransmissions).Methods(http.MethodGet)
	r.HandleFunc("/transmissions/queue", s.handleTransmissionQueue).Methods(http.MethodGet)
	r.HandleFunc("/transmissions/{nft_id:[0-9]+}", s.handleTransmission).Methods(http.MethodGet)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("serving http", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	}
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("handled request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	codespace, code, msg := errorsmod.ABCIInfo(err, false)

	status := http.StatusBadRequest
	switch {
	case codespace == errorsmod.UndefinedCodespace:
		status = http.StatusInternalServerError
		s.logger.Error("request failed", "err", err)
	case isNotFound(err):
		status = http.StatusNotFound
	}

	s.writeJSON(w, status, ErrorResponse{Codespace: codespace, Code: code, Log: msg})
}

func isNotFound(err error) bool {
	for _, target := range notFound {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func parseNFTID(r *http.Request) (uint32, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["nft_id"], 10, 32)
	if err != nil {
		return 0, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "invalid nft id: %s", err)
	}

	return uint32(id), nil
}

func parseAddress(r *http.Request) (string, error) {
	addr := mux.Vars(r)["address"]
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return "", errorsmod.Wrapf(sdkerrors.ErrInvalidAddress, "invalid address %q: %s", addr, err)
	}

	return addr, nil
}

// query runs fn against the engine and writes its result.
func (s *Server) query(w http.ResponseWriter, fn func(ctx sdk.Context, q app.Queriers) (any, error)) {
	var res any
	err := s.engine.Query(func(ctx sdk.Context, q app.Queriers) error {
		var err error
		res, err = fn(ctx, q)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBroadcast(w http.ResponseWriter, r *http.Request) {
	var env timedtypes.Envelope
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&env); err != nil {
		s.writeError(w, errorsmod.Wrapf(sdkerrors.ErrJSONUnmarshal, "invalid envelope: %s", err))
		return
	}

	res, err := s.engine.DeliverEnvelope(env)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleMsgTypes(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.engine.MsgTypes())
}

func (s *Server) handleHeight(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, HeightResponse{Height: s.engine.Height()})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseUint(mux.Vars(r)["height"], 10, 64)
	if err != nil {
		s.writeError(w, errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "invalid height: %s", err))
		return
	}

	events, ok, err := s.engine.Events(height)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !ok {
		events = []app.Event{}
	}

	s.writeJSON(w, http.StatusOK, EventsResponse{Height: height, Events: events})
}

func (s *Server) handleGenesis(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.engine.ExportGenesis()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	module := mux.Vars(r)["module"]

	bz, err := s.engine.ModuleGenesis(module)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var gs struct {
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(bz, &gs); err != nil {
		s.writeError(w, err)
		return
	}
	if gs.Params == nil {
		s.writeError(w, errorsmod.Wrapf(sdkerrors.ErrNotFound, "module %s has no params", module))
		return
	}

	s.writeJSON(w, http.StatusOK, gs.Params)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return BalanceResponse{Address: addr, Balance: q.BankKeeper.FreeBalance(ctx, addr).String()}, nil
	})
}

func (s *Server) handleNFT(w http.ResponseWriter, r *http.Request) {
	id, err := parseNFTID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		n, ok := q.NFTKeeper.GetNFT(ctx, id)
		if !ok {
			return nil, errorsmod.Wrapf(nfttypes.ErrNFTNotFound, "nft %d", id)
		}

		return n, nil
	})
}

func (s *Server) handleAuctions(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Auction.Auctions(ctx, &auctiontypes.QueryAuctionsRequest{})
	})
}

func (s *Server) handleAuctionDeadlines(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Auction.Deadlines(ctx, &auctiontypes.QueryDeadlinesRequest{})
	})
}

func (s *Server) handleAuction(w http.ResponseWriter, r *http.Request) {
	id, err := parseNFTID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Auction.Auction(ctx, &auctiontypes.QueryAuctionRequest{NFTID: id})
	})
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	addr, err := parseAddress(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Auction.Claim(ctx, &auctiontypes.QueryClaimRequest{Address: addr})
	})
}

func (s *Server) handleRentContracts(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Rent.Contracts(ctx, &renttypes.QueryContractsRequest{})
	})
}

func (s *Server) handleRentContract(w http.ResponseWriter, r *http.Request) {
	id, err := parseNFTID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Rent.Contract(ctx, &renttypes.QueryContractRequest{NFTID: id})
	})
}

func (s *Server) handleRentQueues(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Rent.Queues(ctx, &renttypes.QueryQueuesRequest{})
	})
}

func (s *Server) handleTransmissions(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Transmission.Transmissions(ctx, &transmissiontypes.QueryTransmissionsRequest{})
	})
}

func (s *Server) handleTransmissionQueue(w http.ResponseWriter, _ *http.Request) {
	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Transmission.Queue(ctx, &transmissiontypes.QueryQueueRequest{})
	})
}

func (s *Server) handleTransmission(w http.ResponseWriter, r *http.Request) {
	id, err := parseNFTID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.query(w, func(ctx sdk.Context, q app.Queriers) (any, error) {
		return q.Transmission.Transmission(ctx, &transmissiontypes.QueryTransmissionRequest{NFTID: id})
	})
}
