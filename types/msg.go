package types

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

type (
	// Msg is a request to change module state. Type returns the name the
	// message is registered under, e.g. "auction/MsgAddBid".
	Msg interface {
		Type() string
		GetSigner() string
		ValidateBasic() error
	}

	// Handler executes a message against the state reachable from ctx.
	Handler func(ctx sdk.Context, msg Msg) error

	// Router maps message types to their constructors and handlers.
	Router struct {
		routes map[string]route
	}

	route struct {
		newMsg  func() Msg
		handler Handler
	}

	// Envelope is the JSON wire form of a message.
	Envelope struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
)

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]route)}
}

// Register adds a message type. It panics on duplicate registration since
// that is a wiring bug.
func (r *Router) Register(msgType string, newMsg func() Msg, handler Handler) {
	if _, ok := r.routes[msgType]; ok {
		panic(fmt.Sprintf("message type %s already registered", msgType))
	}

	r.routes[msgType] = route{newMsg: newMsg, handler: handler}
}

// Handler returns the handler registered for msg.
func (r *Router) Handler(msg Msg) (Handler, error) {
	rt, ok := r.routes[msg.Type()]
	if !ok {
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized message type: %s", msg.Type())
	}

	return rt.handler, nil
}

// Decode builds a message from its envelope.
func (r *Router) Decode(env Envelope) (Msg, error) {
	rt, ok := r.routes[env.Type]
	if !ok {
		return nil, errorsmod.Wrapf(sdkerrors.ErrUnknownRequest, "unrecognized message type: %s", env.Type)
	}

	msg := rt.newMsg()
	if err := json.Unmarshal(env.Value, msg); err != nil {
		return nil, errorsmod.Wrapf(sdkerrors.ErrJSONUnmarshal, "%s: %s", env.Type, err)
	}

	return msg, nil
}

// Types returns every registered message type in sorted order.
func (r *Router) Types() []string {
	out := make([]string, 0, len(r.routes))
	for t := range r.routes {
		out = append(out, t)
	}
	sort.Strings(out)

	return out
}

// Wrap builds the envelope of msg.
func Wrap(msg Msg) (Envelope, error) {
	bz, err := json.Marshal(msg)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{Type: msg.Type(), Value: bz}, nil
}

// NewHandler adapts a typed msg server method to a Handler.
func NewHandler[M Msg, R any](fn func(goCtx context.Context, msg M) (R, error)) Handler {
	return func(ctx sdk.Context, msg Msg) error {
		typed, ok := msg.(M)
		if !ok {
			return errorsmod.Wrapf(sdkerrors.ErrInvalidType, "unexpected message %T", msg)
		}

		_, err := fn(ctx, typed)
		return err
	}
}
