package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"

	"github.com/tempo-labs/timed-contracts/app"
	timedtypes "github.com/tempo-labs/timed-contracts/types"
)

// Client talks to a Server.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for the server listening at base, e.g.
// "http://localhost:1317".
func NewClient(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get decodes the response of GET /v1/<path> into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

// Broadcast submits env and returns the result of its execution.
func (c *Client) Broadcast(ctx context.Context, env timedtypes.Envelope) (*app.TxResult, error) {
	bz, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("msgs"), bytes.NewReader(bz))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var res app.TxResult
	if err := c.do(req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *Client) url(path string) string {
	return c.base + "/v1/" + strings.TrimLeft(path, "/")
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var e ErrorResponse
		if err := json.Unmarshal(bz, &e); err != nil || e.Codespace == "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
		}

		// rebuilds the registered error so callers can match it with errors.Is
		return errorsmod.ABCIError(e.Codespace, e.Code, e.Log)
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(bz, out)
}
