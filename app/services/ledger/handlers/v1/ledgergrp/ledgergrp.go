// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log        *zap.SugaredLogger
	Ledger     *ledger.Ledger
	Worker     *worker.Worker
	WS         websocket.Upgrader
	Evts       *events.Events
	MinerLabel string
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.Ledger.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Chain returns the full chain and its length.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	fc := h.Ledger.FullChain()
	return web.Respond(ctx, w, fc, http.StatusOK)
}

// Validate walks the chain checking hash linkage and proof validity. A
// broken chain is reported, not corrected; remediation is the caller's
// call.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validateResult{
		Valid:  h.Ledger.ValidChain(),
		Length: h.Ledger.FullChain().Length,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Pending returns the records not yet sealed into a block.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	records := h.Ledger.PendingRecords()
	return web.Respond(ctx, w, records, http.StatusOK)
}

// SubmitRecord adds a new record to the pending batch.
func (h Handlers) SubmitRecord(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nr newRecord
	if err := web.Decode(r, &nr); err != nil {
		return err
	}

	h.Log.Infow("add record", "traceid", v.TraceID, "record", nr.Record)

	idx := h.Ledger.AddRecord(nr.Record)

	resp := submitResult{
		Status:         "record added to pending batch",
		PredictedIndex: idx,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining asks the worker to start a mining operation and returns
// immediately.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine runs a mining operation under the request context and responds
// with the sealed block. Cancelling the request aborts the search with
// the ledger untouched.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	block, err := h.Ledger.Mine(ctx, h.MinerLabel)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidProof):
			return errs.NewTrusted(err, http.StatusConflict)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return errs.NewTrusted(err, http.StatusRequestTimeout)
		}
		return err
	}

	h.Log.Infow("mined block", "traceid", v.TraceID, "block", block.Index, "records", len(block.Records))

	resp := mineResult{
		Status: "new block sealed",
		Block:  block,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, wd := <-ch:
			if !wd {
				return nil
			}

			data, err := json.Marshal(event)
			if err != nil {
				return err
			}

			if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
