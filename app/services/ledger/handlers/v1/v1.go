// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/worker"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log        *zap.SugaredLogger
	Ledger     *ledger.Ledger
	Worker     *worker.Worker
	Evts       *events.Events
	MinerLabel string
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:        cfg.Log,
		Ledger:     cfg.Ledger,
		Worker:     cfg.Worker,
		Evts:       cfg.Evts,
		MinerLabel: cfg.MinerLabel,
	}

	app.Handle(http.MethodGet, version, "/genesis/list", lgh.Genesis)
	app.Handle(http.MethodGet, version, "/chain/list", lgh.Chain)
	app.Handle(http.MethodGet, version, "/chain/validate", lgh.Validate)
	app.Handle(http.MethodGet, version, "/records/pending", lgh.Pending)
	app.Handle(http.MethodPost, version, "/records/add", lgh.SubmitRecord)
	app.Handle(http.MethodGet, version, "/mining/signal", lgh.SignalMining)
	app.Handle(http.MethodPost, version, "/mine", lgh.Mine)
	app.Handle(http.MethodGet, version, "/events", lgh.Events)
}
