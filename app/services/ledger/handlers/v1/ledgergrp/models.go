package ledgergrp

import "github.com/ardanlabs/ledger/foundation/ledger"

// newRecord is what a client submits to place a record in the pending
// batch. The record itself is opaque; only its presence is validated.
type newRecord struct {
	Record ledger.Record `json:"record" validate:"required"`
}

// submitResult reports where the record would land if a seal happened
// right now. The index is advisory; a failed or delayed mine leaves the
// record pending and the prediction stale.
type submitResult struct {
	Status         string `json:"status"`
	PredictedIndex uint64 `json:"predicted_index"`
}

// mineResult carries the sealed block back to the caller.
type mineResult struct {
	Status string       `json:"status"`
	Block  ledger.Block `json:"block"`
}

// validateResult reports the outcome of a chain walk.
type validateResult struct {
	Valid  bool `json:"valid"`
	Length int  `json:"length"`
}
