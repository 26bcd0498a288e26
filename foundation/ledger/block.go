package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// zeroHash represents a hash code of zeros.
const zeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Block represents a sealed batch of records in the chain. Blocks are
// never mutated after creation.
type Block struct {
	Index         uint64   `json:"index"`
	TimeStamp     float64  `json:"timestamp"`
	Records       []Record `json:"records"`
	Proof         uint64   `json:"proof"`
	PrevBlockHash string   `json:"previous_hash"`
}

// BlockHash returns the unique hash for the specified block.
//
// The block is serialized through a map so the digest is computed over a
// canonical form with keys sorted lexicographically. Two blocks with
// identical field values always hash identically, no matter how they were
// produced; ValidChain depends on that.
func BlockHash(block Block) string {
	records := block.Records
	if records == nil {
		records = []Record{}
	}

	data, err := json.Marshal(map[string]any{
		"index":         block.Index,
		"timestamp":     block.TimeStamp,
		"records":       records,
		"proof":         block.Proof,
		"previous_hash": block.PrevBlockHash,
	})
	if err != nil {
		return zeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
