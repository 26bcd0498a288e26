// Package ledger implements the core API for an append-only chain of
// record batches, each sealed by a brute force proof of work puzzle and
// linked to its predecessor by a sha256 hash.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
)

// ErrInvalidProof is returned from Mine when the proof found by the search
// fails the validation re-check. By construction of the search this should
// not happen, but the contract is exposed so callers can detect it.
var ErrInvalidProof = errors.New("proof failed validation against the last block")

// EventHandler defines a function that is called when events occur in the
// processing of the ledger.
type EventHandler func(v string, args ...any)

// FullChain represents a read-only snapshot of the ordered chain and its
// length. This is the external read surface for the whole ledger state.
type FullChain struct {
	Chain  []Block `json:"chain"`
	Length int     `json:"length"`
}

// Ledger manages the chain of sealed blocks and the pending batch of
// records waiting for the next seal. The reference model is single-actor,
// but a surrounding service is not, so all access to the chain and the
// pending batch goes through a mutex.
type Ledger struct {
	genesis   genesis.Genesis
	evHandler EventHandler

	mu      sync.RWMutex
	chain   []Block
	pending []Record

	// mineMu serializes mining so the read last block, search, seal
	// sequence acts as a single critical section. The search itself runs
	// without holding mu, so records can keep arriving while mining.
	mineMu sync.Mutex
}

// New constructs a Ledger and eagerly seals the genesis block using the
// configured hard-coded proof and previous-hash sentinel. No proof of work
// search runs for genesis and its proof is never checked against the
// puzzle; chain validation starts at the pair (genesis, block 1).
func New(gen genesis.Genesis, evHandler EventHandler) *Ledger {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	l := Ledger{
		genesis:   gen,
		evHandler: ev,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sealBlock(gen.GenesisProof, gen.GenesisPrevHash)

	return &l
}

// FromChain constructs a fresh Ledger, re-running genesis creation, and
// then overwrites its chain wholesale with the specified chain. The
// pending batch of the fresh instance is retained empty. The chain is NOT
// validated here; callers wanting safety must call ValidChain separately.
func FromChain(gen genesis.Genesis, evHandler EventHandler, otherChain []Block) *Ledger {
	l := New(gen, evHandler)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.chain = make([]Block, len(otherChain))
	copy(l.chain, otherChain)

	return l
}

// Genesis returns a copy of the genesis settings.
func (l *Ledger) Genesis() genesis.Genesis {
	return l.genesis
}

// LastBlock returns the block at the tail of the chain.
func (l *Ledger) LastBlock() Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain[len(l.chain)-1]
}

// PendingRecords returns a copy of the records not yet sealed into a
// block, in arrival order.
func (l *Ledger) PendingRecords() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]Record, len(l.pending))
	copy(records, l.pending)

	return records
}

// AddRecord appends a record to the pending batch in arrival order. The
// returned value is the index of the block that would contain the record
// if mining succeeded right now. It is advisory only; if mining fails or
// never runs, the record stays pending and the prediction goes stale.
func (l *Ledger) AddRecord(record Record) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, record)

	return l.chain[len(l.chain)-1].Index + 1
}

// Mine consumes the pending batch, runs the proof of work search against
// the last block's proof, and seals a new block. If a miner label is
// supplied, a synthetic record crediting the miner is appended to the new
// pending batch after the seal, destined for the next block. Cancelling
// the context aborts the search with the ledger untouched.
func (l *Ledger) Mine(ctx context.Context, minerLabel string) (Block, error) {
	l.mineMu.Lock()
	defer l.mineMu.Unlock()

	lastBlock := l.LastBlock()

	l.evHandler("ledger: mine: POW: started: lastProof[%d]", lastBlock.Proof)

	proof, err := ProofOfWork(ctx, lastBlock.Proof, l.genesis.Difficulty)
	if err != nil {
		l.evHandler("ledger: mine: POW: CANCELLED")
		return Block{}, err
	}

	l.evHandler("ledger: mine: POW: solved: proof[%d]", proof)

	// The search guarantees this holds. Check one more time anyway and
	// refuse to seal an invalid block; no state has changed at this point.
	if !ValidProof(lastBlock.Proof, proof, l.genesis.Difficulty) {
		return Block{}, ErrInvalidProof
	}

	prevHash := BlockHash(lastBlock)

	l.mu.Lock()
	block := l.sealBlock(proof, prevHash)
	if minerLabel != "" {
		l.pending = append(l.pending, CreditRecord(minerLabel))
	}
	l.mu.Unlock()

	l.evHandler("ledger: mine: sealed: block[%d]: records[%d]", block.Index, len(block.Records))

	return block, nil
}

// ValidChain walks the chain from the genesis block and checks every
// consecutive pair for hash linkage and proof validity. It returns false
// on the first violation. The genesis block's own proof is never checked;
// there is no block before it to check against.
func (l *Ledger) ValidChain() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for i := 1; i < len(l.chain); i++ {
		prevBlock := l.chain[i-1]
		block := l.chain[i]

		if block.PrevBlockHash != BlockHash(prevBlock) {
			return false
		}

		if !ValidProof(prevBlock.Proof, block.Proof, l.genesis.Difficulty) {
			return false
		}
	}

	return true
}

// FullChain returns a read-only snapshot of the ordered chain and its
// length.
func (l *Ledger) FullChain() FullChain {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := make([]Block, len(l.chain))
	copy(chain, l.chain)

	return FullChain{
		Chain:  chain,
		Length: len(chain),
	}
}

// =============================================================================

// sealBlock appends a new block holding the entire pending batch and
// resets the batch to a fresh empty slice so a just-sealed block's records
// are never aliased by the next batch. Callers must hold mu.
func (l *Ledger) sealBlock(proof uint64, prevHash string) Block {
	records := l.pending
	if records == nil {
		records = []Record{}
	}

	block := Block{
		Index:         uint64(len(l.chain)) + 1,
		TimeStamp:     float64(time.Now().UnixNano()) / float64(time.Second),
		Records:       records,
		Proof:         proof,
		PrevBlockHash: prevHash,
	}

	l.pending = []Record{}
	l.chain = append(l.chain, block)

	return block
}
