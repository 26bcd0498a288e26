package ledger

// Record represents one opaque unit of application data waiting to be
// sealed into a block. The ledger enforces no schema; whatever JSON-like
// payload the caller submits is carried verbatim. Any schema enforcement
// belongs to the collaborator producing the record.
type Record map[string]any

// creditKey is the key of the synthetic record crediting a miner. The
// record is appended to the pending batch right after a seal, so the
// credit lands in the next block, not the one just mined.
const creditKey = "This block has been proudly mined by"

// CreditRecord constructs the synthetic record crediting the specified
// miner.
func CreditRecord(minerLabel string) Record {
	return Record{creditKey: minerLabel}
}
