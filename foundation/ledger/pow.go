package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ValidProof reports whether proof solves the work puzzle relative to
// lastProof. The two proofs are concatenated as decimal text with no
// separator, hashed with sha256, and the hex digest must carry difficulty
// leading zero characters.
func ValidProof(lastProof uint64, proof uint64, difficulty uint) bool {
	guess := strconv.FormatUint(lastProof, 10) + strconv.FormatUint(proof, 10)
	hash := sha256.Sum256([]byte(guess))
	digest := hex.EncodeToString(hash[:])

	if difficulty > uint(len(digest)) {
		difficulty = uint(len(digest))
	}

	return digest[:difficulty] == strings.Repeat("0", int(difficulty))
}

// ProofOfWork scans candidate proofs starting at zero, incrementing by
// one, until a candidate satisfies ValidProof. The scan order is fixed, so
// the result is deterministic for a given lastProof and is the smallest
// solution. The scan is unbounded and CPU bound, so the context is checked
// on every iteration to keep the operation cancelable.
func ProofOfWork(ctx context.Context, lastProof uint64, difficulty uint) (uint64, error) {
	var proof uint64
	for {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}

		if ValidProof(lastProof, proof, difficulty) {
			return proof, nil
		}

		proof++
	}
}
