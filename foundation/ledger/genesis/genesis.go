// Package genesis maintains access to the genesis file.
package genesis

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// maxDifficulty is the number of leading zero hex characters a sha256 hex
// digest can carry. Anything above it can never be solved.
const maxDifficulty = 64

// Genesis represents the genesis file.
type Genesis struct {
	Date            time.Time `yaml:"date" json:"date"`
	ChainName       string    `yaml:"chain_name" json:"chain_name"`               // A name to identify this running instance.
	Difficulty      uint      `yaml:"difficulty" json:"difficulty"`               // Number of leading zero hex chars needed to solve the work problem.
	GenesisProof    uint64    `yaml:"genesis_proof" json:"genesis_proof"`         // Hard-coded proof for the genesis block. Never checked against the puzzle.
	GenesisPrevHash string    `yaml:"genesis_prev_hash" json:"genesis_prev_hash"` // Sentinel previous-hash for the genesis block.
}

// Default returns the canonical settings the original chain shipped with.
// These are used when no genesis file is provided.
func Default() Genesis {
	return Genesis{
		Date:            time.Date(2019, time.March, 25, 0, 0, 0, 0, time.UTC),
		ChainName:       "the ardan ledger",
		Difficulty:      4,
		GenesisProof:    2,
		GenesisPrevHash: "1",
	}
}

// Load opens and consumes the genesis file. Fields left unset in the file
// fall back to their defaults.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, fmt.Errorf("reading genesis file: %w", err)
	}

	genesis := Default()
	if err := yaml.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, fmt.Errorf("parsing genesis file: %w", err)
	}

	if err := genesis.Validate(); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Validate checks the settings can produce a working chain.
func (g Genesis) Validate() error {
	if g.Difficulty < 1 || g.Difficulty > maxDifficulty {
		return fmt.Errorf("difficulty must be between 1 and %d, got %d", maxDifficulty, g.Difficulty)
	}

	if g.GenesisPrevHash == "" {
		return fmt.Errorf("genesis previous hash sentinel must not be empty")
	}

	return nil
}
