package genesis_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestLoad(t *testing.T) {
	t.Log("Given the need to load chain settings from a genesis file.")
	{
		path := filepath.Join(t.TempDir(), "genesis.yaml")
		doc := `
chain_name: test chain
difficulty: 2
genesis_proof: 7
`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("\t%s\tShould be able to write a genesis file: %v.", failed, err)
		}

		gen, err := genesis.Load(path)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the genesis file: %v.", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the genesis file.", success)

		if gen.ChainName != "test chain" || gen.Difficulty != 2 || gen.GenesisProof != 7 {
			t.Errorf("\t%s\tShould apply the file's settings: got %+v.", failed, gen)
		} else {
			t.Logf("\t%s\tShould apply the file's settings.", success)
		}

		// Fields missing from the file keep their defaults.
		if gen.GenesisPrevHash != genesis.Default().GenesisPrevHash {
			t.Errorf("\t%s\tShould fall back to the default sentinel: got %q.", failed, gen.GenesisPrevHash)
		} else {
			t.Logf("\t%s\tShould fall back to the default sentinel.", success)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Log("Given the need to report a missing genesis file.")
	{
		_, err := genesis.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("\t%s\tShould wrap fs.ErrNotExist: got %v.", failed, err)
		}
		t.Logf("\t%s\tShould wrap fs.ErrNotExist.", success)
	}
}

func TestLoadRejectsBadDifficulty(t *testing.T) {
	t.Log("Given the need to reject settings that can't produce a working chain.")
	{
		path := filepath.Join(t.TempDir(), "genesis.yaml")
		doc := `
difficulty: 0
`
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			t.Fatalf("\t%s\tShould be able to write a genesis file: %v.", failed, err)
		}

		if _, err := genesis.Load(path); err == nil {
			t.Fatalf("\t%s\tShould reject a difficulty of zero.", failed)
		}
		t.Logf("\t%s\tShould reject a difficulty of zero.", success)
	}
}
