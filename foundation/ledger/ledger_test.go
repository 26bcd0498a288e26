package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger"
	"github.com/ardanlabs/ledger/foundation/ledger/genesis"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

// testGenesis returns settings with a low difficulty so the proof of work
// searches stay fast.
func testGenesis() genesis.Genesis {
	gen := genesis.Default()
	gen.Difficulty = 2
	return gen
}

func TestGenesisBlock(t *testing.T) {
	t.Log("Given the need to validate the state of a freshly constructed ledger.")
	{
		gen := testGenesis()
		l := ledger.New(gen, nil)

		fc := l.FullChain()
		if fc.Length != 1 {
			t.Fatalf("\t%s\tShould have a chain of length 1: got %d.", failed, fc.Length)
		}
		t.Logf("\t%s\tShould have a chain of length 1.", success)

		gblock := fc.Chain[0]
		if gblock.Index != 1 {
			t.Errorf("\t%s\tShould have index 1 on genesis: got %d.", failed, gblock.Index)
		} else {
			t.Logf("\t%s\tShould have index 1 on genesis.", success)
		}

		if gblock.Proof != gen.GenesisProof {
			t.Errorf("\t%s\tShould have the configured genesis proof: got %d, exp %d.", failed, gblock.Proof, gen.GenesisProof)
		} else {
			t.Logf("\t%s\tShould have the configured genesis proof.", success)
		}

		if gblock.PrevBlockHash != gen.GenesisPrevHash {
			t.Errorf("\t%s\tShould have the sentinel previous hash: got %q, exp %q.", failed, gblock.PrevBlockHash, gen.GenesisPrevHash)
		} else {
			t.Logf("\t%s\tShould have the sentinel previous hash.", success)
		}

		if len(gblock.Records) != 0 {
			t.Errorf("\t%s\tShould have no records in genesis: got %d.", failed, len(gblock.Records))
		} else {
			t.Logf("\t%s\tShould have no records in genesis.", success)
		}

		if !l.ValidChain() {
			t.Errorf("\t%s\tShould report a single-block chain as valid.", failed)
		} else {
			t.Logf("\t%s\tShould report a single-block chain as valid.", success)
		}
	}
}

func TestRecordBatching(t *testing.T) {
	t.Log("Given the need to seal submitted records into the next block in order.")
	{
		l := ledger.New(testGenesis(), nil)
		genesisHash := ledger.BlockHash(l.LastBlock())

		records := []ledger.Record{
			{"note": "a"},
			{"note": "b"},
			{"author": "pavel", "content_hash": "abc123"},
		}

		for i, record := range records {
			idx := l.AddRecord(record)
			if idx != 2 {
				t.Fatalf("\t%s\tShould predict index 2 for record %d: got %d.", failed, i, idx)
			}
		}
		t.Logf("\t%s\tShould predict index 2 for every pending record.", success)

		if len(l.PendingRecords()) != len(records) {
			t.Fatalf("\t%s\tShould hold %d pending records: got %d.", failed, len(records), len(l.PendingRecords()))
		}
		t.Logf("\t%s\tShould hold %d pending records.", success, len(records))

		block, err := l.Mine(context.Background(), "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v.", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if block.Index != 2 {
			t.Errorf("\t%s\tShould seal block with index 2: got %d.", failed, block.Index)
		} else {
			t.Logf("\t%s\tShould seal block with index 2.", success)
		}

		if block.PrevBlockHash != genesisHash {
			t.Errorf("\t%s\tShould link the block to the genesis hash.", failed)
		} else {
			t.Logf("\t%s\tShould link the block to the genesis hash.", success)
		}

		if len(block.Records) != len(records) {
			t.Fatalf("\t%s\tShould seal all %d records: got %d.", failed, len(records), len(block.Records))
		}
		for i := range records {
			exp, _ := json.Marshal(records[i])
			got, _ := json.Marshal(block.Records[i])
			if string(exp) != string(got) {
				t.Fatalf("\t%s\tShould preserve record order at position %d: got %s, exp %s.", failed, i, got, exp)
			}
		}
		t.Logf("\t%s\tShould seal all records in arrival order.", success)

		if len(l.PendingRecords()) != 0 {
			t.Errorf("\t%s\tShould have an empty pending batch after the seal: got %d.", failed, len(l.PendingRecords()))
		} else {
			t.Logf("\t%s\tShould have an empty pending batch after the seal.", success)
		}

		if !l.ValidChain() {
			t.Errorf("\t%s\tShould report the mined chain as valid.", failed)
		} else {
			t.Logf("\t%s\tShould report the mined chain as valid.", success)
		}
	}
}

func TestMinerCredit(t *testing.T) {
	t.Log("Given the need to credit a miner in the block after the one they sealed.")
	{
		l := ledger.New(testGenesis(), nil)

		block, err := l.Mine(context.Background(), "alice")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine with an empty pending batch: %v.", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine with an empty pending batch.", success)

		if len(block.Records) != 0 {
			t.Errorf("\t%s\tShould seal an empty-records block: got %d records.", failed, len(block.Records))
		} else {
			t.Logf("\t%s\tShould seal an empty-records block.", success)
		}

		pending := l.PendingRecords()
		if len(pending) != 1 {
			t.Fatalf("\t%s\tShould have exactly the credit record pending: got %d.", failed, len(pending))
		}
		t.Logf("\t%s\tShould have exactly the credit record pending.", success)

		next, err := l.Mine(context.Background(), "")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the following block: %v.", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the following block.", success)

		if len(next.Records) != 1 {
			t.Fatalf("\t%s\tShould carry the credit record into the following block: got %d records.", failed, len(next.Records))
		}
		found := false
		for _, value := range next.Records[0] {
			if value == "alice" {
				found = true
			}
		}
		if !found {
			t.Errorf("\t%s\tShould credit alice in the following block: got %v.", failed, next.Records[0])
		} else {
			t.Logf("\t%s\tShould credit alice in the following block.", success)
		}
	}
}

func TestChainValidityMonotonic(t *testing.T) {
	t.Log("Given the need for a chain produced solely by mining to stay valid.")
	{
		l := ledger.New(testGenesis(), nil)

		for i := 0; i < 3; i++ {
			l.AddRecord(ledger.Record{"round": i})
			if _, err := l.Mine(context.Background(), "miner1"); err != nil {
				t.Fatalf("\t%s\tShould be able to mine block %d: %v.", failed, i+2, err)
			}
			if !l.ValidChain() {
				t.Fatalf("\t%s\tShould still be valid after mining block %d.", failed, i+2)
			}
		}
		t.Logf("\t%s\tShould stay valid across repeated mining.", success)

		if got := l.FullChain().Length; got != 4 {
			t.Errorf("\t%s\tShould have 4 blocks: got %d.", failed, got)
		} else {
			t.Logf("\t%s\tShould have 4 blocks.", success)
		}
	}
}

func TestTamperDetection(t *testing.T) {
	type table struct {
		name   string
		tamper func(chain []ledger.Block)
	}

	tt := []table{
		{
			name: "records",
			tamper: func(chain []ledger.Block) {
				chain[1].Records = append(chain[1].Records, ledger.Record{"injected": true})
			},
		},
		{
			name: "proof",
			tamper: func(chain []ledger.Block) {
				chain[1].Proof++
			},
		},
		{
			name: "previous hash",
			tamper: func(chain []ledger.Block) {
				chain[2].PrevBlockHash = "deadbeef"
			},
		},
	}

	t.Log("Given the need to detect any mutation of a sealed block.")
	{
		gen := testGenesis()
		l := ledger.New(gen, nil)
		for i := 0; i < 2; i++ {
			l.AddRecord(ledger.Record{"round": i})
			if _, err := l.Mine(context.Background(), ""); err != nil {
				t.Fatalf("\t%s\tShould be able to build a chain to tamper with: %v.", failed, err)
			}
		}

		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen tampering with a block's %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					chain := l.FullChain().Chain
					tst.tamper(chain)

					tampered := ledger.FromChain(gen, nil, chain)
					if tampered.ValidChain() {
						t.Fatalf("\t%s\tTest %d:\tShould report the tampered chain as invalid.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould report the tampered chain as invalid.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func TestFromChain(t *testing.T) {
	t.Log("Given the need to replace a ledger's chain wholesale.")
	{
		gen := testGenesis()

		donor := ledger.New(gen, nil)
		donor.AddRecord(ledger.Record{"note": "a"})
		if _, err := donor.Mine(context.Background(), ""); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the donor chain: %v.", failed, err)
		}
		donorChain := donor.FullChain()

		l := ledger.FromChain(gen, nil, donorChain.Chain)

		if got := l.FullChain().Length; got != donorChain.Length {
			t.Fatalf("\t%s\tShould adopt the donor chain's length: got %d, exp %d.", failed, got, donorChain.Length)
		}
		t.Logf("\t%s\tShould adopt the donor chain's length.", success)

		if len(l.PendingRecords()) != 0 {
			t.Errorf("\t%s\tShould start with an empty pending batch.", failed)
		} else {
			t.Logf("\t%s\tShould start with an empty pending batch.", success)
		}

		if !l.ValidChain() {
			t.Errorf("\t%s\tShould report the adopted chain as valid.", failed)
		} else {
			t.Logf("\t%s\tShould report the adopted chain as valid.", success)
		}
	}
}

func TestMineCancellation(t *testing.T) {
	t.Log("Given the need to abort a mining operation without touching the ledger.")
	{
		l := ledger.New(testGenesis(), nil)
		l.AddRecord(ledger.Record{"note": "a"})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := l.Mine(ctx, "miner1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("\t%s\tShould return the context error: got %v.", failed, err)
		}
		t.Logf("\t%s\tShould return the context error.", success)

		if got := l.FullChain().Length; got != 1 {
			t.Errorf("\t%s\tShould leave the chain untouched: got length %d.", failed, got)
		} else {
			t.Logf("\t%s\tShould leave the chain untouched.", success)
		}

		if len(l.PendingRecords()) != 1 {
			t.Errorf("\t%s\tShould leave the pending batch untouched.", failed)
		} else {
			t.Logf("\t%s\tShould leave the pending batch untouched.", success)
		}
	}
}
