package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/ardanlabs/ledger/foundation/ledger"
)

func TestBlockHash(t *testing.T) {
	t.Log("Given the need for a deterministic, content-only block hash.")
	{
		block := ledger.Block{
			Index:     2,
			TimeStamp: 1553472000.25,
			Records: []ledger.Record{
				{"author": "pavel", "content_hash": "abc123"},
			},
			Proof:         35293,
			PrevBlockHash: "1",
		}

		if ledger.BlockHash(block) != ledger.BlockHash(block) {
			t.Fatalf("\t%s\tShould hash identically on repeated calls.", failed)
		}
		t.Logf("\t%s\tShould hash identically on repeated calls.", success)

		// A copy that went through a JSON round trip has the same field
		// values but a different in-memory representation.
		data, err := json.Marshal(block)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to marshal the block: %v.", failed, err)
		}
		var copied ledger.Block
		if err := json.Unmarshal(data, &copied); err != nil {
			t.Fatalf("\t%s\tShould be able to unmarshal the block: %v.", failed, err)
		}

		if ledger.BlockHash(block) != ledger.BlockHash(copied) {
			t.Fatalf("\t%s\tShould hash a round-tripped copy identically.", failed)
		}
		t.Logf("\t%s\tShould hash a round-tripped copy identically.", success)

		tampered := block
		tampered.Proof++
		if ledger.BlockHash(block) == ledger.BlockHash(tampered) {
			t.Fatalf("\t%s\tShould hash differently when any field changes.", failed)
		}
		t.Logf("\t%s\tShould hash differently when any field changes.", success)

		empty := block
		empty.Records = nil
		emptySlice := block
		emptySlice.Records = []ledger.Record{}
		if ledger.BlockHash(empty) != ledger.BlockHash(emptySlice) {
			t.Fatalf("\t%s\tShould treat nil and empty record batches the same.", failed)
		}
		t.Logf("\t%s\tShould treat nil and empty record batches the same.", success)
	}
}
