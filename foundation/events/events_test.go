package events_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestEvents(t *testing.T) {
	t.Log("Given the need to fan events out to registered listeners.")
	{
		evts := events.New()
		defer evts.Shutdown()

		ch := evts.Acquire("listener-1")

		evts.Send("sealed block[%d]", 2)

		select {
		case event := <-ch:
			if event.Message != "sealed block[2]" {
				t.Fatalf("\t%s\tShould receive the formatted message: got %q.", failed, event.Message)
			}
			t.Logf("\t%s\tShould receive the formatted message.", success)
		case <-time.After(time.Second):
			t.Fatalf("\t%s\tShould receive the formatted message.", failed)
		}

		if err := evts.Release("listener-1"); err != nil {
			t.Fatalf("\t%s\tShould be able to release the listener: %v.", failed, err)
		}
		t.Logf("\t%s\tShould be able to release the listener.", success)

		if err := evts.Release("listener-1"); err == nil {
			t.Fatalf("\t%s\tShould not be able to release twice.", failed)
		}
		t.Logf("\t%s\tShould not be able to release twice.", success)

		// A send with no listeners must not block.
		evts.Send("no listeners")
		t.Logf("\t%s\tShould not block sending without listeners.", success)
	}
}
