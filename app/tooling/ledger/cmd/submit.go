package cmd

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit key=value [key=value ...]",
	Short: "Submit a record to the pending batch.",
	Args:  cobra.MinimumNArgs(1),
	Run:   submitRun,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func submitRun(cmd *cobra.Command, args []string) {

	// Records have no schema; the fields come straight from the command
	// line. A transaction id is attached so the record can be found again
	// once it lands in a block.
	record := map[string]any{
		"transaction_id": uuid.NewString(),
	}
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			log.Fatalf("argument %q is not in key=value form", arg)
		}
		record[key] = value
	}

	payload := struct {
		Record map[string]any `json:"record"`
	}{
		Record: record,
	}

	var result struct {
		Status         string `json:"status"`
		PredictedIndex uint64 `json:"predicted_index"`
	}

	if err := send(http.MethodPost, "/v1/records/add", payload, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Status)
	fmt.Println("predicted block index (advisory):", result.PredictedIndex)
}
