package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the records waiting for the next block.",
	Run:   pendingRun,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func pendingRun(cmd *cobra.Command, args []string) {
	var records []map[string]any
	if err := send(http.MethodGet, "/v1/records/pending", nil, &records); err != nil {
		log.Fatal(err)
	}

	if len(records) == 0 {
		fmt.Println("no pending records")
		return
	}

	for i, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d: %s\n", i, data)
	}
}
