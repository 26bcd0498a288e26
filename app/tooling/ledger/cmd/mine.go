package cmd

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var signal bool

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Seal the pending batch into a new block.",
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().BoolVarP(&signal, "signal", "s", false, "Signal the background miner instead of waiting for the block.")
}

func mineRun(cmd *cobra.Command, args []string) {
	if signal {
		var result struct {
			Status string `json:"status"`
		}
		if err := send(http.MethodGet, "/v1/mining/signal", nil, &result); err != nil {
			log.Fatal(err)
		}
		fmt.Println(result.Status)
		return
	}

	var result struct {
		Status string `json:"status"`
		Block  struct {
			Index         uint64  `json:"index"`
			TimeStamp     float64 `json:"timestamp"`
			Proof         uint64  `json:"proof"`
			PrevBlockHash string  `json:"previous_hash"`
			Records       []any   `json:"records"`
		} `json:"block"`
	}

	if err := send(http.MethodPost, "/v1/mine", nil, &result); err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Status)
	fmt.Println("index:  ", result.Block.Index)
	fmt.Println("proof:  ", result.Block.Proof)
	fmt.Println("records:", len(result.Block.Records))
	fmt.Println("prev:   ", result.Block.PrevBlockHash)
}
