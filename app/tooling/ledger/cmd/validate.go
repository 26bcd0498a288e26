package cmd

import (
	"log"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Walk the chain and report whether it is valid.",
	Run:   validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) {
	var result struct {
		Valid  bool `json:"valid"`
		Length int  `json:"length"`
	}

	if err := send(http.MethodGet, "/v1/chain/validate", nil, &result); err != nil {
		log.Fatal(err)
	}

	if result.Valid {
		pterm.Success.Printfln("chain of %d blocks is valid", result.Length)
		return
	}

	pterm.Error.Printfln("chain of %d blocks is NOT valid", result.Length)
}
