package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openchs/intake/internal/model"
)

var (
	extractCallID   string
	extractLanguage string
)

var extractCmd = &cobra.Command{
	Use:   "extract [transcript-file]",
	Short: "Extract case fields from a transcript file and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv(cfg)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "read transcript %s", args[0])
		}

		resp, err := e.Pipeline.Run(cmd.Context(), model.ExtractionRequest{
			Transcript: string(data),
			CallID:     extractCallID,
			Language:   extractLanguage,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal response")
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractCallID, "call-id", "", "call ID to attach (generated when empty)")
	extractCmd.Flags().StringVar(&extractLanguage, "language", "", "transcript language (default English)")
	rootCmd.AddCommand(extractCmd)
}
