package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) resumeTextCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "resume-text FILE",
		Short: "Print the plain text extracted from a résumé document",
		Long:  "Extract and clean the text of a PDF, DOCX or plain text résumé, exactly as it is sent to the model.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResume(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text+"\n"), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d characters to %s\n", len([]rune(text)), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the text to this file instead of stdout")
	return cmd
}
