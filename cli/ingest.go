package cli

import (
	"clementus360/edu-copilot/attachments"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Print the prompt summaries of CSV and PDF files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var files []attachments.File
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fatalError(cmd, err)
				}
				defer f.Close()

				info, err := f.Stat()
				if err != nil {
					return fatalError(cmd, err)
				}
				files = append(files, attachments.File{
					Name:     filepath.Base(path),
					MIMEType: mime.TypeByExtension(filepath.Ext(path)),
					Size:     info.Size(),
					Reader:   f,
				})
			}

			accepted, rejected := attachments.IngestAll(files)
			for _, att := range accepted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", att.ExtractedText)
			}
			for _, err := range rejected {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipped: %v\n", err)
			}
			return nil
		},
	}
}
