package cli

import (
	"clementus360/edu-copilot/llm"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func gradeCmd() *cobra.Command {
	var (
		studentName string
		subject     string
		grade       string
		mimeType    string
	)

	cmd := &cobra.Command{
		Use:   "grade <answer-key> <student-test>",
		Short: "Grade a student's test against an answer key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return fatalError(cmd, err)
			}

			answerKey, err := os.ReadFile(args[0])
			if err != nil {
				return fatalError(cmd, fmt.Errorf("failed to read answer key: %w", err))
			}
			submission, err := os.ReadFile(args[1])
			if err != nil {
				return fatalError(cmd, fmt.Errorf("failed to read student test: %w", err))
			}
			if mimeType == "" {
				mimeType = mime.TypeByExtension(filepath.Ext(args[0]))
			}

			completer, err := llm.NewCompleter(settings)
			if err != nil {
				return fatalError(cmd, err)
			}

			result, err := llm.GradeSubmission(cmd.Context(), completer, llm.GradingInput{
				AnswerKey:   answerKey,
				Submission:  submission,
				MIMEType:    mimeType,
				StudentName: studentName,
				Subject:     subject,
				Grade:       grade,
			})
			if err != nil {
				return fatalError(cmd, err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVarP(&studentName, "student", "s", "", "Student name")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject")
	cmd.Flags().StringVar(&grade, "grade", "", "Grade / year")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type of both files (default from the answer key extension)")
	return cmd
}
