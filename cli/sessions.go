package cli

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/storage"
	"clementus360/edu-copilot/store"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect stored chat sessions",
	}

	var surfaceName, owner string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the sessions of one owner on one surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			surface, ok := config.LookupSurface(surfaceName)
			if !ok {
				return fatalError(cmd, fmt.Errorf("unknown surface %q", surfaceName))
			}

			settings, err := loadSettings(cmd)
			if err != nil {
				return fatalError(cmd, err)
			}
			backend, err := storage.Open(settings)
			if err != nil {
				return fatalError(cmd, err)
			}
			defer backend.Close()

			return store.NewManager(backend).With(cmd.Context(), surface, owner, func(st *store.SessionStore) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ACTIVE\tID\tTITLE\tTURNS\tUPDATED\tPREVIEW")
				for _, sess := range st.Sessions() {
					marker := ""
					if sess.IsActive {
						marker = "*"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
						marker, sess.ID, sess.Title, len(sess.Turns),
						sess.UpdatedAt.Local().Format(time.DateTime), sess.LastPreview)
				}
				return tw.Flush()
			})
		},
	}
	listCmd.Flags().StringVar(&surfaceName, "surface", "teacher", "Surface (teacher|tutor|analytics)")
	listCmd.Flags().StringVar(&owner, "owner", "anonymous", "Owner identity (JWT subject or client id)")

	cmd.AddCommand(listCmd)
	return cmd
}
