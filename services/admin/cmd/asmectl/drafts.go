package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"asme-site/pkg/drafts"

	"github.com/spf13/cobra"
)

var draftUser string

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Inspect and sync editor drafts",
}

var draftsWatchCmd = &cobra.Command{
	Use:   "watch <key> <file>",
	Short: "Autosave a local file as a draft until interrupted",
	Long: `watch stores the file's content under the draft key on the configured
autosave interval, skipping unchanged content, and saves once more on exit.
Drafts written this way are the ones the dashboard editor restores.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[1]
		snapshot := func() ([]byte, error) { return os.ReadFile(path) }

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		saver := drafts.NewAutosaver(svc.Drafts, draftKey(args[0]), cfg.DraftAutosaveInterval, snapshot, application.Logger())
		fmt.Printf("Guardando %s cada %s (Ctrl+C para terminar)\n", path, cfg.DraftAutosaveInterval)
		return saver.Run(ctx)
	},
}

var draftsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print a stored draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, ok, err := svc.Drafts.Load(cmd.Context(), draftKey(args[0]))
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no hay borrador para %q", args[0])
		}
		fmt.Println(string(value))
		return nil
	},
}

var draftsClearCmd = &cobra.Command{
	Use:   "clear <key>",
	Short: "Discard a stored draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.Drafts.Clear(cmd.Context(), draftKey(args[0]))
	},
}

// draftKey scopes key to a staff user the same way the HTTP API does.
func draftKey(key string) string {
	if draftUser == "" {
		return key
	}
	return draftUser + "." + key
}

func init() {
	draftsCmd.PersistentFlags().StringVar(&draftUser, "user", "", "staff user id owning the draft")
	draftsCmd.AddCommand(draftsWatchCmd, draftsShowCmd, draftsClearCmd)
}
