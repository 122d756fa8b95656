// Command asmectl administers the back office collections from a terminal.
package main

import (
	"fmt"
	"os"

	"asme-site/pkg/config"
	app "asme-site/services/admin/internal/app"

	"github.com/spf13/cobra"
)

var (
	// owner is the selection owner used by the select and bulk commands.
	owner      string
	jsonOutput bool

	cfg         *config.Config
	application *app.App
	svc         app.Services
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "asmectl",
	Short: "asmectl manages the ASME site back office",
	Long: `asmectl lists, archives, deletes and bulk-edits the records of the ASME
back office (posts, legal posts, clients, casos and appointments), creates
staff accounts and keeps editor drafts in sync.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application != nil {
			return application.Shutdown()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&owner, "as", "asmectl", "selection owner for select and bulk commands")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(postsCmd())
	rootCmd.AddCommand(legalPostsCmd())
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(casosCmd())
	rootCmd.AddCommand(appointmentsCmd())
	rootCmd.AddCommand(staffCmd)
	rootCmd.AddCommand(draftsCmd)
}

func initApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	application, err = app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	svc = application.Services()
	return nil
}
