package main

import (
	"fmt"

	"asme-site/services/admin/internal/entity"

	"github.com/spf13/cobra"
)

var (
	staffName     string
	staffPassword string
	staffRole     string
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff accounts",
}

var staffCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a staff account",
	Example: `  asmectl staff create editor@asme.mx --name "Editor" --password s3creto-largo
  asmectl staff create admin@asme.mx --role admin --password s3creto-largo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := svc.Auth.CreateStaff(cmd.Context(), args[0], staffName, staffPassword, entity.StaffRole(staffRole))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}
		fmt.Printf("Usuario creado: %s (%s) id=%s\n", user.Email, user.Role, user.ID)
		return nil
	},
}

func init() {
	staffCreateCmd.Flags().StringVar(&staffName, "name", "", "display name")
	staffCreateCmd.Flags().StringVar(&staffPassword, "password", "", "password (at least 8 characters)")
	staffCreateCmd.Flags().StringVar(&staffRole, "role", string(entity.RoleEditor), "admin or editor")
	_ = staffCreateCmd.MarkFlagRequired("password")

	staffCmd.AddCommand(staffCreateCmd)
}
