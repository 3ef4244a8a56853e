package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cafepos/internal/domain"
	"cafepos/internal/repos"
	"cafepos/internal/services"
)

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Create a register user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		username, _ := cmd.Flags().GetString("username")
		name, _ := cmd.Flags().GetString("name")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		ctx := cmd.Context()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		auth := &services.AuthService{Users: repos.NewUserRepo(db)}
		u, err := auth.CreateUser(ctx, username, name, password, domain.Role(role))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Username, u.Role, u.ID)
		return nil
	},
}

func init() {
	useraddCmd.Flags().String("username", "", "login name")
	useraddCmd.Flags().String("name", "", "display name")
	useraddCmd.Flags().String("password", "", "password (8-72 chars, mixed case, digit and symbol)")
	useraddCmd.Flags().String("role", string(domain.RoleSeller), "ADMIN or VENDEDOR")
	_ = useraddCmd.MarkFlagRequired("username")
	_ = useraddCmd.MarkFlagRequired("password")
}
