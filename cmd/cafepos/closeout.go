package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cafepos/internal/repos"
	"cafepos/internal/services"
)

var closeoutCmd = &cobra.Command{
	Use:   "closeout",
	Short: "Print the cash close-out (admin credentials required)",
	RunE:  runCloseout,
}

func init() {
	closeoutCmd.Flags().String("user", "", "admin username")
	closeoutCmd.Flags().String("password", "", "admin password")
}

func runCloseout(cmd *cobra.Command, _ []string) error {
	user, _ := cmd.Flags().GetString("user")
	pass, _ := cmd.Flags().GetString("password")
	if user == "" || pass == "" {
		return errors.New("--user and --password are required")
	}

	ctx := cmd.Context()
	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := &services.AuthService{Users: repos.NewUserRepo(db)}
	sess, err := auth.Authenticate(ctx, user, pass)
	if err != nil {
		return err
	}
	cc, err := services.NewSalesService(repos.NewSaleRepo(db)).CloseOut(ctx, sess)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cierre de caja  %s\n", cc.ClosedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Lineas vendidas: %d\n", cc.Lines)
	fmt.Fprintf(out, "Unidades:        %d\n", cc.Items)
	fmt.Fprintf(out, "Recaudado:       $%s\n", cc.Revenue.StringFixed(2))
	if cc.TopProduct != "" {
		fmt.Fprintf(out, "Mas vendido:     %s\n", cc.TopProduct)
		fmt.Fprintf(out, "Primera venta:   %s\n", cc.FirstSaleAt.Local().Format(time.DateTime))
	}
	return nil
}
