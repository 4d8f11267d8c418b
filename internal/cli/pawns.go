package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pawnbook/internal/backoffice"
)

func newPawnsCommand(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pawns",
		Short: "Manage pawn contracts",
	}

	var params backoffice.ListParams
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List pawn contracts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Listing pawns", func(ctx context.Context) ([]string, error) {
				page, err := a.services.Pawns.List(ctx, params)
				if err != nil {
					return nil, err
				}
				return renderPawns(page), nil
			})
		},
	}
	addListFlags(listCmd, &params)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one pawn contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Fetching pawn", func(ctx context.Context) ([]string, error) {
				p, err := a.services.Pawns.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return renderPawn(p), nil
			})
		},
	}

	var clientID, amount int64
	var collateral, due string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a pawn contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID <= 0 || collateral == "" || amount <= 0 || due == "" {
				return fmt.Errorf("--client, --collateral, --amount and --due are required")
			}
			dueDate, err := time.Parse(time.DateOnly, due)
			if err != nil {
				return fmt.Errorf("parse --due: %w", err)
			}
			pawn := backoffice.Pawn{
				ClientID:   clientID,
				Collateral: collateral,
				LoanAmount: amount,
				DueDate:    dueDate,
			}
			return a.run(opts, "Creating pawn", func(ctx context.Context) ([]string, error) {
				p, err := a.services.Pawns.Create(ctx, pawn)
				if err != nil {
					return nil, err
				}
				return renderPawn(p), nil
			})
		},
	}
	createCmd.Flags().Int64Var(&clientID, "client", 0, "client id")
	createCmd.Flags().StringVar(&collateral, "collateral", "", "collateral description")
	createCmd.Flags().Int64Var(&amount, "amount", 0, "loan amount in cents")
	createCmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Close out a pawn contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Deleting pawn", func(ctx context.Context) ([]string, error) {
				if err := a.services.Pawns.Delete(ctx, id); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("pawn %d deleted", id)}, nil
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, deleteCmd)
	return cmd
}
