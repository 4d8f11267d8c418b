package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pawnbook/internal/backoffice"
)

func addListFlags(cmd *cobra.Command, p *backoffice.ListParams) {
	cmd.Flags().IntVar(&p.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&p.PerPage, "per-page", 0, "rows per page")
	cmd.Flags().StringVar(&p.Search, "search", "", "search term")
}

func idArg(args []string) (int64, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func newClientsCommand(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage shop clients",
	}

	var params backoffice.ListParams
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Listing clients", func(ctx context.Context) ([]string, error) {
				page, err := a.services.Clients.List(ctx, params)
				if err != nil {
					return nil, err
				}
				return renderClients(page), nil
			})
		},
	}
	addListFlags(listCmd, &params)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Fetching client", func(ctx context.Context) ([]string, error) {
				c, err := a.services.Clients.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return renderClient(c), nil
			})
		},
	}

	var in backoffice.Client
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Name == "" || in.PhoneNumber == "" {
				return fmt.Errorf("--name and --phone are required")
			}
			return a.run(opts, "Creating client", func(ctx context.Context) ([]string, error) {
				c, err := a.services.Clients.Create(ctx, in)
				if err != nil {
					return nil, err
				}
				return renderClient(c), nil
			})
		},
	}
	createCmd.Flags().StringVar(&in.Name, "name", "", "full name")
	createCmd.Flags().StringVar(&in.PhoneNumber, "phone", "", "phone number")
	createCmd.Flags().StringVar(&in.IDNumber, "id-number", "", "government id number")
	createCmd.Flags().StringVar(&in.Address, "address", "", "address")

	var upd backoffice.Client
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			upd.ID = id
			return a.run(opts, "Updating client", func(ctx context.Context) ([]string, error) {
				c, err := a.services.Clients.Update(ctx, upd)
				if err != nil {
					return nil, err
				}
				return renderClient(c), nil
			})
		},
	}
	updateCmd.Flags().StringVar(&upd.Name, "name", "", "full name")
	updateCmd.Flags().StringVar(&upd.PhoneNumber, "phone", "", "phone number")
	updateCmd.Flags().StringVar(&upd.IDNumber, "id-number", "", "government id number")
	updateCmd.Flags().StringVar(&upd.Address, "address", "", "address")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Deleting client", func(ctx context.Context) ([]string, error) {
				if err := a.services.Clients.Delete(ctx, id); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("client %d deleted", id)}, nil
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}
