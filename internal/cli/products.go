package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pawnbook/internal/backoffice"
)

func newProductsCommand(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalogue",
	}

	var params backoffice.ListParams
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Listing products", func(ctx context.Context) ([]string, error) {
				page, err := a.services.Products.List(ctx, params)
				if err != nil {
					return nil, err
				}
				return renderProducts(page), nil
			})
		},
	}
	addListFlags(listCmd, &params)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Fetching product", func(ctx context.Context) ([]string, error) {
				p, err := a.services.Products.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return renderProduct(p), nil
			})
		},
	}

	var in backoffice.Product
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.Code == "" || in.Name == "" {
				return fmt.Errorf("--code and --name are required")
			}
			return a.run(opts, "Creating product", func(ctx context.Context) ([]string, error) {
				p, err := a.services.Products.Create(ctx, in)
				if err != nil {
					return nil, err
				}
				return renderProduct(p), nil
			})
		},
	}
	createCmd.Flags().StringVar(&in.Code, "code", "", "product code")
	createCmd.Flags().StringVar(&in.Name, "name", "", "product name")
	createCmd.Flags().StringVar(&in.Category, "category", "", "category")
	createCmd.Flags().Int64Var(&in.Price, "price", 0, "unit price in cents")
	createCmd.Flags().IntVar(&in.Stock, "stock", 0, "units in stock")

	var upd backoffice.Product
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			upd.ID = id
			return a.run(opts, "Updating product", func(ctx context.Context) ([]string, error) {
				p, err := a.services.Products.Update(ctx, upd)
				if err != nil {
					return nil, err
				}
				return renderProduct(p), nil
			})
		},
	}
	updateCmd.Flags().StringVar(&upd.Code, "code", "", "product code")
	updateCmd.Flags().StringVar(&upd.Name, "name", "", "product name")
	updateCmd.Flags().StringVar(&upd.Category, "category", "", "category")
	updateCmd.Flags().Int64Var(&upd.Price, "price", 0, "unit price in cents")
	updateCmd.Flags().IntVar(&upd.Stock, "stock", 0, "units in stock")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Deleting product", func(ctx context.Context) ([]string, error) {
				if err := a.services.Products.Delete(ctx, id); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("product %d deleted", id)}, nil
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd)
	return cmd
}
