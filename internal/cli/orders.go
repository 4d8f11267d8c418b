package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pawnbook/internal/backoffice"
)

// parseOrderItem parses an --item value of the form productID:quantity:unitPrice
// with the price in cents.
func parseOrderItem(s string) (backoffice.OrderItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return backoffice.OrderItem{}, fmt.Errorf("item %q: want productID:quantity:unitPrice", s)
	}
	productID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || productID <= 0 {
		return backoffice.OrderItem{}, fmt.Errorf("item %q: bad product id", s)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil || qty <= 0 {
		return backoffice.OrderItem{}, fmt.Errorf("item %q: bad quantity", s)
	}
	price, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || price < 0 {
		return backoffice.OrderItem{}, fmt.Errorf("item %q: bad unit price", s)
	}
	return backoffice.OrderItem{
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: price,
		Subtotal:  int64(qty) * price,
	}, nil
}

func newOrdersCommand(a *app, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage sales orders",
	}

	var params backoffice.ListParams
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(opts, "Listing orders", func(ctx context.Context) ([]string, error) {
				page, err := a.services.Orders.List(ctx, params)
				if err != nil {
					return nil, err
				}
				return renderOrders(page), nil
			})
		},
	}
	addListFlags(listCmd, &params)

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Fetching order", func(ctx context.Context) ([]string, error) {
				o, err := a.services.Orders.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				return renderOrder(o), nil
			})
		},
	}

	var clientID, paid int64
	var items []string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Record a sale",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID <= 0 || len(items) == 0 {
				return fmt.Errorf("--client and at least one --item are required")
			}
			order := backoffice.Order{ClientID: clientID, Paid: paid}
			for _, raw := range items {
				item, err := parseOrderItem(raw)
				if err != nil {
					return err
				}
				order.Items = append(order.Items, item)
				order.Total += item.Subtotal
			}
			return a.run(opts, "Creating order", func(ctx context.Context) ([]string, error) {
				o, err := a.services.Orders.Create(ctx, order)
				if err != nil {
					return nil, err
				}
				return renderOrder(o), nil
			})
		},
	}
	createCmd.Flags().Int64Var(&clientID, "client", 0, "client id")
	createCmd.Flags().StringArrayVar(&items, "item", nil, "line item as productID:quantity:unitPrice (cents), repeatable")
	createCmd.Flags().Int64Var(&paid, "paid", 0, "amount paid in cents")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Void an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := idArg(args)
			if err != nil {
				return err
			}
			return a.run(opts, "Deleting order", func(ctx context.Context) ([]string, error) {
				if err := a.services.Orders.Delete(ctx, id); err != nil {
					return nil, err
				}
				return []string{fmt.Sprintf("order %d deleted", id)}, nil
			})
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, deleteCmd)
	return cmd
}
