package cli

import (
	"fmt"
	"strconv"
	"time"

	"pawnbook/internal/backoffice"
)

// money renders an integer cent amount as a decimal string.
func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func pageFooter(page, perPage, total int) string {
	return fmt.Sprintf("page %d (per_page %d, total %d)", page, perPage, total)
}

func renderClients(page backoffice.List[backoffice.Client]) []string {
	lines := []string{fmt.Sprintf("%-6s %-24s %-14s %s", "ID", "NAME", "PHONE", "ADDRESS")}
	for _, c := range page.Items {
		lines = append(lines, fmt.Sprintf("%-6d %-24s %-14s %s", c.ID, c.Name, c.PhoneNumber, c.Address))
	}
	return append(lines, pageFooter(page.Page, page.PerPage, page.Total))
}

func renderClient(c backoffice.Client) []string {
	return []string{
		"id:      " + strconv.FormatInt(c.ID, 10),
		"name:    " + c.Name,
		"phone:   " + c.PhoneNumber,
		"id no.:  " + c.IDNumber,
		"address: " + c.Address,
	}
}

func renderProducts(page backoffice.List[backoffice.Product]) []string {
	lines := []string{fmt.Sprintf("%-6s %-10s %-24s %10s %6s", "ID", "CODE", "NAME", "PRICE", "STOCK")}
	for _, p := range page.Items {
		lines = append(lines, fmt.Sprintf("%-6d %-10s %-24s %10s %6d", p.ID, p.Code, p.Name, money(p.Price), p.Stock))
	}
	return append(lines, pageFooter(page.Page, page.PerPage, page.Total))
}

func renderProduct(p backoffice.Product) []string {
	return []string{
		"id:       " + strconv.FormatInt(p.ID, 10),
		"code:     " + p.Code,
		"name:     " + p.Name,
		"category: " + p.Category,
		"price:    " + money(p.Price),
		"stock:    " + strconv.Itoa(p.Stock),
	}
}

func renderOrders(page backoffice.List[backoffice.Order]) []string {
	lines := []string{fmt.Sprintf("%-6s %-10s %-8s %10s %10s", "ID", "CODE", "CLIENT", "TOTAL", "PAID")}
	for _, o := range page.Items {
		lines = append(lines, fmt.Sprintf("%-6d %-10s %-8d %10s %10s", o.ID, o.Code, o.ClientID, money(o.Total), money(o.Paid)))
	}
	return append(lines, pageFooter(page.Page, page.PerPage, page.Total))
}

func renderOrder(o backoffice.Order) []string {
	lines := []string{
		"id:     " + strconv.FormatInt(o.ID, 10),
		"code:   " + o.Code,
		"client: " + strconv.FormatInt(o.ClientID, 10),
	}
	for _, it := range o.Items {
		lines = append(lines, fmt.Sprintf("  product %d x%d @ %s = %s",
			it.ProductID, it.Quantity, money(it.UnitPrice), money(it.Subtotal)))
	}
	return append(lines,
		"total:  "+money(o.Total),
		"paid:   "+money(o.Paid),
		"change: "+money(o.Change),
	)
}

func renderPawns(page backoffice.List[backoffice.Pawn]) []string {
	lines := []string{fmt.Sprintf("%-6s %-10s %-8s %10s %-12s %s", "ID", "CODE", "CLIENT", "LOAN", "DUE", "STATUS")}
	for _, p := range page.Items {
		lines = append(lines, fmt.Sprintf("%-6d %-10s %-8d %10s %-12s %s",
			p.ID, p.Code, p.ClientID, money(p.LoanAmount), p.DueDate.Format(time.DateOnly), p.Status))
	}
	return append(lines, pageFooter(page.Page, page.PerPage, page.Total))
}

func renderPawn(p backoffice.Pawn) []string {
	return []string{
		"id:         " + strconv.FormatInt(p.ID, 10),
		"code:       " + p.Code,
		"client:     " + strconv.FormatInt(p.ClientID, 10),
		"collateral: " + p.Collateral,
		"loan:       " + money(p.LoanAmount),
		"due:        " + p.DueDate.Format(time.DateOnly),
		"status:     " + p.Status,
	}
}
