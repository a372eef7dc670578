package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sorochan/lavka/internal/models"
)

func (c *Cli) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showCart(ctx)
	}

	switch args[0] {
	case "add":
		return c.cartAdd(ctx, args[1:])
	case "set":
		return c.cartSet(ctx, args[1:])
	case "remove":
		return c.cartRemove(ctx, args[1:])
	case "clear":
		return c.cartClear(ctx)
	default:
		return fmt.Errorf("unknown cart subcommand: %s", args[0])
	}
}

func (c *Cli) showCart(ctx context.Context) error {
	if err := c.cart.Refresh(ctx); err != nil {
		return err
	}

	c.printCart()
	return nil
}

func (c *Cli) cartAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cart add <variant> [qty]")
	}
	variantID := args[0]

	quantity := 1
	if len(args) > 1 {
		var err error
		quantity, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
	}

	// Display-поля для провизорной позиции берем из каталога
	product, err := c.findProduct(ctx, variantID)
	if err != nil {
		return err
	}

	err = c.cart.Mutate(ctx, models.Mutation{
		Op:       models.OpAdd,
		Key:      variantID,
		Quantity: quantity,
		Product:  product,
	})
	if err != nil {
		return err
	}

	c.printCart()
	return nil
}

func (c *Cli) cartSet(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: cart set <variant> <qty>")
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", args[1], err)
	}

	err = c.cart.Mutate(ctx, models.Mutation{
		Op:       models.OpSetQuantity,
		Key:      args[0],
		Quantity: quantity,
	})
	if err != nil {
		return err
	}

	c.printCart()
	return nil
}

func (c *Cli) cartRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: cart remove <variant>")
	}

	err := c.cart.Mutate(ctx, models.Mutation{
		Op:  models.OpRemove,
		Key: args[0],
	})
	if err != nil {
		return err
	}

	c.printCart()
	return nil
}

func (c *Cli) cartClear(ctx context.Context) error {
	ok, err := c.io.Confirm("Clear the entire cart?")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	return c.cart.Mutate(ctx, models.Mutation{Op: models.OpClear})
}

// findProduct ищет вариант товара в каталоге
func (c *Cli) findProduct(ctx context.Context, variantID string) (models.ProductSummary, error) {
	resp, err := c.apiClient.ListProducts(ctx)
	if err != nil {
		return models.ProductSummary{}, fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, p := range resp.Products {
		if p.VariantID == variantID {
			return models.ProductSummary{
				Name:        p.Name,
				ImageURL:    p.ImageURL,
				UnitPrice:   p.Price,
				Unavailable: !p.Available,
			}, nil
		}
	}
	return models.ProductSummary{}, fmt.Errorf("variant %q not found in catalog", variantID)
}

func (c *Cli) printCart() {
	snap := c.cart.Snapshot()

	c.io.Println()
	c.io.Println("=== Cart ===")
	if len(snap.Items) == 0 {
		c.io.Println("The cart is empty.")
		return
	}

	for _, item := range snap.Items {
		availability := ""
		if item.Unavailable {
			availability = "  (unavailable)"
		}
		c.io.Printf("%-24s %-32s x%-4d %10s%s\n",
			item.Key, item.Name, item.Quantity, formatPrice(item.TotalPrice), availability)
	}

	c.io.Println()
	c.io.Printf("Items: %d, total quantity: %d, total: %s\n",
		snap.Summary.UniqueItems, snap.Summary.TotalQuantity, formatPrice(snap.Summary.TotalAmount))
	if snap.Summary.HasUnavailable {
		c.io.Println("Some items are unavailable and will not be included in checkout.")
	}
}
