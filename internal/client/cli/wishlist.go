package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sorochan/lavka/internal/models"
)

func (c *Cli) runWishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showWishlist(ctx, 1)
	}

	switch args[0] {
	case "add":
		return c.wishlistAdd(ctx, args[1:])
	case "remove":
		return c.wishlistRemove(ctx, args[1:])
	case "check":
		return c.wishlistCheck(ctx, args[1:])
	default:
		page, err := strconv.Atoi(args[0])
		if err != nil || page < 1 {
			return fmt.Errorf("unknown wishlist subcommand: %s", args[0])
		}
		return c.showWishlist(ctx, page)
	}
}

func (c *Cli) showWishlist(ctx context.Context, page int) error {
	if err := c.wishlist.LoadPage(ctx, page); err != nil {
		return err
	}

	snap := c.wishlist.Snapshot()

	c.io.Println("=== Wishlist ===")
	if len(snap.Items) == 0 {
		c.io.Println("The wishlist is empty.")
		return nil
	}

	for _, item := range snap.Items {
		availability := ""
		if item.Unavailable {
			availability = "  (unavailable)"
		}
		c.io.Printf("%-24s %-32s %10s%s\n",
			item.Key, item.Name, formatPrice(item.UnitPrice), availability)
	}

	c.io.Println()
	c.io.Printf("Page %d of %d, %d item(s)\n",
		snap.Page.Current, snap.Page.Total, snap.Summary.UniqueItems)
	if snap.Page.HasMore {
		c.io.Printf("Run 'lavka wishlist %d' for the next page.\n", snap.Page.Current+1)
	}

	return nil
}

func (c *Cli) wishlistAdd(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wishlist add <product>")
	}
	productID := args[0]

	product, err := c.findWishlistProduct(ctx, productID)
	if err != nil {
		return err
	}

	return c.wishlist.Mutate(ctx, models.Mutation{
		Op:      models.OpAdd,
		Key:     productID,
		Product: product,
	})
}

func (c *Cli) wishlistRemove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: wishlist remove <product>")
	}

	return c.wishlist.Mutate(ctx, models.Mutation{
		Op:  models.OpRemove,
		Key: args[0],
	})
}

func (c *Cli) wishlistCheck(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: wishlist check <product>...")
	}

	c.wishlist.CheckMembership(args)
	c.waitMembership(ctx, args)

	for _, key := range args {
		member, checked := c.wishlist.Membership(key)
		switch {
		case !checked:
			c.io.Printf("%-24s ?\n", key)
		case member:
			c.io.Printf("%-24s in wishlist\n", key)
		default:
			c.io.Printf("%-24s not in wishlist\n", key)
		}
	}

	return nil
}

// findWishlistProduct ищет товар в каталоге по product ID.
// В офлайн-режиме каталог может быть недоступен, тогда позиция
// добавляется без display-полей.
func (c *Cli) findWishlistProduct(ctx context.Context, productID string) (models.ProductSummary, error) {
	resp, err := c.apiClient.ListProducts(ctx)
	if err != nil {
		return models.ProductSummary{}, nil
	}

	for _, p := range resp.Products {
		if p.ProductID == productID {
			return models.ProductSummary{
				Name:        p.Name,
				ImageURL:    p.ImageURL,
				UnitPrice:   p.Price,
				Unavailable: !p.Available,
			}, nil
		}
	}
	return models.ProductSummary{}, nil
}
