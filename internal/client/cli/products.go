package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sorochan/lavka/internal/client/cache"
)

// membershipWait сколько ждать подтверждения батч-проверки членства.
// Проверка дебаунсится, поэтому ожидание заметно больше задержки дебаунса.
const membershipWait = 5 * cache.DefaultCheckDelay

func (c *Cli) runProducts(ctx context.Context) error {
	resp, err := c.apiClient.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if len(resp.Products) == 0 {
		c.io.Println("The catalog is empty.")
		return nil
	}

	// Членство в wishlist подтягивается батчем, чтобы не делать
	// запрос на каждый товар
	keys := make([]string, 0, len(resp.Products))
	for _, p := range resp.Products {
		keys = append(keys, p.ProductID)
	}
	c.wishlist.CheckMembership(keys)
	c.waitMembership(ctx, keys)

	c.io.Println("=== Catalog ===")
	c.io.Println()
	for _, p := range resp.Products {
		marker := " "
		if member, checked := c.wishlist.Membership(p.ProductID); checked && member {
			marker = "♥"
		}

		availability := ""
		if !p.Available {
			availability = "  (unavailable)"
		}

		c.io.Printf("%s %-24s %-32s %10s%s\n",
			marker, p.ProductID, p.Name, formatPrice(p.Price), availability)
		c.io.Printf("  variant: %s\n", p.VariantID)
	}

	return nil
}

// waitMembership ждет, пока батч-проверка подтвердит переданные ключи
// или истечет таймаут. Непроверенные ключи просто останутся без маркера.
func (c *Cli) waitMembership(ctx context.Context, keys []string) {
	deadline := time.Now().Add(membershipWait)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		allChecked := true
		for _, key := range keys {
			if _, checked := c.wishlist.Membership(key); !checked {
				allChecked = false
				break
			}
		}
		if allChecked || time.Now().After(deadline) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// formatPrice форматирует цену из минорных единиц валюты
func formatPrice(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
