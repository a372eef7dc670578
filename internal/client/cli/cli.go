package cli

import (
	"github.com/sorochan/lavka/internal/client/api"
	"github.com/sorochan/lavka/internal/client/auth"
	"github.com/sorochan/lavka/internal/client/cache"
	"github.com/sorochan/lavka/internal/client/iocli"
)

// Cli связывает команды терминального клиента магазина с сервисами
type Cli struct {
	io          iocli.IO
	apiClient   *api.Client
	authService auth.Service
	cart        *cache.Cache
	wishlist    *cache.Cache
}

// New создает CLI клиента магазина
func New(io iocli.IO, apiClient *api.Client, authService auth.Service, cart, wishlist *cache.Cache) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authService: authService,
		cart:        cart,
		wishlist:    wishlist,
	}
}

// PrintUsage выводит справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("Lavka Storefront Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  lavka [OPTIONS] COMMAND [ARGS]")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version             Show version information")
	c.io.Println("  --server URL          Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH             Path to local database (default: lavka-client.db)")
	c.io.Println("  --key PATH            Path to local storage key file (default: lavka-client.key)")
	c.io.Println("  --offline-wishlist    Keep wishlist locally, without a server account")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  register                     Register new account")
	c.io.Println("  login                        Login to the store")
	c.io.Println("  logout                       Logout and revoke the session")
	c.io.Println("  status                       Show session status")
	c.io.Println("  products                     List the product catalog")
	c.io.Println("  cart                         Show the cart")
	c.io.Println("  cart add <variant> [qty]     Add item to the cart")
	c.io.Println("  cart set <variant> <qty>     Set item quantity (0 removes)")
	c.io.Println("  cart remove <variant>        Remove item from the cart")
	c.io.Println("  cart clear                   Clear the cart")
	c.io.Println("  wishlist [page]              Show a wishlist page")
	c.io.Println("  wishlist add <product>       Add product to the wishlist")
	c.io.Println("  wishlist remove <product>    Remove product from the wishlist")
	c.io.Println("  wishlist check <product>...  Check wishlist membership")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  lavka register")
	c.io.Println("  lavka products")
	c.io.Println("  lavka cart add sku-latte-250 2")
	c.io.Println("  lavka cart set sku-latte-250 0")
	c.io.Println("  lavka wishlist add prod-teapot")
	c.io.Println("  lavka --server https://store.example.com login")
}
