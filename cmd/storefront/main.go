// Command storefront is a terminal client for the Delivery Livre API. It
// signs in as a customer, store or platform admin and drives the same REST
// contract the mobile app consumes.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/deliverylivre/storefront/apiclient"
	"github.com/deliverylivre/storefront/auth"
	"github.com/deliverylivre/storefront/config"
	"github.com/deliverylivre/storefront/logger"
	"github.com/deliverylivre/storefront/models"
	"github.com/deliverylivre/storefront/session"
)

type app struct {
	cfg  config.Config
	api  *apiclient.Client
	auth *auth.Service
	user *models.User
}

type command struct {
	usage string
	role  models.Role // "" means any signed-in user; auth commands check nothing
	run   func(a *app, ctx context.Context, args []string) error
}

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	api := apiclient.New(cfg.BaseURL, cfg.HTTPTimeout)
	sessions := session.NewStore(cfg.SessionDir)
	a := &app{
		cfg:  cfg,
		api:  api,
		auth: auth.NewService(api, sessions),
	}

	user, err := a.auth.Restore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not restore session:", err)
	}
	a.user = user

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		usage()
		os.Exit(2)
	}

	if cmd.role != "" {
		if a.user == nil {
			fmt.Fprintln(os.Stderr, "sign in first: storefront login -email ... -password ...")
			os.Exit(1)
		}
		if a.user.Role != cmd.role && a.user.Role != models.RoleAdmin {
			fmt.Fprintf(os.Stderr, "command %q requires the %s role\n", name, cmd.role)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	if err := cmd.run(a, ctx, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: storefront <command> [flags]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for name, cmd := range commands {
		fmt.Fprintf(os.Stderr, "  %-16s %s\n", name, cmd.usage)
	}
}

var commands = map[string]command{
	"login":    {usage: "sign in: -email -password", run: runLogin},
	"register": {usage: "create an account: -name -email -password -confirm", run: runRegister},
	"forgot":   {usage: "request a password reset: -email", run: runForgot},
	"logout":   {usage: "drop the stored session", run: runLogout},
	"me":       {usage: "show the signed-in profile", run: runMe},

	"profile":    {usage: "update the profile: [-name -email -password -confirm] [-cep -label -number]", role: models.RoleClient, run: runProfileUpdate},
	"address-rm": {usage: "remove a saved address: -id", role: models.RoleClient, run: runAddressRemove},

	"stores":     {usage: "browse stores: [-category] [-search]", role: models.RoleClient, run: runStores},
	"categories": {usage: "list product categories", role: models.RoleClient, run: runCategories},
	"promos":     {usage: "list promotional banners", role: models.RoleClient, run: runPromos},

	"cart":     {usage: "show the cart and quote: [-address-index N]", role: models.RoleClient, run: runCart},
	"cart-add": {usage: "add a product: -product -qty", role: models.RoleClient, run: runCartAdd},
	"cart-inc": {usage: "increment an item: -item", role: models.RoleClient, run: runCartInc},
	"cart-dec": {usage: "decrement an item: -item", role: models.RoleClient, run: runCartDec},
	"cart-rm":  {usage: "remove an item: -item", role: models.RoleClient, run: runCartRemove},
	"checkout": {usage: "place the order: -address-index N", role: models.RoleClient, run: runCheckout},

	"orders": {usage: "list my orders", role: models.RoleClient, run: runOrders},
	"pix":    {usage: "request and show a PIX code: -order [-copy] [-watch]", role: models.RoleClient, run: runPix},
	"paid":   {usage: "report a PIX payment: -order", role: models.RoleClient, run: runPaid},
	"pickup": {usage: "confirm a pickup order: -order", role: models.RoleClient, run: runPickup},

	"store-orders":   {usage: "list store orders", role: models.RoleStore, run: runStoreOrders},
	"store-status":   {usage: "update an order: -order -status", role: models.RoleStore, run: runStoreStatus},
	"store-products": {usage: "list store products", role: models.RoleStore, run: runStoreProducts},
	"store-product":  {usage: "create or update a product: [-id] -name -price -stock [-category|-category-id]", role: models.RoleStore, run: runStoreProductSave},
	"store-drivers":  {usage: "list store drivers", role: models.RoleStore, run: runStoreDrivers},
	"store-driver":   {usage: "create or update a driver: [-id] -name -email -password -phone -vehicle -plate", role: models.RoleStore, run: runStoreDriverSave},
	"store-profile":  {usage: "show the store profile", role: models.RoleStore, run: runStoreProfile},

	"banners":   {usage: "list platform banners", role: models.RoleAdmin, run: runBanners},
	"banner":    {usage: "save or delete a banner: [-id] -title -image [-company] [-rm]", role: models.RoleAdmin, run: runBannerSave},
	"companies": {usage: "list platform companies", role: models.RoleAdmin, run: runCompanies},
	"company":   {usage: "save or delete a company: [-id] -cnpj -name [-admin-*] [-rm]", role: models.RoleAdmin, run: runCompanySave},

	"cep":  {usage: "resolve a postal code: -cep", run: runCEP},
	"cnpj": {usage: "resolve a CNPJ via BrasilAPI: -cnpj", run: runCNPJ},
}
