package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/deliverylivre/storefront/auth"
	"github.com/deliverylivre/storefront/cart"
	"github.com/deliverylivre/storefront/catalog"
	"github.com/deliverylivre/storefront/lookup"
	"github.com/deliverylivre/storefront/models"
	"github.com/deliverylivre/storefront/orders"
)

// money renders a decimal as Brazilian currency ("R$ 23,00").
func money(d decimal.Decimal) string {
	return "R$ " + strings.ReplaceAll(d.StringFixed(2), ".", ",")
}

func runLogin(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func runRegister(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	if err := a.auth.Register(ctx, *name, *email, *password, *confirm); err != nil {
		return err
	}
	fmt.Println("account created, you can sign in now")
	return nil
}

func runForgot(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	fs.Parse(args)

	if err := a.auth.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Println("password reset requested, check your email")
	return nil
}

func runLogout(a *app, ctx context.Context, args []string) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func runMe(a *app, ctx context.Context, args []string) error {
	user, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	for i, addr := range user.Addresses {
		fmt.Printf("  address %d: %s\n", i, addr.Format())
	}
	return nil
}

func runProfileUpdate(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "new password (optional)")
	confirm := fs.String("confirm", "", "new password confirmation")
	label := fs.String("label", "", "label for a new address")
	cep := fs.String("cep", "", "postal code for a new address, looked up automatically")
	number := fs.String("number", "", "street number for the new address")
	fs.Parse(args)

	current, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}

	up := auth.ProfileUpdate{
		Name:                 *name,
		Email:                *email,
		Password:             *password,
		PasswordConfirmation: *confirm,
		Addresses:            current.Addresses,
	}
	if up.Name == "" {
		up.Name = current.Name
	}
	if up.Email == "" {
		up.Email = current.Email
	}

	if *cep != "" {
		found, err := lookup.NewCEPService(a.api).Lookup(ctx, *cep)
		if err != nil {
			return err
		}
		up.Addresses = append(up.Addresses, models.Address{
			Label:        *label,
			CEP:          *cep,
			Street:       found.Street,
			Neighborhood: found.Neighborhood,
			City:         found.City,
			State:        found.State,
			Number:       *number,
		})
	}

	user, err := a.auth.UpdateProfile(ctx, up)
	if err != nil {
		return err
	}
	fmt.Printf("profile updated: %s <%s>, %d addresses\n", user.Name, user.Email, len(user.Addresses))
	return nil
}

func runAddressRemove(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("address-rm", flag.ExitOnError)
	id := fs.Int("id", 0, "address id")
	fs.Parse(args)

	if err := a.auth.RemoveAddress(ctx, *id); err != nil {
		return err
	}
	fmt.Println("address removed")
	return nil
}

func runStores(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stores", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	search := fs.String("search", "", "search by store or product name")
	fs.Parse(args)

	svc := catalog.NewService(a.api)
	var (
		companies []models.CompanyWithProducts
		err       error
	)
	switch {
	case *category != "":
		companies, err = svc.CompaniesByCategory(ctx, *category)
	case *search != "":
		companies, err = svc.Search(ctx, *search)
	default:
		companies, err = svc.Companies(ctx)
	}
	if err != nil {
		return err
	}
	for _, c := range companies {
		fmt.Printf("%d %s (%s) — %d products\n", c.ID, c.FinalName, c.Category, len(c.Products))
		for _, p := range c.Products {
			fmt.Printf("    %d %s %s (stock %d)\n", p.ID, p.Name, money(p.Price), p.StockQuantity)
		}
	}
	return nil
}

func runPromos(a *app, ctx context.Context, args []string) error {
	banners, err := catalog.NewService(a.api).Banners(ctx)
	if err != nil {
		return err
	}
	for _, b := range banners {
		fmt.Printf("%d %s (%s)\n", b.ID, b.Title, b.ImageURL)
	}
	return nil
}

func runCategories(a *app, ctx context.Context, args []string) error {
	categories, err := catalog.NewService(a.api).Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%d %s\n", c.ID, c.Name)
	}
	return nil
}

// loadCart fetches the cart and, when an address index is given, selects
// that saved address and quotes delivery for it.
func loadCart(a *app, ctx context.Context, addressIndex int) (*cart.Service, error) {
	svc := cart.NewService(a.api)
	if err := svc.Fetch(ctx); err != nil {
		return nil, err
	}
	if addressIndex >= 0 {
		user, err := a.auth.Me(ctx)
		if err != nil {
			return nil, err
		}
		if addressIndex >= len(user.Addresses) {
			return nil, fmt.Errorf("no saved address at index %d", addressIndex)
		}
		svc.SelectAddress(user.Addresses[addressIndex])
		if err := svc.QuoteDelivery(ctx); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

func printQuote(svc *cart.Service) {
	quote := svc.Quote()
	fmt.Printf("subtotal: %s\n", money(quote.Subtotal))
	if quote.DiscountPercent.IsPositive() {
		fmt.Printf("discount: %s (%s%% %s)\n", money(quote.Discount), quote.DiscountPercent, quote.DiscountType)
	}
	if delivery := svc.Delivery(); delivery != nil {
		fmt.Printf("delivery: %s (%.2f km)\n", money(delivery.Fee), delivery.Distance)
	}
	fmt.Printf("total:    %s\n", money(quote.Total))
}

func runCart(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	addressIndex := fs.Int("address-index", -1, "saved address to quote delivery for")
	fs.Parse(args)

	svc, err := loadCart(a, ctx, *addressIndex)
	if err != nil {
		return err
	}
	items := svc.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%d %dx %s %s = %s\n", item.ID, item.Quantity, item.Product.Name,
			money(item.Price), money(item.Subtotal))
	}
	printQuote(svc)
	return nil
}

func runCartAdd(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	productID := fs.Int("product", 0, "product id")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)

	svc := cart.NewService(a.api)
	err := svc.AddProducts(ctx, []cart.Selection{{ProductID: *productID, Quantity: *qty}})
	if err != nil {
		return err
	}
	fmt.Println("added to cart")
	return nil
}

func cartItemOp(a *app, ctx context.Context, args []string, name string,
	op func(*cart.Service, context.Context, int) error) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	itemID := fs.Int("item", 0, "cart item id")
	fs.Parse(args)

	svc := cart.NewService(a.api)
	if err := svc.Fetch(ctx); err != nil {
		return err
	}
	if err := op(svc, ctx, *itemID); err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func runCartInc(a *app, ctx context.Context, args []string) error {
	return cartItemOp(a, ctx, args, "cart-inc", (*cart.Service).Increment)
}

func runCartDec(a *app, ctx context.Context, args []string) error {
	return cartItemOp(a, ctx, args, "cart-dec", (*cart.Service).Decrement)
}

func runCartRemove(a *app, ctx context.Context, args []string) error {
	return cartItemOp(a, ctx, args, "cart-rm", (*cart.Service).Remove)
}

func runCheckout(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	addressIndex := fs.Int("address-index", -1, "saved address to deliver to")
	fs.Parse(args)

	if *addressIndex < 0 {
		return cart.ErrNoAddress
	}
	svc, err := loadCart(a, ctx, *addressIndex)
	if err != nil {
		return err
	}
	printQuote(svc)
	if err := svc.Checkout(ctx); err != nil {
		return err
	}
	fmt.Println("order placed")
	return nil
}

func runOrders(a *app, ctx context.Context, args []string) error {
	list, err := orders.NewService(a.api).List(ctx)
	if err != nil {
		return err
	}
	for _, o := range list {
		fmt.Printf("%d %s — %s — %s — %s\n", o.ID, o.Code, o.Store.FinalName,
			orders.StatusLabel(o.Status), money(o.Total))
	}
	return nil
}

func runPix(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pix", flag.ExitOnError)
	orderID := fs.Int("order", 0, "order id")
	copyCode := fs.Bool("copy", false, "copy the code to the clipboard")
	watch := fs.Bool("watch", false, "keep the countdown running until expiry")
	fs.Parse(args)

	svc := orders.NewService(a.api)
	if err := svc.Pix.Request(ctx, *orderID); err != nil {
		return err
	}

	text, err := svc.Pix.DisplayText(*orderID)
	if err != nil {
		return err
	}
	fmt.Println(text)

	if *copyCode {
		if _, err := svc.Pix.Copy(*orderID); err != nil {
			return err
		}
		fmt.Println("código PIX copiado")
	}

	remaining, _ := svc.Pix.Remaining(*orderID)
	fmt.Printf("expira em %s\n", orders.FormatCountdown(remaining))

	if *watch {
		svc.Pix.Start(time.Second)
		defer svc.Pix.Stop()
		for {
			time.Sleep(time.Second)
			remaining, held := svc.Pix.Remaining(*orderID)
			if !held {
				fmt.Println("código expirado")
				return nil
			}
			fmt.Printf("\rexpira em %s ", orders.FormatCountdown(remaining))
		}
	}
	return nil
}

func runPaid(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("paid", flag.ExitOnError)
	orderID := fs.Int("order", 0, "order id")
	fs.Parse(args)

	if err := orders.NewService(a.api).ConfirmPixPaid(ctx, *orderID); err != nil {
		return err
	}
	fmt.Println("payment reported, awaiting confirmation")
	return nil
}

func runPickup(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pickup", flag.ExitOnError)
	orderID := fs.Int("order", 0, "order id")
	fs.Parse(args)

	if err := orders.NewService(a.api).ConfirmPickup(ctx, *orderID); err != nil {
		return err
	}
	fmt.Println("pickup confirmed, pay at the store")
	return nil
}
