package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/deliverylivre/storefront/admin"
	"github.com/deliverylivre/storefront/lookup"
	"github.com/deliverylivre/storefront/merchant"
	"github.com/deliverylivre/storefront/models"
	"github.com/deliverylivre/storefront/orders"
)

func runStoreOrders(a *app, ctx context.Context, args []string) error {
	list, err := merchant.NewService(a.api).Orders(ctx)
	if err != nil {
		return err
	}
	for _, o := range list {
		customer := "?"
		if o.User != nil {
			customer = o.User.Name
		}
		fmt.Printf("%d %s — %s — %s — %s\n", o.ID, o.Code, customer,
			orders.StatusLabel(o.Status), money(o.Total))
	}
	return nil
}

func runStoreStatus(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-status", flag.ExitOnError)
	orderID := fs.Int("order", 0, "order id")
	status := fs.String("status", "", "new status (processing, ready_for_pickup, completed, canceled)")
	fs.Parse(args)

	if err := merchant.NewService(a.api).UpdateOrderStatus(ctx, *orderID, *status); err != nil {
		return err
	}
	fmt.Println("status updated")
	return nil
}

func runStoreProducts(a *app, ctx context.Context, args []string) error {
	products, err := merchant.NewService(a.api).Products(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%d %s %s stock=%d status=%s\n", p.ID, p.Name, money(p.Price),
			p.StockQuantity, p.Status)
	}
	return nil
}

func runStoreProductSave(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-product", flag.ExitOnError)
	id := fs.Int("id", 0, "product id to update (omit to create)")
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "description")
	price := fs.String("price", "0", "unit price")
	stock := fs.Int("stock", 0, "stock quantity")
	status := fs.String("status", models.ProductActive, "status (ativo, em_falta, oculto)")
	category := fs.String("category", "", "new category name")
	categoryID := fs.Int("category-id", 0, "existing category id")
	fs.Parse(args)

	unitPrice, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", *price, err)
	}
	form := merchant.ProductForm{
		Name:          *name,
		Description:   *description,
		Price:         unitPrice,
		StockQuantity: *stock,
		Status:        *status,
		Category:      *category,
		CategoryID:    *categoryID,
	}

	svc := merchant.NewService(a.api)
	if *id != 0 {
		if err := svc.UpdateProduct(ctx, *id, form); err != nil {
			return err
		}
		fmt.Println("product updated")
		return nil
	}
	if err := svc.CreateProduct(ctx, form); err != nil {
		return err
	}
	fmt.Println("product created")
	return nil
}

func runStoreDriverSave(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("store-driver", flag.ExitOnError)
	id := fs.Int("id", 0, "driver id to update (omit to create)")
	name := fs.String("name", "", "driver name")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	phone := fs.String("phone", "", "phone")
	vehicle := fs.String("vehicle", "", "vehicle")
	plate := fs.String("plate", "", "license plate")
	status := fs.String("status", "ativo", "status")
	fs.Parse(args)

	form := merchant.DriverForm{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Phone:    *phone,
		Vehicle:  *vehicle,
		Plate:    *plate,
		Status:   *status,
	}

	svc := merchant.NewService(a.api)
	if *id != 0 {
		driver, err := svc.UpdateDriver(ctx, *id, form)
		if err != nil {
			return err
		}
		fmt.Printf("driver %d updated\n", driver.ID)
		return nil
	}
	driver, err := svc.CreateDriver(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("driver %d created\n", driver.ID)
	return nil
}

func runStoreDrivers(a *app, ctx context.Context, args []string) error {
	drivers, err := merchant.NewService(a.api).Drivers(ctx)
	if err != nil {
		return err
	}
	for _, d := range drivers {
		fmt.Printf("%d %s <%s> %s %s %s\n", d.ID, d.Name, d.Email, d.Vehicle, d.Plate, d.Status)
	}
	return nil
}

func runStoreProfile(a *app, ctx context.Context, args []string) error {
	company, err := merchant.NewService(a.api).Company(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", company.FinalName, company.LegalName)
	fmt.Printf("cnpj: %s  phone: %s  email: %s\n", company.CNPJ, company.Phone, company.Email)
	fmt.Printf("category: %s  delivery fee: %s  free shipping: %v\n",
		company.Category, money(company.DeliveryFee), company.FreeShipping)
	if company.FirstPurchaseDiscountStore && company.FirstPurchaseDiscountStoreValue.Valid {
		fmt.Printf("first purchase discount (store): %s%%\n", company.FirstPurchaseDiscountStoreValue.Decimal)
	}
	if company.FirstPurchaseDiscountApp && company.FirstPurchaseDiscountAppValue.Valid {
		fmt.Printf("first purchase discount (app): %s%%\n", company.FirstPurchaseDiscountAppValue.Decimal)
	}
	for _, h := range company.OpeningHours {
		fmt.Printf("  %s %s-%s\n", h.Day, h.Open, h.Close)
	}

	banners, err := merchant.NewService(a.api).Banners(ctx)
	if err != nil {
		return err
	}
	for _, b := range banners {
		fmt.Printf("banner: %s (%s)\n", b.Title, b.ImageURL)
	}
	return nil
}

func runBanners(a *app, ctx context.Context, args []string) error {
	banners, err := admin.NewService(a.api).Banners(ctx)
	if err != nil {
		return err
	}
	for _, b := range banners {
		target := "all stores"
		if b.TargetCompanyID != nil {
			target = fmt.Sprintf("company %d", *b.TargetCompanyID)
		}
		fmt.Printf("%d %s (%s) -> %s\n", b.ID, b.Title, b.ImageURL, target)
	}
	return nil
}

func runCompanies(a *app, ctx context.Context, args []string) error {
	companies, err := admin.NewService(a.api).Companies(ctx)
	if err != nil {
		return err
	}
	for _, c := range companies {
		state := "inactive"
		if c.Active {
			state = "active"
		}
		fmt.Printf("%d %s (%s) cnpj=%s %s\n", c.ID, c.FinalName, c.LegalName, c.CNPJ, state)
	}
	return nil
}

func runBannerSave(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("banner", flag.ExitOnError)
	id := fs.Int("id", 0, "banner id to update (omit to create)")
	title := fs.String("title", "", "banner title")
	image := fs.String("image", "", "image path or url")
	companyID := fs.Int("company", 0, "target company id (0 for all stores)")
	remove := fs.Bool("rm", false, "delete the banner instead")
	fs.Parse(args)

	svc := admin.NewService(a.api)
	if *remove {
		if err := svc.DeleteBanner(ctx, *id); err != nil {
			return err
		}
		fmt.Println("banner deleted")
		return nil
	}

	banner := models.Banner{ID: *id, Title: *title, ImageURL: *image}
	if *companyID != 0 {
		banner.TargetCompanyID = companyID
	}
	if err := svc.SaveBanner(ctx, banner); err != nil {
		return err
	}
	fmt.Println("banner saved")
	return nil
}

func runCompanySave(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("company", flag.ExitOnError)
	id := fs.Int("id", 0, "company id to update (omit to create)")
	cnpj := fs.String("cnpj", "", "company registry number; legal name and phone are autofilled")
	finalName := fs.String("name", "", "display name")
	email := fs.String("email", "", "company email")
	adminName := fs.String("admin-name", "", "store admin name (create only)")
	adminEmail := fs.String("admin-email", "", "store admin email (create only)")
	adminPassword := fs.String("admin-password", "", "store admin password (create only)")
	remove := fs.Bool("rm", false, "delete the company instead")
	fs.Parse(args)

	svc := admin.NewService(a.api)
	if *remove {
		if err := svc.DeleteCompany(ctx, *id); err != nil {
			return err
		}
		fmt.Println("company deleted")
		return nil
	}

	company := models.Company{ID: *id, CNPJ: *cnpj, FinalName: *finalName, Email: *email}
	if registry, err := lookup.NewCNPJProvider().Lookup(ctx, *cnpj); err == nil {
		company.LegalName = registry.LegalName
		company.Phone = registry.Phone
		company.Address = registry.Address
	}
	storeAdmin := models.CompanyAdmin{Name: *adminName, Email: *adminEmail, Password: *adminPassword}
	if err := svc.SaveCompany(ctx, company, storeAdmin); err != nil {
		return err
	}
	fmt.Println("company saved")
	return nil
}

func runCEP(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cep", flag.ExitOnError)
	cep := fs.String("cep", "", "postal code, formatted or not")
	fs.Parse(args)

	result, err := lookup.NewCEPService(a.api).Lookup(ctx, *cep)
	if err != nil {
		return err
	}
	fmt.Printf("%s, %s, %s - %s\n", result.Street, result.Neighborhood, result.City, result.State)
	return nil
}

func runCNPJ(a *app, ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cnpj", flag.ExitOnError)
	cnpj := fs.String("cnpj", "", "company registry number, formatted or not")
	fs.Parse(args)

	result, err := lookup.NewCNPJProvider().Lookup(ctx, *cnpj)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n%s\n", result.LegalName, result.Phone, result.Address)
	return nil
}
