// Package main is the interactive storefront client: catalog browsing, cart
// management, checkout and the administrative back office, all against the
// remote REST API.
package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oldschooltees/tienda/internal/client/admin"
	"github.com/oldschooltees/tienda/internal/client/api"
	"github.com/oldschooltees/tienda/internal/client/cart"
	"github.com/oldschooltees/tienda/internal/client/catalog"
	"github.com/oldschooltees/tienda/internal/client/monitor"
	"github.com/oldschooltees/tienda/internal/client/orders"
	"github.com/oldschooltees/tienda/internal/client/session"
	"github.com/oldschooltees/tienda/internal/client/transport"
	"github.com/oldschooltees/tienda/internal/config"
	"github.com/oldschooltees/tienda/internal/logger"
	"github.com/oldschooltees/tienda/internal/models"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// app bundles the shared stores and clients the shell works with.
type app struct {
	sessions *session.Store
	cart     *cart.Store
	catalog  *catalog.Client
	orders   *orders.Client
	admin    *admin.Stores
	monitor  *monitor.Client
	log      *zap.Logger
}

func main() {
	showVer := flag.Bool("version", false, "show build version and date")
	options := config.Parse()

	if *showVer {
		fmt.Printf("Tienda Client\nVersion: %s\nBuild Date: %s\n",
			cmp.Or(version, "N/A"), cmp.Or(buildDate, "N/A"))
		return
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	// The session store is both the consumer of the auth endpoints and the
	// token source of the authorizing transport, so wire it through a
	// late-bound func.
	var sessions *session.Store
	client := api.New(options.BaseURL, transport.TokenFunc(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}), options.Timeout, log.Log)
	sessions = session.New(options.StatePath, client, log.Log)

	a := &app{
		sessions: sessions,
		cart:     cart.New(client, sessions, log.Log),
		catalog:  catalog.New(client),
		orders:   orders.New(client),
		admin:    admin.New(client, sessions, log.Log),
		monitor:  monitor.New(client, log.Log),
		log:      log.Log,
	}

	// Keep the cart snapshot in step with the session: fetch on login, drop
	// on logout. The two clears are sequenced here, not inside the stores.
	sessions.OnChange(func(loggedIn bool) {
		if loggedIn {
			if _, err := a.cart.Fetch(context.Background()); err != nil {
				a.log.Debug("initial cart fetch failed", zap.Error(err))
			}
		} else {
			a.cart.ClearLocal()
		}
	})

	a.repl()
}

// repl runs the interactive shell loop.
func (a *app) repl() {
	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	fmt.Println("tienda — type 'help' for commands")
	for {
		fmt.Print("tienda> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			printHelp()
		case "login":
			a.cmdLogin(ctx, scanner)
		case "register":
			a.cmdRegister(ctx, scanner)
		case "reset":
			a.cmdReset(ctx, args)
		case "unlock":
			a.cmdUnlock(ctx, scanner)
		case "logout":
			a.sessions.Logout()
			fmt.Println("Logged out")
		case "whoami":
			a.cmdWhoami()
		case "catalog":
			a.cmdCatalog(ctx, args)
		case "product":
			a.cmdProduct(ctx, args)
		case "categories":
			a.cmdCategories(ctx)
		case "promos":
			a.cmdPromos(ctx)
		case "cart":
			a.cmdCart(ctx, scanner, args)
		case "checkout":
			a.cmdCheckout(ctx, scanner)
		case "orders":
			a.cmdOrders(ctx)
		case "admin":
			a.cmdAdmin(ctx, scanner, args)
		case "exit", "quit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func printHelp() {
	fmt.Println(`Available commands:
  login | register | reset <email> | unlock | logout | whoami
  catalog [category]      list products
  product <id>            product details
  categories | promos
  cart                    show cart
  cart add <productId> <qty>
  cart rm <lineId>
  cart qty <lineId> <n>   n=0 removes the line
  checkout                place an order from the cart
  orders                  my order history
  admin ...               back office (admin help)
  exit`)
}

// prompt reads one line after printing label.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// confirm asks a y/N question before destructive actions.
func confirm(scanner *bufio.Scanner, question string) bool {
	answer := prompt(scanner, question+" [y/N]: ")
	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes")
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Println("not a valid id:", s)
		return 0, false
	}
	return id, true
}

func (a *app) cmdLogin(ctx context.Context, scanner *bufio.Scanner) {
	req := models.LoginRequest{
		Email:    prompt(scanner, "email: "),
		Password: prompt(scanner, "password: "),
	}
	resp, err := a.sessions.Login(ctx, req)
	if err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Printf("Welcome, %s\n", resp.Name)
}

func (a *app) cmdRegister(ctx context.Context, scanner *bufio.Scanner) {
	req := models.RegisterRequest{
		Name:            prompt(scanner, "name: "),
		Email:           prompt(scanner, "email: "),
		Password:        prompt(scanner, "password: "),
		ConfirmPassword: prompt(scanner, "confirm password: "),
	}
	resp, err := a.sessions.Register(ctx, req)
	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Printf("Account created. Welcome, %s\n", resp.Name)
}

func (a *app) cmdReset(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: reset <email>")
		return
	}
	msg, err := a.sessions.RequestResetCode(ctx, args[1])
	if err != nil {
		fmt.Println("Request failed:", err)
		return
	}
	fmt.Println(msg)
}

func (a *app) cmdUnlock(ctx context.Context, scanner *bufio.Scanner) {
	req := models.UnlockRequest{
		Email:       prompt(scanner, "email: "),
		Code:        prompt(scanner, "code: "),
		NewPassword: prompt(scanner, "new password (empty to keep): "),
	}
	msg, err := a.sessions.Unlock(ctx, req)
	if err != nil {
		fmt.Println("Unlock failed:", err)
		return
	}
	fmt.Println(msg)
}

func (a *app) cmdWhoami() {
	if !a.sessions.IsLoggedIn() {
		fmt.Println("Not logged in")
		return
	}
	p := a.sessions.Profile()
	fmt.Printf("%s <%s> roles=%v admin=%v\n", p.Name, p.Email, p.Roles, a.sessions.IsAdmin())
}

func (a *app) cmdCatalog(ctx context.Context, args []string) {
	var (
		products []models.Product
		err      error
	)
	if len(args) > 1 {
		products, err = a.catalog.ProductsByCategory(ctx, args[1])
	} else {
		products, err = a.catalog.Products(ctx)
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, p := range products {
		fmt.Printf("#%d  %-30s %-4s S/%.2f  stock=%d  [%s]\n",
			p.ID, p.Name, p.Size, p.Price, p.Stock, p.CategoryName)
	}
}

func (a *app) cmdProduct(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Println("Usage: product <id>")
		return
	}
	id, ok := parseID(args[1])
	if !ok {
		return
	}
	p, err := a.catalog.Product(ctx, id)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("#%d %s (%s)\n%s\nPrice: S/%.2f  Stock: %d  Category: %s\n",
		p.ID, p.Name, p.Size, p.Description, p.Price, p.Stock, p.CategoryName)
	if p.PromotionName != "" {
		fmt.Printf("Promotion %q: S/%.2f off (was S/%.2f)\n", p.PromotionName, p.AppliedDiscount, p.OriginalPrice)
	}
}

func (a *app) cmdCategories(ctx context.Context) {
	cats, err := a.catalog.Categories(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, c := range cats {
		fmt.Printf("#%d %s — %s\n", c.CategoryID, c.Name, c.Description)
	}
}

func (a *app) cmdPromos(ctx context.Context) {
	promos, err := a.catalog.Promotions(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, p := range promos {
		fmt.Printf("#%d %-10s %5.1f%%  %s..%s  active=%v  %s\n",
			p.PromotionID, p.Code, p.Discount, p.StartDate, p.EndDate, p.Active, p.Description)
	}
}

func (a *app) cmdCart(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if !a.sessions.IsLoggedIn() {
		fmt.Println("Log in first")
		return
	}

	if len(args) == 1 {
		if _, err := a.cart.Fetch(ctx); err != nil {
			fmt.Println("Error:", err)
			return
		}
		a.printCart()
		return
	}

	switch args[1] {
	case "add":
		if len(args) < 4 {
			fmt.Println("Usage: cart add <productId> <qty>")
			return
		}
		productID, ok := parseID(args[2])
		if !ok {
			return
		}
		qty, err := strconv.Atoi(args[3])
		if err != nil {
			fmt.Println("not a valid quantity:", args[3])
			return
		}
		if _, err := a.cart.AddItem(ctx, models.AddItemRequest{ProductID: productID, Quantity: qty}); err != nil {
			fmt.Println("Error:", err)
			return
		}
		a.printCart()
	case "rm":
		if len(args) < 3 {
			fmt.Println("Usage: cart rm <lineId>")
			return
		}
		lineID, ok := parseID(args[2])
		if !ok {
			return
		}
		if !confirm(scanner, "Remove this item from the cart?") {
			return
		}
		if _, err := a.cart.RemoveItem(ctx, lineID); err != nil {
			fmt.Println("Error:", err)
			return
		}
		a.printCart()
	case "qty":
		if len(args) < 4 {
			fmt.Println("Usage: cart qty <lineId> <n>")
			return
		}
		lineID, ok := parseID(args[2])
		if !ok {
			return
		}
		qty, err := strconv.Atoi(args[3])
		if err != nil {
			fmt.Println("not a valid quantity:", args[3])
			return
		}
		// A quantity of zero means the line goes away, never a zeroed line.
		if qty < 1 {
			if !confirm(scanner, "Quantity 0 removes the item. Continue?") {
				return
			}
			if _, err := a.cart.RemoveItem(ctx, lineID); err != nil {
				fmt.Println("Error:", err)
				return
			}
		} else if _, err := a.cart.SetQuantity(ctx, lineID, qty); err != nil {
			fmt.Println("Error:", err)
			return
		}
		a.printCart()
	default:
		fmt.Println("Unknown cart command. Try: cart | cart add | cart rm | cart qty")
	}
}

func (a *app) printCart() {
	c := a.cart.Cart()
	if c == nil || len(c.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, line := range c.Items {
		fmt.Printf("line %d: %dx %-30s S/%.2f = S/%.2f\n",
			line.LineID, line.Quantity, line.ProductName, line.UnitPrice, line.Subtotal)
	}
	fmt.Printf("Total: S/%.2f\n", c.Total)
}

func (a *app) cmdCheckout(ctx context.Context, scanner *bufio.Scanner) {
	c := a.cart.Cart()
	if c == nil || len(c.Items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	a.printCart()

	req := models.OrderRequest{
		ShippingAddress: prompt(scanner, "shipping address: "),
		PaymentInfo:     cmp.Or(prompt(scanner, "payment method [Yape]: "), "Yape"),
	}
	order, err := a.orders.Create(ctx, req)
	if err != nil {
		fmt.Println("Checkout failed:", err)
		return
	}
	// The server consumed the cart; drop the stale local snapshot.
	a.cart.ClearLocal()
	fmt.Printf("Order #%d placed. Total S/%.2f, status %s\n", order.OrderID, order.Total, order.Status)
}

func (a *app) cmdOrders(ctx context.Context) {
	list, err := a.orders.Mine(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, o := range list {
		fmt.Printf("#%d  %s  S/%.2f  %s / pago:%s / envio:%s\n",
			o.OrderID, o.Date, o.Total, o.Status, o.PaymentStatus, o.ShippingStatus)
	}
}

func (a *app) cmdAdmin(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if !a.sessions.IsAdmin() {
		fmt.Println("Admin role required")
		return
	}
	if len(args) < 2 {
		printAdminHelp()
		return
	}

	switch args[1] {
	case "help":
		printAdminHelp()
	case "pedidos":
		list, err := a.admin.Orders.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, o := range list {
			fmt.Printf("#%d  %s  S/%.2f  %s / pago:%s / envio:%s  %s\n",
				o.OrderID, o.Date, o.Total, o.Status, o.PaymentStatus, o.ShippingStatus, o.ShippingAddress)
		}
	case "estado", "pago", "envio":
		a.adminUpdateOrder(ctx, args)
	case "productos":
		list, err := a.admin.Products.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, p := range list {
			fmt.Printf("#%d  %-30s %-4s S/%.2f  stock=%d  active=%v\n",
				p.ID, p.Name, p.Size, p.Price, p.Stock, p.Active)
		}
	case "baja":
		a.adminDeactivate(ctx, scanner, args)
	case "imagen":
		a.adminUploadImage(ctx, args)
	case "stock":
		a.adminStock(ctx, args)
	case "promos":
		list, err := a.admin.Promotions.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, p := range list {
			fmt.Printf("#%d %-10s %5.1f%%  active=%v  %s\n", p.PromotionID, p.Code, p.Discount, p.Active, p.Description)
		}
	case "asignaciones":
		a.adminAssignments(ctx, scanner, args)
	case "proveedores":
		list, err := a.admin.Suppliers.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, s := range list {
			fmt.Printf("#%d  %-30s RUC=%s  %s %s\n", s.SupplierID, s.Name, s.RUC, s.Phone, s.Email)
		}
	case "categorias":
		list, err := a.admin.Categories.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, c := range list {
			fmt.Printf("#%d %s — %s\n", c.CategoryID, c.Name, c.Description)
		}
	case "status":
		a.adminStatus(ctx)
	case "logs":
		a.adminLogs(ctx, args)
	case "watch":
		a.adminWatch(scanner)
	default:
		fmt.Println("Unknown admin command. Try: admin help")
	}
}

func printAdminHelp() {
	fmt.Println(`Admin commands:
  admin pedidos                       list all orders
  admin estado|pago|envio <id> <ST>   update one order status
  admin productos                     list all products (incl. inactive)
  admin baja producto|promo <id>      logical delete
  admin imagen <productId> <file>     upload product image
  admin stock [<productId> <n>]       list inventory / set stock
  admin promos
  admin asignaciones <productId> [asignar <provId> <cost> | precio <id> <cost> | rm <id>]
  admin proveedores | admin categorias
  admin status | admin logs [download <file>] | admin watch`)
}

func (a *app) adminUpdateOrder(ctx context.Context, args []string) {
	if len(args) < 4 {
		fmt.Println("Usage: admin estado|pago|envio <pedidoId> <STATUS>")
		return
	}
	orderID, ok := parseID(args[2])
	if !ok {
		return
	}
	status := strings.ToUpper(args[3])

	var (
		updated *models.Order
		err     error
	)
	switch args[1] {
	case "estado":
		if !slices.Contains(models.OrderStatuses, status) {
			fmt.Println("Valid statuses:", strings.Join(models.OrderStatuses, ", "))
			return
		}
		updated, err = a.admin.Orders.UpdateStatus(ctx, orderID, status)
	case "pago":
		if !slices.Contains(models.PaymentStatuses, status) {
			fmt.Println("Valid statuses:", strings.Join(models.PaymentStatuses, ", "))
			return
		}
		updated, err = a.admin.Orders.UpdatePayment(ctx, orderID, status)
	case "envio":
		if !slices.Contains(models.ShippingStatuses, status) {
			fmt.Println("Valid statuses:", strings.Join(models.ShippingStatuses, ", "))
			return
		}
		updated, err = a.admin.Orders.UpdateShipping(ctx, orderID, status)
	}
	if err != nil {
		fmt.Println("Update failed:", err)
		return
	}
	fmt.Printf("Order #%d now %s / pago:%s / envio:%s\n",
		updated.OrderID, updated.Status, updated.PaymentStatus, updated.ShippingStatus)
}

func (a *app) adminDeactivate(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if len(args) < 4 {
		fmt.Println("Usage: admin baja producto|promo <id>")
		return
	}
	id, ok := parseID(args[3])
	if !ok {
		return
	}
	if !confirm(scanner, "Deactivate (logical delete)?") {
		return
	}

	var err error
	switch args[2] {
	case "producto":
		err = a.admin.Products.Deactivate(ctx, id)
	case "promo":
		err = a.admin.Promotions.Deactivate(ctx, id)
	default:
		fmt.Println("Usage: admin baja producto|promo <id>")
		return
	}
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Deactivated")
}

func (a *app) adminUploadImage(ctx context.Context, args []string) {
	if len(args) < 4 {
		fmt.Println("Usage: admin imagen <productId> <file>")
		return
	}
	productID, ok := parseID(args[2])
	if !ok {
		return
	}
	f, err := os.Open(args[3])
	if err != nil {
		fmt.Println("Cannot open file:", err)
		return
	}
	defer f.Close()

	url, err := a.admin.Products.UploadImage(ctx, productID, f.Name(), f)
	if err != nil {
		fmt.Println("Upload failed:", err)
		return
	}
	fmt.Println("Image uploaded:", url)
}

func (a *app) adminStock(ctx context.Context, args []string) {
	if len(args) < 4 {
		list, err := a.admin.Inventory.Load(ctx)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, inv := range list {
			fmt.Printf("#%d  product #%d %-30s stock=%d\n", inv.InventoryID, inv.ProductID, inv.ProductName, inv.Stock)
		}
		return
	}

	productID, ok := parseID(args[2])
	if !ok {
		return
	}
	stock, err := strconv.Atoi(args[3])
	if err != nil {
		fmt.Println("not a valid stock value:", args[3])
		return
	}
	inv, err := a.admin.Inventory.UpdateStock(ctx, models.UpdateStockRequest{ProductID: productID, NewStock: stock})
	if err != nil {
		fmt.Println("Update failed:", err)
		return
	}
	fmt.Printf("Stock of %q is now %d\n", inv.ProductName, inv.Stock)
}

func (a *app) adminAssignments(ctx context.Context, scanner *bufio.Scanner, args []string) {
	if len(args) < 3 {
		fmt.Println("Usage: admin asignaciones <productId> [...]")
		return
	}
	productID, ok := parseID(args[2])
	if !ok {
		return
	}

	if len(args) == 3 {
		list, err := a.admin.Assignments.ForProduct(ctx, productID)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		for _, as := range list {
			fmt.Printf("#%d  %s ← %s  cost=S/%.2f\n", as.AssignmentID, as.ProductName, as.SupplierName, as.CostPrice)
		}
		return
	}

	switch args[3] {
	case "asignar":
		if len(args) < 6 {
			fmt.Println("Usage: admin asignaciones <productId> asignar <proveedorId> <cost>")
			return
		}
		supplierID, ok := parseID(args[4])
		if !ok {
			return
		}
		cost, err := strconv.ParseFloat(args[5], 64)
		if err != nil {
			fmt.Println("not a valid cost:", args[5])
			return
		}
		as, err := a.admin.Assignments.Create(ctx, models.AssignmentRequest{
			ProductID: productID, SupplierID: supplierID, CostPrice: cost,
		})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Assignment #%d created\n", as.AssignmentID)
	case "precio":
		if len(args) < 6 {
			fmt.Println("Usage: admin asignaciones <productId> precio <asignacionId> <cost>")
			return
		}
		assignmentID, ok := parseID(args[4])
		if !ok {
			return
		}
		cost, err := strconv.ParseFloat(args[5], 64)
		if err != nil {
			fmt.Println("not a valid cost:", args[5])
			return
		}
		as, err := a.admin.Assignments.UpdateCost(ctx, assignmentID, models.UpdateCostPriceRequest{NewCostPrice: cost})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("Assignment #%d cost is now S/%.2f\n", as.AssignmentID, as.CostPrice)
	case "rm":
		if len(args) < 5 {
			fmt.Println("Usage: admin asignaciones <productId> rm <asignacionId>")
			return
		}
		assignmentID, ok := parseID(args[4])
		if !ok {
			return
		}
		if !confirm(scanner, "Delete this assignment?") {
			return
		}
		if err := a.admin.Assignments.Delete(ctx, assignmentID); err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Println("Assignment deleted")
	default:
		fmt.Println("Unknown assignment command")
	}
}

func (a *app) adminStatus(ctx context.Context) {
	status, err := a.monitor.Status(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Status: %s  uptime=%s\n", status.Status, status.Uptime)
	metrics, err := a.monitor.Metrics(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Printf("Memory: %.1f MB  CPU: %.1f%%  requests=%d errors=%d\n",
		metrics.MemoryUsedMB, metrics.CPUUsedPercent, metrics.RequestCount, metrics.ErrorCount)
}

func (a *app) adminLogs(ctx context.Context, args []string) {
	if len(args) >= 4 && args[2] == "download" {
		f, err := os.Create(args[3])
		if err != nil {
			fmt.Println("Cannot create file:", err)
			return
		}
		defer f.Close()
		n, err := a.monitor.DownloadLogs(ctx, f)
		if err != nil {
			fmt.Println("Download failed:", err)
			return
		}
		fmt.Printf("Wrote %d bytes to %s\n", n, args[3])
		return
	}

	lines, err := a.monitor.RecentLogs(ctx)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

// adminWatch refreshes the monitoring dashboard every few seconds until the
// user presses Enter. The polling goroutine is disposed via context cancel.
func (a *app) adminWatch(scanner *bufio.Scanner) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.monitor.AutoRefresh(ctx, 3*time.Second, func(snap monitor.Snapshot) {
		fmt.Printf("[%s] status=%s mem=%.1fMB cpu=%.1f%% (%d log lines)\n",
			time.Now().Format(time.TimeOnly), snap.Status.Status,
			snap.Metrics.MemoryUsedMB, snap.Metrics.CPUUsedPercent, len(snap.Logs))
	})

	fmt.Println("Watching... press Enter to stop")
	scanner.Scan()
}
