package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Shop(ctx context.Context, args []string) error
	ShowCart(ctx context.Context) error
	AddToCart(ctx context.Context, args []string) error
	RemoveFromCart(ctx context.Context, args []string) error
	SetQuantity(ctx context.Context, args []string) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) error
	AddProduct(ctx context.Context) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not signed in:
//	  - help               — show available commands
//	  - shop [category]    — browse the catalog
//	  - register           — create an account
//	  - login              — authenticate
//	  - exit | quit        — leave the program
//
//	Signed in:
//	  - shop [category] [sort]  — browse the catalog
//	  - cart                    — show the cart
//	  - add <id> [qty]          — add a product to the cart
//	  - remove <id>             — remove a product from the cart
//	  - qty <id> <n>            — change a line's quantity
//	  - clear                   — empty the cart
//	  - checkout                — place an order
//	  - whoami                  — show the current account
//	  - logout                  — sign out
//
//	Admin accounts additionally get:
//	  - addproduct              — create a product (interactive)
//	  - editproduct <id>        — update a product (interactive)
//	  - delproduct <id>         — delete a product
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ornata %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				printlnFn("Available commands: shop, cart, add, remove, qty, clear, checkout, whoami, logout, exit")
				if a.isAdmin() {
					printlnFn("Admin commands: addproduct, editproduct, delproduct")
				}
			} else {
				printlnFn("Available commands: shop, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "shop":
			_ = a.Shop(ctx, args)

		case "cart":
			_ = a.ShowCart(ctx)

		case "add":
			if len(args) == 0 {
				printlnFn("Usage: add <product-id> [quantity]")
				continue
			}
			_ = a.AddToCart(ctx, args)

		case "remove":
			if len(args) == 0 {
				printlnFn("Usage: remove <product-id>")
				continue
			}
			_ = a.RemoveFromCart(ctx, args)

		case "qty":
			if len(args) < 2 {
				printlnFn("Usage: qty <product-id> <quantity>")
				continue
			}
			_ = a.SetQuantity(ctx, args)

		case "clear":
			_ = a.ClearCart(ctx)

		case "checkout":
			_ = a.Checkout(ctx)

		case "addproduct":
			_ = a.AddProduct(ctx)

		case "editproduct":
			if len(args) == 0 {
				printlnFn("Usage: editproduct <product-id>")
				continue
			}
			_ = a.EditProduct(ctx, args)

		case "delproduct":
			if len(args) == 0 {
				printlnFn("Usage: delproduct <product-id>")
				continue
			}
			_ = a.DeleteProduct(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
