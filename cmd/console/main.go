package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"wardsync/internal/config"
	"wardsync/internal/domain"
	"wardsync/internal/infrastructure/logger"
	"wardsync/internal/ordersync"
	"wardsync/internal/store"
)

// printListener renders the controller's acknowledgments on the terminal.
type printListener struct{}

func (printListener) OrdersLoaded(patient domain.Patient, orders []domain.Order) {
	fmt.Printf("\n%s - orders (%d)\n", patient.Name, len(orders))
	printOrders(orders)
	fmt.Print("> ")
}

func (printListener) OrderAppended(order domain.Order) {
	fmt.Printf("\norder saved: %s\n> ", order.Message)
}

func (printListener) OrderUpdated(order domain.Order) {
	fmt.Printf("\norder updated: %s\n> ", order.Message)
}

func printOrders(orders []domain.Order) {
	for i, o := range orders {
		marker := o.InternalID
		if !o.Persisted() {
			marker = "(unsaved)"
		}
		fmt.Printf("  %d. %s  [%s]\n", i+1, o.Message, marker)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	client := store.NewClient(cfg.Store.BaseURL, cfg.Store.RequestTimeout, zapLogger)
	audit := domain.AuditContext{Actor: cfg.Store.Actor}
	ctrl := ordersync.NewModule(client, printListener{}, audit, zapLogger)

	ctx := context.Background()

	patients := ctrl.LoadPatients(ctx)
	fmt.Println("Patients")
	for i, p := range patients {
		fmt.Printf("  %d. %s  (created by %s)\n", i+1, p.Name, p.CreatedByUser)
	}
	fmt.Println("\ncommands: select <n> | show | edit <n> <text> | add <text> | back | quit")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return

		case "select":
			idx, err := strconv.Atoi(strings.Join(fields[1:], ""))
			if err != nil || idx < 1 || idx > len(patients) {
				fmt.Println("usage: select <patient number>")
				break
			}
			ctrl.SelectPatient(ctx, patients[idx-1])

		case "show":
			if _, ok := ctrl.Selected(); !ok {
				fmt.Println("no patient selected")
				break
			}
			if ctrl.Loading() {
				fmt.Println("loading...")
				break
			}
			printOrders(ctrl.Orders())
			if draft := ctrl.Draft(); draft != "" {
				fmt.Printf("  draft: %s\n", draft)
			}

		case "edit":
			if len(fields) < 3 {
				fmt.Println("usage: edit <order number> <new text>")
				break
			}
			idx, err := strconv.Atoi(fields[1])
			orders := ctrl.Orders()
			if err != nil || idx < 1 || idx > len(orders) {
				fmt.Println("usage: edit <order number> <new text>")
				break
			}
			target := orders[idx-1]
			if !target.Persisted() {
				fmt.Println("that order is not saved yet")
				break
			}
			ctrl.SetOrderMessage(target.InternalID, strings.Join(fields[2:], " "))
			if ctrl.BlurOrder(target.InternalID) {
				confirmPending(ctx, ctrl, scanner)
			}

		case "add":
			ctrl.SetDraft(strings.TrimSpace(strings.TrimPrefix(line, "add")))
			if ctrl.SubmitDraft() {
				confirmPending(ctx, ctrl, scanner)
			}

		case "back":
			ctrl.ClearSelection()
			fmt.Println("selection cleared")

		default:
			fmt.Println("commands: select <n> | show | edit <n> <text> | add <text> | back | quit")
		}

		fmt.Print("> ")
	}
}

func confirmPending(ctx context.Context, ctrl interface {
	Confirm(ctx context.Context) bool
	Cancel()
}, scanner *bufio.Scanner) {
	fmt.Print("save order? [y/N] ")
	if !scanner.Scan() {
		ctrl.Cancel()
		return
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if answer == "y" || answer == "yes" {
		ctrl.Confirm(ctx)
		return
	}
	ctrl.Cancel()
}
