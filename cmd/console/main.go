package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"loan-ledger/internal/adapter/restclient"
	"loan-ledger/internal/config"
	"loan-ledger/internal/console"
	"loan-ledger/internal/ledger"
)

func main() {
	cfg := config.Load()
	if err := cfg.ValidateClient(); err != nil {
		log.Fatalf("config: %v", err)
	}

	session := ledger.NewSession()
	client := restclient.New(cfg.LedgerAPIURL, cfg.LedgerTimeout, session)
	sh := console.New(os.Stdin, os.Stdout, session, client, client, cfg.LedgerTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
