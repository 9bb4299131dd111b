package main

import (
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/dverenev/priceadmin/internal/devserver"
	"github.com/dverenev/priceadmin/internal/logging"
)

func main() {

	addr := flag.String("addr", ":8080", "listen address")
	secret := flag.String("secret", "dev-only-secret", "token signing secret")
	flag.Parse()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	srv := devserver.New(devserver.Options{
		Secret: []byte(*secret),
		Logger: logger,
	})

	log.Printf("dev API listening on %s (issued codes appear in this log)", *addr)
	if err := http.ListenAndServe(*addr, http.StripPrefix("/api", srv.Handler())); err != nil {
		log.Fatalf("%v", err)
	}

}
