package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/recyconnect/backend/internal/client/cli"
	"github.com/recyconnect/backend/internal/logger"
)

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "адрес сервера")
		stateDir  = flag.String("state", defaultStateDir(), "каталог локального состояния")
	)
	flag.Parse()

	logger.Init("warn")
	logger.SetTextFormatter()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(*serverURL, *stateDir)
	if err != nil {
		log.Fatalf("client: %v", err)
	}

	app.Run(ctx)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".recyconnect"
	}
	return filepath.Join(home, ".recyconnect")
}
