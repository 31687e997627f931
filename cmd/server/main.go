// Command server runs the Syllabl HTTP API: word lookups for the game and
// the daily leaderboard.
//
// Usage:
//
//	server          # serve until SIGINT or SIGTERM
//	server -env     # list the environment variables it reads
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/syllabl-backend/internal/app"
	"github.com/heartmarshall/syllabl-backend/internal/config"
)

func main() {
	env := flag.Bool("env", false, "print configuration variables and exit")
	flag.Parse()

	if *env {
		usage, err := config.Usage()
		if err != nil {
			log.Fatalf("describe config: %v", err)
		}
		fmt.Println(usage)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
