package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/triviaquiz/trivia-api/cli"
	"github.com/triviaquiz/trivia-api/client"
)

func main() {
	defaultURL := os.Getenv("TRIVIA_API_URL")
	if defaultURL == "" {
		defaultURL = "http://127.0.0.1:8080"
	}

	baseURL := flag.String("url", defaultURL, "trivia API base URL")
	rounds := flag.Int("rounds", cli.DefaultRounds, "maximum number of questions")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	c := client.New(*baseURL, &http.Client{Timeout: 10 * time.Second})
	err := cli.Run(ctx, c, os.Stdin, os.Stdout, *rounds)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
