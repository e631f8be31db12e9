package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/xid"

	match "github.com/tradesim/matchbook"
	"github.com/tradesim/matchbook/server"
	"github.com/tradesim/matchbook/sim"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	match.SetLogger(log)

	producers := int(parseIntEnv("PRODUCERS", 1))
	interval := parseDurationEnv("ORDER_INTERVAL", 200*time.Millisecond)
	listenAddr := os.Getenv("LISTEN_ADDR") // empty disables the feed server
	csvPath := getEnv("LATENCY_CSV", "latencies.csv")

	runID := xid.New().String()
	log.Info("matchbook starting", "run_id", runID, "producers", producers, "order_interval", interval)

	book := match.NewOrderBook()
	queue := match.NewOrderQueue()
	engine := match.NewEngine(book, queue)
	engine.ReportEvery = 100

	go engine.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if listenAddr != "" {
		feed := server.NewFeed(book, 500*time.Millisecond, log)
		go feed.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/ws/book", feed.Handler())
		go func() {
			log.Info("feed listening", "addr", listenAddr)
			if err := http.ListenAndServe(listenAddr, mux); err != nil {
				log.Error("feed server stopped", "error", err)
			}
		}()
	}

	var ids atomic.Int64
	sims := make([]*sim.Simulator, 0, producers)
	for i := 0; i < producers; i++ {
		s := sim.New(queue, &ids, sim.Config{
			Interval:    interval,
			MarketRatio: 0.05,
			StopRatio:   0.02,
			Seed:        int64(i + 1),
		})
		sims = append(sims, s)
		go s.Run()
	}

	fmt.Println("--- matchbook simulation started, press ENTER to stop ---")
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')

	log.Info("shutting down", "run_id", runID)

	// Producers quiesce first so the consumer drains everything in flight.
	for _, s := range sims {
		s.Stop()
	}
	for _, s := range sims {
		s.Wait()
	}

	queue.Stop()
	<-engine.Done()

	stats := book.Stats()
	log.Info("final book",
		"bid_levels", stats.BidDepthCount,
		"bid_orders", stats.BidOrderCount,
		"ask_levels", stats.AskDepthCount,
		"ask_orders", stats.AskOrderCount,
		"pending_stops", stats.PendingStops,
		"imbalance", book.Imbalance(),
		"processed", engine.Latencies().Count(),
		"avg_latency_us", engine.Latencies().Average())

	if err := engine.Latencies().SaveCSV(csvPath); err != nil {
		log.Error("save latencies", "path", csvPath, "error", err)
		os.Exit(1)
	}
	log.Info("latencies saved", "path", csvPath, "rows", engine.Latencies().Count())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
