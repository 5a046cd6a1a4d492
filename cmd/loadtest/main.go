package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	catalogv1 "github.com/vladislavdragonenkov/catalog/proto/catalog/v1"
)

type config struct {
	grpcAddr    string
	httpAddr    string
	orders      int
	stock       int64
	price       string
	concurrency int
	connections int
	timeout     time.Duration
	replay      bool
	outputPath  string
}

func parseConfig(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.grpcAddr, "grpc-addr", "localhost:50051", "gRPC target address")
	fs.StringVar(&cfg.httpAddr, "http-addr", "http://localhost:8080", "REST API base URL for seeding")
	fs.IntVar(&cfg.orders, "orders", 200, "number of orders competing for the product")
	fs.Int64Var(&cfg.stock, "stock", 50, "initial product quantity")
	fs.StringVar(&cfg.price, "price", "9.99", "product price")
	fs.IntVar(&cfg.concurrency, "concurrency", 32, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 8, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.BoolVar(&cfg.replay, "replay", true, "repeat each successful create with the same idempotency key")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	switch {
	case cfg.orders <= 0:
		return config{}, errors.New("orders must be > 0")
	case cfg.stock < 0:
		return config{}, errors.New("stock must be >= 0")
	case cfg.concurrency <= 0:
		return config{}, errors.New("concurrency must be > 0")
	case cfg.connections <= 0:
		return config{}, errors.New("connections must be > 0")
	case cfg.timeout <= 0:
		return config{}, errors.New("timeout must be > 0")
	}
	price, err := decimal.NewFromString(cfg.price)
	if err != nil || price.IsNegative() {
		return config{}, fmt.Errorf("price must be a non-negative decimal, got %q", cfg.price)
	}

	return cfg, nil
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	clients := make([]itemClient, 0, cfg.connections)
	for i := 0; i < cfg.connections; i++ {
		conn, err := grpc.NewClient(cfg.grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", err)
			os.Exit(1)
		}
		conns = append(conns, conn)
		clients = append(clients, catalogv1.NewOrderItemServiceClient(conn))
	}
	defer func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
	}()

	r := &runner{
		cfg:     cfg,
		api:     newHTTPCatalog(cfg.httpAddr, &http.Client{Timeout: cfg.timeout}),
		clients: clients,
		runID:   fmt.Sprintf("%d-%d", time.Now().UnixNano(), os.Getpid()),
		col:     newCollector(),
	}

	result, err := r.run(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}

	printReport(os.Stdout, result)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if !result.healthy() {
		os.Exit(1)
	}
}
