package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
	grpcsvc "github.com/vladislavdragonenkov/catalog/internal/service/grpc"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
	"github.com/vladislavdragonenkov/catalog/internal/transport/httpapi"
	catalogv1 "github.com/vladislavdragonenkov/catalog/proto/catalog/v1"
)

// newInProcessTarget поднимает REST и gRPC поверх одного in-memory хранилища.
func newInProcessTarget(t *testing.T) (catalogAPI, itemClient) {
	t.Helper()

	logger := log.WithField("test", "loadtest")
	store := memory.NewStore()
	engine := association.NewEngine(store, association.WithLogger(logger))
	guard := idempotency.NewGuard(memory.NewIdempotencyRepository(), time.Hour, logger)

	api := httptest.NewServer(httpapi.NewHandler(catalog.NewService(store, logger), engine, guard, logger).Routes(5 * time.Second))
	t.Cleanup(api.Close)

	listener := bufconn.Listen(1024 * 1024)
	server := grpc.NewServer()
	catalogv1.RegisterOrderItemServiceServer(server, grpcsvc.NewOrderItemService(engine, guard, logger))
	go func() { _ = server.Serve(listener) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
		server.Stop()
	})

	return newHTTPCatalog(api.URL, api.Client()), catalogv1.NewOrderItemServiceClient(conn)
}

func testConfig() config {
	cfg, err := parseConfig(nil)
	if err != nil {
		panic(err)
	}
	return cfg
}

func TestRunner_ConcurrentCreatesNeverOversell(t *testing.T) {
	api, client := newInProcessTarget(t)

	cfg := testConfig()
	cfg.orders = 30
	cfg.stock = 7
	cfg.concurrency = 8

	r := &runner{cfg: cfg, api: api, clients: []itemClient{client}, runID: "oversell", col: newCollector()}
	result, err := r.run(context.Background())
	require.NoError(t, err)

	require.True(t, result.healthy(), "report: %+v", result)
	require.Equal(t, int64(30), result.Scenarios)
	require.Equal(t, int64(7), result.Consistency.Reserved)
	require.Equal(t, int64(23), result.Consistency.SoldOut)
	require.Zero(t, result.Consistency.FinalQuantity)

	create := result.Methods["CreateOrderItem"]
	require.Equal(t, int64(30), create.Calls)
	require.Equal(t, int64(7), create.Codes[codes.OK.String()])
	require.Equal(t, int64(23), create.Codes[codes.FailedPrecondition.String()])
	require.Equal(t, int64(7), result.Methods["CreateOrderItem/replay"].Codes[codes.OK.String()])
}

func TestRunner_StockCoversAllOrders(t *testing.T) {
	api, client := newInProcessTarget(t)

	cfg := testConfig()
	cfg.orders = 10
	cfg.stock = 25
	cfg.replay = false

	r := &runner{cfg: cfg, api: api, clients: []itemClient{client}, runID: "plenty", col: newCollector()}
	result, err := r.run(context.Background())
	require.NoError(t, err)

	require.True(t, result.healthy())
	require.Equal(t, int64(15), result.Consistency.FinalQuantity)
	require.NotContains(t, result.Methods, "CreateOrderItem/replay")
}

func TestCheckStock_DetectsDrift(t *testing.T) {
	r := &runner{cfg: config{stock: 5}}
	r.reserved.Store(3)

	require.True(t, r.checkStock(2).OK)
	require.False(t, r.checkStock(1).OK)

	r.reserved.Store(6)
	require.False(t, r.checkStock(-1).OK)
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]string{"-orders=5", "-stock=0", "-price=0", "-replay=false"})
	require.NoError(t, err)
	require.Equal(t, 5, cfg.orders)
	require.Zero(t, cfg.stock)
	require.False(t, cfg.replay)

	for _, args := range [][]string{
		{"-orders=0"},
		{"-stock=-1"},
		{"-concurrency=0"},
		{"-connections=0"},
		{"-timeout=0s"},
		{"-price=abc"},
		{"-price=-1"},
		{"-bogus"},
	} {
		_, err := parseConfig(args)
		require.Error(t, err, "args: %v", args)
	}
}

func TestBuildLatencySummary(t *testing.T) {
	require.Equal(t, latencySummary{}, buildLatencySummary(nil))

	summary := buildLatencySummary([]float64{4, 1, 3, 2})
	require.Equal(t, 1.0, summary.Min)
	require.Equal(t, 4.0, summary.Max)
	require.Equal(t, 2.5, summary.Avg)
	require.InDelta(t, 2.5, summary.P50, 1e-9)
	require.Equal(t, 7.0, percentile([]float64{7}, 99))
}

func TestReportOutput(t *testing.T) {
	col := newCollector()
	col.record("CreateOrderItem", 2*time.Millisecond, codes.OK)
	col.record("CreateOrderItem", 3*time.Millisecond, codes.FailedPrecondition)

	result := report{
		Scenarios:   2,
		Methods:     col.methodReports(),
		Consistency: consistency{InitialStock: 1, Reserved: 1, SoldOut: 1, OK: true},
	}

	var out bytes.Buffer
	printReport(&out, result)
	require.Contains(t, out.String(), "CreateOrderItem: calls=2 [FailedPrecondition=1 OK=1]")
	require.Contains(t, out.String(), "ok=true")

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, writeJSONReport(path, result))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded report
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, int64(2), decoded.Methods["CreateOrderItem"].Calls)

	require.Error(t, writeJSONReport("../outside.json", result))
	require.Error(t, writeJSONReport(".", result))
}
