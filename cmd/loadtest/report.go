package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc/codes"
)

type latencySummary struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

type methodReport struct {
	Calls     int64            `json:"calls"`
	Codes     map[string]int64 `json:"codes"`
	LatencyMs latencySummary   `json:"latency_ms"`
}

// consistency - сверка остатка товара после прогона.
type consistency struct {
	InitialStock  int64 `json:"initial_stock"`
	Reserved      int64 `json:"reserved"`
	SoldOut       int64 `json:"sold_out"`
	FinalQuantity int64 `json:"final_quantity"`
	Expected      int64 `json:"expected_quantity"`
	OK            bool  `json:"ok"`
}

type report struct {
	StartedAt       time.Time               `json:"started_at"`
	DurationSeconds float64                 `json:"duration_seconds"`
	Scenarios       int64                   `json:"scenarios"`
	Failed          int64                   `json:"failed"`
	ReplayMismatch  int64                   `json:"replay_mismatch"`
	RPS             float64                 `json:"rps"`
	Methods         map[string]methodReport `json:"methods"`
	Consistency     consistency             `json:"consistency"`
}

// healthy - прогон без неожиданных кодов, с корректными повторами и сошедшимся остатком.
func (r report) healthy() bool {
	return r.Failed == 0 && r.ReplayMismatch == 0 && r.Consistency.OK
}

type methodStats struct {
	codes     map[string]int64
	latencies []float64
}

type collector struct {
	mu      sync.Mutex
	methods map[string]*methodStats
}

func newCollector() *collector {
	return &collector{methods: make(map[string]*methodStats)}
}

func (c *collector) record(method string, latency time.Duration, code codes.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.methods[method]
	if !ok {
		stats = &methodStats{codes: make(map[string]int64)}
		c.methods[method] = stats
	}
	stats.codes[code.String()]++
	stats.latencies = append(stats.latencies, float64(latency.Microseconds())/1000.0)
}

func (c *collector) methodReports() map[string]methodReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	reports := make(map[string]methodReport, len(c.methods))
	for name, stats := range c.methods {
		var calls int64
		codesCopy := make(map[string]int64, len(stats.codes))
		for code, count := range stats.codes {
			codesCopy[code] = count
			calls += count
		}
		reports[name] = methodReport{
			Calls:     calls,
			Codes:     codesCopy,
			LatencyMs: buildLatencySummary(stats.latencies),
		}
	}
	return reports
}

func writeJSONReport(path string, result report) error {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == string(filepath.Separator) {
		return errors.New("output path must point to a file")
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("output path must be inside current directory: %s", path)
	}

	// #nosec G304 -- путь задаётся явно флагом -output.
	file, err := os.Create(cleanPath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printReport(w io.Writer, result report) {
	c := result.Consistency
	_, _ = fmt.Fprintln(w, "Order item load test summary")
	_, _ = fmt.Fprintf(w, "scenarios=%d failed=%d replay_mismatch=%d duration=%.2fs rps=%.2f\n",
		result.Scenarios, result.Failed, result.ReplayMismatch, result.DurationSeconds, result.RPS)
	_, _ = fmt.Fprintf(w, "stock: initial=%d reserved=%d sold_out=%d final=%d expected=%d ok=%t\n",
		c.InitialStock, c.Reserved, c.SoldOut, c.FinalQuantity, c.Expected, c.OK)

	names := make([]string, 0, len(result.Methods))
	for name := range result.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats := result.Methods[name]
		codeNames := make([]string, 0, len(stats.Codes))
		for code, count := range stats.Codes {
			codeNames = append(codeNames, fmt.Sprintf("%s=%d", code, count))
		}
		sort.Strings(codeNames)
		_, _ = fmt.Fprintf(w, "%s: calls=%d [%s] p50=%.2fms p95=%.2fms p99=%.2fms\n",
			name, stats.Calls, strings.Join(codeNames, " "),
			stats.LatencyMs.P50, stats.LatencyMs.P95, stats.LatencyMs.P99)
	}
}

func buildLatencySummary(values []float64) latencySummary {
	if len(values) == 0 {
		return latencySummary{}
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, value := range sorted {
		sum += value
	}

	return latencySummary{
		Min: sorted[0],
		Max: sorted[len(sorted)-1],
		Avg: sum / float64(len(sorted)),
		P50: percentile(sorted, 50),
		P95: percentile(sorted, 95),
		P99: percentile(sorted, 99),
	}
}

// percentile - линейная интерполяция по отсортированной выборке.
func percentile(sorted []float64, p float64) float64 {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	weight := rank - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*weight
}
