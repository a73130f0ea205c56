// Package main provides a performance benchmarking tool for the partnerscore CLI.
// It generates synthetic partner populations of several sizes, imports each into a
// fresh SQLite store and times the commands that re-score or read the whole dataset.
// Each command runs several times; the first successful run counts as cold and the
// rest are averaged as warm. Results are written to a CSV file.
//
// Prerequisites:
// - partnerscore binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated CSV files and databases (default: a temp dir)
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the timing of one command over one population size.
type BenchmarkResult struct {
	Partners int
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Sizes    []int
	Commands [][]string
}

// qualitative columns and the descriptors a generated partner may pick from.
var qualitativeLevels = map[string][]string{
	"Technical Capability": {
		"No technical staff", "Basic product knowledge", "Can deploy with vendor support",
		"Independent deployment capability", "Certified center of excellence",
	},
	"Market Coverage": {"Single city", "Regional", "National", "Multi-country", "Global"},
}

func main() {
	workDir := ""
	switch len(os.Args) {
	case 1:
		dir, err := os.MkdirTemp("", "partnerscore-bench-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = os.RemoveAll(dir) }()
		workDir = dir
	case 2:
		workDir = os.Args[1]
	default:
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 5 * time.Minute,
		Runs:    4,
		Sizes:   []int{100, 1000, 10000},
		Commands: [][]string{
			{"rescore"},
			{"scores", "--limit", "10000", "--output", "csv"},
			{"classify", "--output", "csv"},
			{"benchmark", "--dry-run", "--output", "csv"},
		},
	}

	if _, err := exec.LookPath("partnerscore"); err != nil {
		fmt.Printf("Prerequisites check failed: partnerscore binary not found in PATH\n")
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks imports each population into its own store and times every command.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per command\n",
		config.Sizes, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		fmt.Printf("Benchmarking %d partners\n", size)

		csvPath := filepath.Join(config.WorkDir, fmt.Sprintf("partners_%d.csv", size))
		if err := generatePartners(csvPath, size); err != nil {
			return nil, fmt.Errorf("failed to generate partners: %w", err)
		}
		env := []string{
			"PARTNERSCORE_BACKEND=sqlite",
			"PARTNERSCORE_DB_CONNECT=" + filepath.Join(config.WorkDir, fmt.Sprintf("partners_%d.db", size)),
			"PARTNERSCORE_COLOR=no",
		}

		// Import is timed once since it writes the store the other commands read.
		importTime, ok := timeCommand(config, env, "partner", "import", csvPath)
		if !ok {
			return nil, fmt.Errorf("import of %d partners failed", size)
		}
		results = append(results, BenchmarkResult{
			Partners: size,
			Command:  "import",
			ColdTime: fmt.Sprintf("%.3fs", importTime),
			WarmTime: "-",
		})

		for _, args := range config.Commands {
			results = append(results, runBenchmarkSuite(config, env, size, args))
		}
	}

	return results, nil
}

// runBenchmarkSuite runs one command several times and summarizes cold and warm timings.
func runBenchmarkSuite(config BenchmarkConfig, env []string, size int, args []string) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", args[0], config.Runs)

	var times []float64
	for range config.Runs {
		if elapsed, ok := timeCommand(config, env, args...); ok {
			times = append(times, elapsed)
		}
	}

	result := BenchmarkResult{Partners: size, Command: args[0], ColdTime: "TIMEOUT", WarmTime: "TIMEOUT"}
	if len(times) > 0 {
		result.ColdTime = fmt.Sprintf("%.3fs", times[0])
	}
	if len(times) > 1 {
		var sum float64
		for _, t := range times[1:] {
			sum += t
		}
		result.WarmTime = fmt.Sprintf("%.3fs", sum/float64(len(times)-1))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", result.ColdTime, result.WarmTime)
	return result
}

// timeCommand runs partnerscore once and reports the elapsed seconds on success.
func timeCommand(config BenchmarkConfig, env []string, args ...string) (float64, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "partnerscore", args...)
	cmd.Dir = config.WorkDir
	cmd.Env = append(os.Environ(), env...)

	start := time.Now()
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("  partnerscore %v failed: %v\n%s\n", args, err, output)
		return 0, false
	}
	return time.Since(start).Seconds(), true
}

// generatePartners writes a deterministic synthetic population to a CSV file.
func generatePartners(path string, size int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(42, uint64(size)))
	tiers := []string{"Bronze", "Silver", "Gold", "Platinum"}

	writer := csv.NewWriter(file)
	header := []string{
		"Partner Name", "Tier", "Annual Revenues", "YoY Revenue Growth", "Gross Margin",
		"Win Rate", "Pipeline Value", "Certified Staff", "CSAT", "Escalations",
		"Technical Capability", "Market Coverage",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := range size {
		record := []string{
			fmt.Sprintf("Partner %05d", i),
			tiers[rng.IntN(len(tiers))],
			"$" + strconv.Itoa(rng.IntN(2_000_000)),
			strconv.Itoa(rng.IntN(60)-10) + "%",
			strconv.Itoa(rng.IntN(60)) + "%",
			strconv.Itoa(rng.IntN(70)) + "%",
			"$" + strconv.Itoa(rng.IntN(3_000_000)),
			strconv.Itoa(rng.IntN(20)),
			strconv.Itoa(40 + rng.IntN(60)),
			strconv.Itoa(rng.IntN(15)),
			pick(rng, qualitativeLevels["Technical Capability"]),
			pick(rng, qualitativeLevels["Market Coverage"]),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/partnerscore_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"partners", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Partners), result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results grouped by command.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	var commands []string
	seen := make(map[string]bool)
	for _, r := range results {
		if !seen[r.Command] {
			seen[r.Command] = true
			commands = append(commands, r.Command)
		}
	}

	for _, command := range commands {
		fmt.Printf("%s:\n", command)
		for _, r := range results {
			if r.Command == command {
				fmt.Printf("  %6d partners: Cold: %s, Warm: %s\n", r.Partners, r.ColdTime, r.WarmTime)
			}
		}
	}
}
