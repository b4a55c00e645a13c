package kv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ValentinKolb/fsbox/cmd/util"
	"github.com/ValentinKolb/fsbox/lib/logger"
	"github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	log = logger.GetLogger("cmd/kv")

	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for the file store",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfNumOps           = 1000
	perfSkip             = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. write,read)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the write-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "ops"
	perfTestCmd.Flags().Int(key, 1000, util.WrapString("How many operations to perform per test"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
	key = "prometheus"
	perfTestCmd.Flags().Bool(key, false, util.WrapString("Print the store's internal counters in Prometheus format after the run"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = viper.GetInt("keys")
	perfNumThreads = viper.GetInt("threads")
	perfNumOps = viper.GetInt("ops")
	if skip := viper.GetString("skip"); skip != "" {
		perfSkip = strings.Split(skip, ",")
	}

	return nil
}

// perfResult captures the timing statistics of a single benchmark
type perfResult struct {
	count     int64
	meanNs    float64
	p95Ns     float64
	p99Ns     float64
	opsPerSec float64
	skipped   bool
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for the file store")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Printf("Directory: %s\n", viper.GetString("dir"))
	fmt.Printf("Key codec: %s\n", viper.GetString("key-codec"))
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Printf("Keys: %d\n", perfKeySpread)
	fmt.Printf("Ops per test: %d\n", perfNumOps)
	fmt.Println()

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]perfResult)
	value := []byte("test")

	writeResult := runBench("write", func(getKey func(int) string) func(int) error {
		return func(i int) error {
			return localStore.Write(getKey(i), value)
		}
	})
	results["write"] = writeResult
	printResult("write", writeResult)

	largeValue := make([]byte, perfLargeValueSizeKB*1024)
	writeLargeResult := runBench("write-large", func(getKey func(int) string) func(int) error {
		return func(i int) error {
			return localStore.Write(getKey(i), largeValue)
		}
	})
	results["write-large"] = writeLargeResult
	printResult("write-large", writeLargeResult)

	readResult := runBench("read", func(getKey func(int) string) func(int) error {
		// prepopulate so every read hits an existing entry
		prepopulate(getKey, value)
		return func(i int) error {
			_, _, err := localStore.Read(getKey(i))
			return err
		}
	})
	results["read"] = readResult
	printResult("read", readResult)

	hasResult := runBench("has", func(getKey func(int) string) func(int) error {
		prepopulate(getKey, value)
		return func(i int) error {
			_, err := localStore.Has(getKey(i))
			return err
		}
	})
	results["has"] = hasResult
	printResult("has", hasResult)

	hasNotResult := runBench("has-not", func(func(int) string) func(int) error {
		return func(i int) error {
			key := fmt.Sprintf("%s/has-not-%d", perfKeyPrefix, i%perfKeySpread)
			_, err := localStore.Has(key)
			return err
		}
	})
	results["has-not"] = hasNotResult
	printResult("has-not", hasNotResult)

	deleteResult := runBench("delete", func(getKey func(int) string) func(int) error {
		prepopulate(getKey, value)
		return func(i int) error {
			return localStore.Delete(getKey(i))
		}
	})
	results["delete"] = deleteResult
	printResult("delete", deleteResult)

	mixedResult := runBench("mixed", func(getKey func(int) string) func(int) error {
		prepopulate(getKey, value)
		return func(i int) error {
			key := getKey(i)
			switch i % 4 {
			case 0: // write
				return localStore.Write(key, value)
			case 1: // read
				_, _, err := localStore.Read(key)
				return err
			case 2: // delete
				return localStore.Delete(key)
			default: // has
				_, err := localStore.Has(key)
				return err
			}
		}
	})
	results["mixed"] = mixedResult
	printResult("mixed", mixedResult)

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	// Dump the store's internal operation counters if requested
	if viper.GetBool("prometheus") {
		fmt.Println()
		metrics.WritePrometheus(os.Stdout, false)
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// runBench runs one benchmark: setup builds the per-op closure (and may
// prepopulate the store), then perfNumOps operations are spread over
// perfNumThreads goroutines with each op timed individually. The test keys
// are removed afterwards.
func runBench(name string, setup func(getKey func(int) string) func(int) error) perfResult {
	if shouldSkip(name) {
		return perfResult{skipped: true}
	}

	getKey, iter := getKeys(name)

	// cleanup
	defer iter(func(k string) {
		if err := localStore.Delete(k); err != nil {
			log.Errorf("(%s) - error deleting key: %v", name, err)
		}
	})

	op := setup(getKey)
	timer := gometrics.NewTimer()
	defer timer.Stop()

	var wg sync.WaitGroup
	start := time.Now()

	for t := 0; t < perfNumThreads; t++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < perfNumOps; i += perfNumThreads {
				opStart := time.Now()
				err := op(i)
				timer.UpdateSince(opStart)
				if err != nil {
					log.Errorf("(%s) - operation failed: %v", name, err)
				}
			}
		}(t)
	}

	wg.Wait()
	elapsed := time.Since(start)

	snap := timer.Snapshot()
	return perfResult{
		count:     snap.Count(),
		meanNs:    snap.Mean(),
		p95Ns:     snap.Percentile(0.95),
		p99Ns:     snap.Percentile(0.99),
		opsPerSec: float64(snap.Count()) / elapsed.Seconds(),
	}
}

// prepopulate writes a value for every test key
func prepopulate(getKey func(int) string, value []byte) {
	for i := 0; i < perfKeySpread; i++ {
		if err := localStore.Write(getKey(i), value); err != nil {
			log.Errorf("(prepopulate) - error writing key: %v", err)
		}
	}
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result perfResult) {
	if result.skipped || result.count == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	fmt.Printf("%-20s%.0fns/op (%s/op)\tp95 %s\tp99 %s\t%.0f ops/sec\n",
		test,
		result.meanNs,
		time.Duration(result.meanNs),
		time.Duration(result.p95Ns),
		time.Duration(result.p99Ns),
		result.opsPerSec,
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]perfResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Count", "MeanNsPerOp", "P95", "P99", "OpsPerSec", "Skipped",
		"Directory", "Prefix", "KeyCodec", "SafetyMarginMiB",
		"Threads", "LargeValueSizeKB", "Keys Count", "Ops Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		row := []string{
			test,
			strconv.FormatInt(result.count, 10),
			fmt.Sprintf("%.0f", result.meanNs),
			time.Duration(result.p95Ns).String(),
			time.Duration(result.p99Ns).String(),
			fmt.Sprintf("%.0f", result.opsPerSec),
			strconv.FormatBool(result.skipped),
			viper.GetString("dir"),
			viper.GetString("prefix"),
			viper.GetString("key-codec"),
			strconv.Itoa(viper.GetInt("safety-margin")),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
			strconv.Itoa(perfNumOps),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
