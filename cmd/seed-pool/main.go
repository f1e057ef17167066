package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/creatorhub/matchengine/internal/synthetic"
	"github.com/creatorhub/matchengine/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumCreators = 1000
	defaultSeed        = 1
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 5 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		seed        = flag.Int64("seed", defaultSeed, "PRNG seed; same seed generates the same pool")
		numCreators = flag.Int("creators", defaultNumCreators, "Number of creator profiles to generate")
		brandID     = flag.String("brand", "brand-seed", "Brand id for the generated spec")
		limit       = flag.Int("limit", 0, "Result limit (0 uses the service default)")
		persist     = flag.Bool("persist", false, "Persist match records on the service")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Optional file to dump the generated rank request")
		verbose     = flag.Bool("verbose", false, "Log every ranked creator")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &synthetic.Config{
		BaseURL:     *baseURL,
		Seed:        *seed,
		NumCreators: *numCreators,
		BrandID:     *brandID,
		Limit:       *limit,
		Persist:     *persist,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	}

	if err := synthetic.Run(ctx, config); err != nil {
		os.Stderr.WriteString("synthetic run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
