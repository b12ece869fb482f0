// Command refreshctl runs one dynamic-answer sweep and prints its report.
// It is meant for cron or manual use while the server's own scheduler is off.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mind-engage/civics-quiz/internal/app"
	"github.com/mind-engage/civics-quiz/internal/config"
	"github.com/mind-engage/civics-quiz/internal/refresh"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code: 0 on a clean sweep, 1 when the sweep
// was interrupted or a variant failed to persist, 2 on bad input or startup.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("refreshctl", flag.ContinueOnError)
	variant := fs.String("variant", "", "comma-separated test types to sweep (default: all)")
	force := fs.Bool("force", false, "refresh every mapped question regardless of age")
	timeout := fs.Duration("timeout", 30*time.Minute, "give up after this long")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Printf("startup failed: %v", err)
		return 2
	}
	defer a.Close()

	e := a.Engine()
	e.Force = *force
	if *variant != "" {
		e.Variants, err = pick(e.Variants, *variant)
		if err != nil {
			log.Printf("%v", err)
			return 2
		}
	}

	rep, err := e.Sweep(ctx)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(rep)
	if err != nil {
		log.Printf("sweep interrupted: %v", err)
		return 1
	}
	for _, v := range rep.Variants {
		if v.PersistErr != "" {
			return 1
		}
	}
	return 0
}

func pick(all []refresh.Variant, csv string) ([]refresh.Variant, error) {
	byName := make(map[string]refresh.Variant, len(all))
	known := make([]string, 0, len(all))
	for _, v := range all {
		byName[v.Config.TestType] = v
		known = append(known, v.Config.TestType)
	}
	var out []refresh.Variant
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		v, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown test type %q (known: %s)", name, strings.Join(known, ", "))
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no test type selected")
	}
	return out, nil
}
