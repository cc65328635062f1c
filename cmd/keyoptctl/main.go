package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/go-strftime"

	"keyopt/internal/config"
	"keyopt/internal/geometry"
	"keyopt/internal/model"
	"keyopt/internal/rules"
	"keyopt/internal/stats"
	"keyopt/internal/storage"
	keyopt "keyopt/pkg/keyopt"
)

const defaultExportsDir = "exports"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "effort":
		return runEffort(args[1:])
	case "breakdown":
		return runBreakdown(args[1:])
	case "optimize":
		return runOptimize(ctx, args[1:])
	case "random-layout":
		return runRandomLayout(args[1:])
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "top":
		return runTop(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runEffort(args []string) error {
	fs := flag.NewFlagSet("effort", flag.ContinueOnError)
	layout := fs.String("layout", defaultAlphabet, "layout string, one character per key")
	alphabet := fs.String("alphabet", defaultAlphabet, "alphabet used to build a uniform frequency table")
	corpus := fs.String("corpus", "", "comma-separated corpus file paths")
	geoPreset := fs.String("geometry-preset", "ansi30", "geometry preset: ansi30|ortholinear30")
	if err := fs.Parse(args); err != nil {
		return err
	}

	geo, err := buildGeometry(*geoPreset)
	if err != nil {
		return err
	}
	samples, err := loadCorpus(*corpus)
	if err != nil {
		return err
	}

	effortValue, err := keyopt.LayoutEffort(geo, samples, uniformFrequency(*alphabet), parseLayout(*layout), model.DefaultWeights())
	if err != nil {
		return err
	}
	fmt.Printf("effort=%.6f\n", effortValue)
	return nil
}

func runBreakdown(args []string) error {
	fs := flag.NewFlagSet("breakdown", flag.ContinueOnError)
	layout := fs.String("layout", defaultAlphabet, "layout string, one character per key")
	alphabet := fs.String("alphabet", defaultAlphabet, "alphabet used to build a uniform frequency table")
	corpus := fs.String("corpus", "", "comma-separated corpus file paths")
	geoPreset := fs.String("geometry-preset", "ansi30", "geometry preset: ansi30|ortholinear30")
	jsonOut := fs.Bool("json", false, "emit breakdown as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	geo, err := buildGeometry(*geoPreset)
	if err != nil {
		return err
	}
	samples, err := loadCorpus(*corpus)
	if err != nil {
		return err
	}

	b, err := keyopt.EffortBreakdown(geo, samples, uniformFrequency(*alphabet), parseLayout(*layout))
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	}
	fmt.Print(stats.BreakdownTable(b))
	return nil
}

func runRandomLayout(args []string) error {
	fs := flag.NewFlagSet("random-layout", flag.ContinueOnError)
	alphabet := fs.String("alphabet", defaultAlphabet, "alphabet to permute")
	seed := fs.Int64("seed", 0, "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(*seed))
	out := keyopt.RandomLayout(rng, []rune(*alphabet))
	fmt.Println(out.String())
	return nil
}

func runOptimize(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON run configuration file")
	layout := fs.String("layout", defaultAlphabet, "initial layout string")
	alphabet := fs.String("alphabet", defaultAlphabet, "alphabet used to build a uniform frequency table")
	corpus := fs.String("corpus", "", "comma-separated corpus file paths")
	runID := fs.String("run-id", "", "run id to record under (generated if empty)")
	population := fs.Int("pop", 0, "population size override")
	generations := fs.Int("gens", 0, "generations override")
	seed := fs.Int64("seed", 0, "seed override")
	workers := fs.Int("workers", 0, "worker count override")
	noStore := fs.Bool("no-store", false, "run without persisting the result")
	storeKind := fs.String("store", "", "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "", "sqlite database path")
	geoPreset := fs.String("geometry-preset", "", "geometry preset override: ansi30|ortholinear30")
	rulesProfile := fs.String("rules-profile", "", "rule-penalty profile override")
	crossover := fs.String("crossover", "", "crossover operator name: order_crossover|pmx")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *population > 0 {
		cfg.Params.PopulationSize = *population
	}
	if *generations > 0 {
		cfg.Params.Generations = *generations
	}
	if *seed != 0 {
		cfg.Params.Seed = *seed
	}
	if *workers > 0 {
		cfg.Params.Workers = *workers
	}
	if *geoPreset != "" {
		cfg.GeometryPreset = *geoPreset
	}
	if *rulesProfile != "" {
		cfg.RulesProfile = *rulesProfile
	}
	if *storeKind != "" {
		cfg.StoreKind = *storeKind
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	geo, err := buildGeometry(cfg.GeometryPreset)
	if err != nil {
		return err
	}
	rulesCfg, err := rules.Profile(cfg.RulesProfile)
	if err != nil {
		return err
	}
	samples, err := loadCorpus(*corpus)
	if err != nil {
		return err
	}

	if stdoutIsTerminal() {
		fmt.Fprintf(os.Stderr, "running %s generations over a population of %s...\n",
			humanize.Comma(int64(cfg.Params.Generations)), humanize.Comma(int64(cfg.Params.PopulationSize)))
	}

	req := keyopt.OptimizeRequest{
		RunID:            *runID,
		InitialLayout:    parseLayout(*layout),
		Geometry:         geo,
		TextSamples:      samples,
		CharFreq:         uniformFrequency(*alphabet),
		Weights:          cfg.Weights,
		Params:           cfg.Params,
		Rules:            rulesCfg,
		CrossoverProfile: *crossover,
	}

	if *noStore {
		result, err := keyopt.OptimizeKeyboardLayout(ctx, nil, req)
		if err != nil {
			return err
		}
		printOptimizeResult(result)
		return nil
	}

	client, err := keyopt.New(keyopt.Options{StoreKind: cfg.StoreKind, DBPath: cfg.DBPath})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Init(ctx); err != nil {
		return err
	}

	result, err := client.OptimizeKeyboardLayout(ctx, req)
	if err != nil {
		return err
	}
	printOptimizeResult(result)
	return nil
}

func printOptimizeResult(result keyopt.OptimizeResult) {
	if result.RunID != "" {
		fmt.Printf("run_id=%s\n", result.RunID)
	}
	fmt.Printf("layout=%s\n", result.Layout.String())
	fmt.Printf("effort=%.6f\n", result.Effort)
	fmt.Printf("generations=%s population_size=%s\n", humanize.Comma(int64(result.Generations)), humanize.Comma(int64(result.PopulationSize)))
	if len(result.HistoryBest) > 0 {
		fmt.Printf("convergence=%s\n", stats.Sparkline(result.HistoryBest))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := keyopt.New(keyopt.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := keyopt.New(keyopt.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := keyopt.New(keyopt.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	if err := client.Init(ctx); err != nil {
		return err
	}

	runs, err := client.ListRuns(ctx)
	if err != nil {
		return err
	}
	if len(runs) > *limit {
		runs = runs[:*limit]
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	for _, r := range runs {
		fmt.Printf("run_id=%s created_at=%s pop=%d gens=%d best_effort=%.6f\n",
			r.RunID, formatTimestamp(r.CreatedAtUTC), r.Params.PopulationSize, r.Params.Generations, r.BestEffort)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	client, runID, err := runSubcommandWithRunID(ctx, "history", args)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	history, ok, err := client.GetHistory(ctx, runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no history for run %s", runID)
	}
	fmt.Print(stats.DiagnosticsTable(history))
	return nil
}

func runTop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("top", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show top layouts for the most recent run")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, resolvedRunID, err := resolveClientAndRunID(ctx, *storeKind, *dbPath, *runID, *latest)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	top, ok, err := client.GetTopLayouts(ctx, resolvedRunID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no top layouts for run %s", resolvedRunID)
	}
	fmt.Print(stats.TopLayoutsTable(top))
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run")
	outDir := fs.String("out", defaultExportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, resolvedRunID, err := resolveClientAndRunID(ctx, *storeKind, *dbPath, *runID, *latest)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	run, ok, err := client.GetRun(ctx, resolvedRunID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no run %s", resolvedRunID)
	}
	history, _, err := client.GetHistory(ctx, resolvedRunID)
	if err != nil {
		return err
	}
	top, _, err := client.GetTopLayouts(ctx, resolvedRunID)
	if err != nil {
		return err
	}

	path, err := stats.ExportRun(*outDir, stats.ExportBundle{Run: run, History: history, TopLayouts: top})
	if err != nil {
		return err
	}
	fmt.Printf("exported run_id=%s to=%s\n", resolvedRunID, path)
	return nil
}

func resolveClientAndRunID(ctx context.Context, storeKind, dbPath, runID string, latest bool) (*keyopt.Client, string, error) {
	if runID != "" && latest {
		return nil, "", errors.New("use either --run-id or --latest, not both")
	}
	if runID == "" && !latest {
		return nil, "", errors.New("requires --run-id or --latest")
	}

	client, err := keyopt.New(keyopt.Options{StoreKind: storeKind, DBPath: dbPath})
	if err != nil {
		return nil, "", err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, "", err
	}

	if latest {
		latestID, ok, err := client.LatestRunID(ctx)
		if err != nil {
			_ = client.Close()
			return nil, "", err
		}
		if !ok {
			_ = client.Close()
			return nil, "", errors.New("no runs available")
		}
		runID = latestID
	}
	return client, runID, nil
}

func runSubcommandWithRunID(ctx context.Context, name string, args []string) (*keyopt.Client, string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "keyopt.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}

	return resolveClientAndRunID(ctx, *storeKind, *dbPath, *runID, *latest)
}

func buildGeometry(preset string) (geometry.Index, error) {
	positions, err := geometry.Preset(preset)
	if err != nil {
		return geometry.Index{}, err
	}
	return geometry.Build(positions)
}

func formatTimestamp(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return strftime.Format("%Y-%m-%d %H:%M:%S", t)
}

func usageError(msg string) error {
	return fmt.Errorf("usage: %s", msg)
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
