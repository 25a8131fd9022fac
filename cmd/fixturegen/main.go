// ABOUTME: Entry point for the fixturegen Insurance Sales Tool test-data generator.
// ABOUTME: Wires generator, workbook exporter, run history store and download server into CLI commands.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/2389/fixturegen/internal/auth"
	"github.com/2389/fixturegen/internal/download"
	"github.com/2389/fixturegen/internal/logging"
	"github.com/2389/fixturegen/internal/scenario"
	"github.com/2389/fixturegen/internal/seed"
	"github.com/2389/fixturegen/internal/store"
	"github.com/2389/fixturegen/internal/workbook"
)

var (
	outDir     string
	seedValue  int64
	aiNames    bool
	recordDB   string
	historyDB  string
	port       string
	runLimit   int
	pathFilter string
	authToken  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fixturegen",
		Short: "Generate spreadsheet test data for the Insurance Sales Tool",
		Long: `fixturegen writes sample .xlsx workbooks for exercising the Insurance Sales Tool.

Each workbook carries the sheets Clients, Products, Policies, SalesReps and
CommissionRules. Five scenarios are produced:
  • test_data_valid.xlsx           50 clients
  • test_data_edge_cases.xlsx      30 clients with edge cases
  • test_data_large.xlsx           1000 clients for performance testing
  • test_data_missing_sheets.xlsx  invalid - missing sheets
  • test_data_empty.xlsx           invalid - empty sheets

Running fixturegen without a command is the same as 'fixturegen generate'.

Quick Start:
  fixturegen                   # Write all five workbooks to the current directory
  fixturegen generate valid    # Write only the valid workbook
  fixturegen inspect test_data_valid.xlsx
  fixturegen serve             # Serve fresh workbooks over HTTP`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
	addGenerateFlags(rootCmd)

	generateCmd := &cobra.Command{
		Use:   "generate [scenario...]",
		Short: "Write scenario workbooks to disk",
		Long: `Write the scenario workbooks into the output directory, in fixed order.

Scenarios:
  valid, edge_cases, large, missing_sheets, empty

With no arguments every scenario is written. Generation stops at the first
failure; workbooks already written are kept.

Environment Variables:
  FIXTUREGEN_OUT_DIR    Output directory (default: current directory)
  FIXTUREGEN_DB_PATH    Record runs in this SQLite database
  OPENAI_API_KEY        Enables --ai-names`,
		RunE: runGenerate,
	}
	addGenerateFlags(generateCmd)

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the scenario workbooks and write them again",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}
	addGenerateFlags(resetCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the sheets, columns and row counts of a workbook",
		Long: `Read a workbook back and print each sheet with its columns and data-row count.

Exits with an error when any of the sheets the Insurance Sales Tool requires is
missing, the same check the tool runs on upload.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generation runs",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	historyCmd.Flags().StringVarP(&historyDB, "db", "d", "", "Database path (default: FIXTUREGEN_DB_PATH or XDG data dir)")
	historyCmd.Flags().IntVarP(&runLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().StringVar(&pathFilter, "path", "", "Only show runs whose output path contains this text")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve freshly generated workbooks over HTTP",
		Long: `Start an HTTP server that generates scenario workbooks on request.

Endpoints:
  GET /healthz                  Health check
  GET /scenarios                List scenarios
  GET /scenarios/{name}         Download a fresh workbook (?seed=N for reproducible data)
  GET /runs                     Recorded generation runs
  GET /runs/{id}                One recorded run
  GET /downloads                Recent downloads, newest first
  GET /downloads/stats          Download counts

With --token (or FIXTUREGEN_TOKEN) every endpoint except /healthz requires
"Authorization: Bearer <token>".

Environment Variables:
  FIXTUREGEN_PORT     Server port (default: 9100)
  FIXTUREGEN_TOKEN    Shared bearer token (default: none)`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", getEnv("FIXTUREGEN_PORT", "9100"), "Port to listen on")
	serveCmd.Flags().StringVarP(&historyDB, "db", "d", "", "Database path (default: FIXTUREGEN_DB_PATH or XDG data dir)")
	serveCmd.Flags().BoolVar(&aiNames, "ai-names", false, "Draw client names from an OpenAI-generated pool")
	serveCmd.Flags().StringVar(&authToken, "token", getEnv("FIXTUREGEN_TOKEN", ""), "Require this bearer token")

	rootCmd.AddCommand(generateCmd, resetCmd, inspectCmd, historyCmd, serveCmd)
	return rootCmd
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outDir, "out", "o", getEnv("FIXTUREGEN_OUT_DIR", "."), "Output directory")
	cmd.Flags().Int64Var(&seedValue, "seed", 0, "Seed the random source for reproducible output")
	cmd.Flags().BoolVar(&aiNames, "ai-names", false, "Draw client names from an OpenAI-generated pool")
	cmd.Flags().StringVarP(&recordDB, "db", "d", getEnv("FIXTUREGEN_DB_PATH", ""), "Record runs in this database (empty disables)")
}

// validateAndCleanDBPath validates and cleans a database path.
// Handles Unix/Linux, macOS, and Windows paths (including UNC and drive letters).
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))

	// Reject empty and root-like paths
	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	// Windows: reject bare drive letters (e.g., "C:", "D:")
	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	if err := checkPathPatterns(cleanPath, "database path", dbBadPatterns); err != nil {
		return "", err
	}
	return cleanPath, nil
}

// validateAndCleanOutDir validates and cleans the output directory.
// An empty value means the current directory.
func validateAndCleanOutDir(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ".", nil
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "/" {
		return "", fmt.Errorf("output directory cannot be '/'")
	}

	if err := checkPathPatterns(cleanPath, "output directory", outDirBadPatterns); err != nil {
		return "", err
	}
	return cleanPath, nil
}

// Databases must stay out of source control and secret stores; output
// directories only out of version-control metadata.
var (
	dbBadPatterns     = []string{".git", ".svn", "node_modules", ".env", "credentials", "secret"}
	outDirBadPatterns = []string{".git", ".svn"}
)

func checkPathPatterns(cleanPath, what string, badPatterns []string) error {
	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("%s cannot contain '..'", what)
	}

	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range badPatterns {
		if strings.Contains(lowerPath, pattern) {
			return fmt.Errorf("%s cannot contain '%s' directory", what, pattern)
		}
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir, err := validateAndCleanOutDir(outDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var seedPtr *int64
	if cmd.Flags().Changed("seed") {
		seedPtr = &seedValue
	}

	gen := seed.NewGenerator(seed.Options{
		Seed:  seedPtr,
		Names: namePool(cmd.Context()),
	})

	if len(args) > 0 {
		log.Printf("Generating test data for: %s", strings.Join(args, ", "))
	} else {
		log.Println("Generating test data files...")
	}

	results, runErr := scenario.NewRunner(gen, dir).Run(cmd.Context(), args...)

	// Record whatever was written, even when the run stopped early
	if recordDB != "" && len(results) > 0 {
		if err := recordRuns(recordDB, results, seedPtr); err != nil {
			log.Printf("Failed to record runs: %v", err)
		}
	}

	if runErr != nil {
		return runErr
	}

	log.Println("\nAll test data files generated successfully!")
	log.Println("Generated files:")
	for _, r := range results {
		sc, _ := scenario.Lookup(r.Scenario)
		log.Printf("  • %s (%s)", filepath.Base(r.Path), sc.Description)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	dir, err := validateAndCleanOutDir(outDir)
	if err != nil {
		return err
	}

	// Remove existing workbooks - ignore files that don't exist
	for _, sc := range scenario.All() {
		path := filepath.Join(dir, sc.File)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	return runGenerate(cmd, nil) // Reset always writes every scenario
}

func runInspect(cmd *cobra.Command, args []string) error {
	summary, err := workbook.Inspect(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", args[0])
	for _, sheet := range summary.Sheets {
		fmt.Fprintf(out, "  %-16s %5d rows  %s\n", sheet.Name, sheet.Rows, strings.Join(sheet.Columns, ", "))
	}

	if missing := summary.MissingSheets(); len(missing) > 0 {
		return fmt.Errorf("missing required sheets: %s", strings.Join(missing, ", "))
	}
	return nil
}

// historyDBPath resolves --db for history and serve, falling back to the
// default location only when the flag is unset.
func historyDBPath() (string, error) {
	if strings.TrimSpace(historyDB) == "" {
		return validateAndCleanDBPath(getDefaultDBPath())
	}
	return validateAndCleanDBPath(historyDB)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := historyDBPath()
	if err != nil {
		return err
	}

	s, err := store.New(path)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(store.RunQuery{Limit: runLimit, PathContains: pathFilter})
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No generation runs recorded")
		return nil
	}

	for _, run := range runs {
		seedText := "-"
		if run.Seed != nil {
			seedText = fmt.Sprint(*run.Seed)
		}
		fmt.Fprintf(out, "%s  %-15s %6d clients %6d policies  seed=%s  %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04:05"), run.Scenario,
			run.Sheets[workbook.SheetClients], run.Sheets[workbook.SheetPolicies],
			seedText, run.Path)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	path, err := historyDBPath()
	if err != nil {
		return err
	}

	handler, s, err := newServer(path, namePool(cmd.Context()), authToken)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := &http.Server{Addr: ":" + port, Handler: handler}
	go func() {
		<-cmd.Context().Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("fixturegen server listening on %s", srv.Addr)
	log.Printf("Database: %s", path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newServer builds the router. The caller closes the returned store.
func newServer(dbPath string, names seed.NamePool, token string) (http.Handler, *store.Store, error) {
	s, err := store.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s))
	r.Use(auth.Middleware(token, "/healthz"))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	download.NewHandlers(s, names).RegisterRoutes(r)

	return r, s, nil
}

// namePool returns the client name pool selected by --ai-names.
func namePool(ctx context.Context) seed.NamePool {
	if !aiNames {
		return seed.StaticNames()
	}
	return seed.NewNameSource().Pool(ctx, 40)
}

func recordRuns(dbPath string, results []scenario.Result, seedPtr *int64) error {
	path, err := validateAndCleanDBPath(dbPath)
	if err != nil {
		return err
	}

	s, err := store.New(path)
	if err != nil {
		return err
	}
	defer s.Close()

	batchID := store.NewBatchID()
	for _, r := range results {
		if err := s.RecordRun(&store.Run{
			BatchID:  batchID,
			Scenario: r.Scenario,
			Path:     r.Path,
			Seed:     seedPtr,
			Sheets:   r.Rows,
		}); err != nil {
			return err
		}
	}
	log.Printf("Recorded %d runs in %s", len(results), path)
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getDefaultDBPath returns the default history database path following the XDG Base Directory layout
// Priority: FIXTUREGEN_DB_PATH env var > ./fixturegen.db > XDG_DATA_HOME/fixturegen/fixturegen.db
func getDefaultDBPath() string {
	if envPath := strings.TrimSpace(os.Getenv("FIXTUREGEN_DB_PATH")); envPath != "" {
		return filepath.Clean(envPath)
	}

	cwdPath := "./fixturegen.db"
	if _, err := os.Stat(cwdPath); err == nil {
		return cwdPath
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" || homeDir == "/" {
			return cwdPath
		}

		// Windows: %LOCALAPPDATA% or ~/AppData/Local
		// Unix/Linux/macOS: ~/.local/share
		if runtime.GOOS == "windows" {
			dataHome = os.Getenv("LOCALAPPDATA")
			if dataHome == "" {
				dataHome = filepath.Join(homeDir, "AppData", "Local")
			}
		} else {
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(dataHome, "fixturegen")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Printf("Warning: Could not create data directory %s: %v, using %s", dataDir, err, cwdPath)
		return cwdPath
	}
	return filepath.Join(dataDir, "fixturegen.db")
}
