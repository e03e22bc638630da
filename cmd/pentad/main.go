package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pentad/internal/commit"
	"github.com/san-kum/pentad/internal/config"
	"github.com/san-kum/pentad/internal/cube"
	"github.com/san-kum/pentad/internal/dynamo"
	"github.com/san-kum/pentad/internal/gate"
	"github.com/san-kum/pentad/internal/pipeline"
	"github.com/san-kum/pentad/internal/resonance"
	"github.com/san-kum/pentad/internal/route"
	"github.com/san-kum/pentad/internal/store"
	"github.com/san-kum/pentad/internal/viz"
)

var (
	dataDir    string
	configFile string
	stateStr   string
	mode       string
	weight     float64
	damping    float64
	forcing    float64
	dt         float64
	horizon    float64
	seed       string
	seedPath   string
	nodeID     string
	owner      string
	strength   float64
	maxDeltaPi float64
	minPhi     float64
	component  int
	workers    int
)

var (
	fireStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	holdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// main registers the pentad commands and executes the root command. It exits
// with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "pentad",
		Short: "deterministic 5-dimensional dynamics pipeline",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the pipeline once",
		RunE:  runPipeline,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot one state component of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", 0, "state component index (0-4)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "list committed knowledge records",
		RunE:  listLedger,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify [identifier]",
		Short: "recompute a committed record's digest",
		Args:  cobra.ExactArgs(1),
		RunE:  verifyRecord,
	}
	verifyCmd.Flags().StringVar(&seed, "seed", "42", "seed the record was committed under")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the pipeline across step sizes",
		RunE:  benchPipeline,
	}
	benchCmd.Flags().IntVar(&workers, "workers", 4, "parallel workers")
	benchCmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "integration horizon")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate with live visualization",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, ledgerCmd, verifyCmd, benchCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&stateStr, "state", "1,0,0,0,0", "initial state, comma separated")
	cmd.Flags().StringVar(&mode, "mode", string(dynamo.CouplingNone), "coupling mode (none|linear|nonlinear)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "uniform coupling weight")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping coefficient")
	cmd.Flags().Float64Var(&forcing, "forcing", 0, "constant forcing")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultStepSize, "step size")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "integration horizon")
	cmd.Flags().StringVar(&seed, "seed", "42", "commitment seed")
	cmd.Flags().StringVar(&seedPath, "seed-path", "m/0", "derivation path recorded with commits")
	cmd.Flags().StringVar(&nodeID, "id", "local", "external identifier")
	cmd.Flags().StringVar(&owner, "owner", "pentad", "record owner")
	cmd.Flags().Float64Var(&strength, "strength", config.DefaultStrength, "resonance field strength")
	cmd.Flags().Float64Var(&maxDeltaPi, "max-delta-pi", config.DefaultMaxDeltaPi, "transition magnitude bound")
	cmd.Flags().Float64Var(&minPhi, "min-phi", config.DefaultMinPhi, "alignment threshold")
}

// loadConfig merges the config file (when given) under the CLI flags. Flags
// the user set explicitly win over file values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("state") {
		st, err := parseState(stateStr)
		if err != nil {
			return nil, err
		}
		cfg.InitState = st
	}
	if cmd.Flags().Changed("mode") {
		cfg.Coupling.Mode = mode
	}
	if cmd.Flags().Changed("weight") {
		cfg.Coupling.Weight = weight
	}
	if cmd.Flags().Changed("damping") || cfg.Params == nil {
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[dynamo.ParamDamping] = damping
	}
	if cmd.Flags().Changed("forcing") {
		cfg.Params[dynamo.ParamForcing] = forcing
	}
	if cmd.Flags().Changed("dt") {
		cfg.StepSize = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Horizon = horizon
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("seed-path") {
		cfg.SeedPath = seedPath
	}
	if cmd.Flags().Changed("id") {
		cfg.ID = nodeID
	}
	if cmd.Flags().Changed("owner") {
		cfg.Owner = owner
	}
	if cmd.Flags().Changed("strength") {
		cfg.Strength = strength
	}
	if cmd.Flags().Changed("max-delta-pi") {
		cfg.Thresholds.MaxDeltaPi = maxDeltaPi
	}
	if cmd.Flags().Changed("min-phi") {
		cfg.Thresholds.MinPhi = minPhi
	}
	if cmd.Flags().Changed("data") {
		cfg.DataDir = dataDir
	} else if cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	return cfg, nil
}

func parseState(s string) ([5]float64, error) {
	var out [5]float64
	parts := strings.Split(s, ",")
	if len(parts) != dynamo.Dim {
		return out, fmt.Errorf("state needs %d components, got %d", dynamo.Dim, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("bad state component %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func newOrchestrator(cfg *config.Config, ledger *store.Ledger) *pipeline.Orchestrator {
	pcfg := pipeline.Config{
		Mode:       cfg.Mode(),
		Coupling:   cfg.CouplingMatrix(),
		MaxDeltaPi: cfg.Thresholds.MaxDeltaPi,
		MinPhi:     cfg.Thresholds.MinPhi,
		Owner:      cfg.Owner,
	}
	var ks pipeline.KnowledgeStore
	if ledger != nil {
		ks = ledger
	}
	return pipeline.New(pcfg, route.NewHashSelector(), resonance.Constant{R: cfg.Strength}, ks)
}

func pipelineInput(cfg *config.Config) pipeline.Input {
	return pipeline.Input{
		State:    dynamo.State(cfg.InitState),
		Params:   cfg.FieldParams(),
		StepSize: cfg.StepSize,
		Horizon:  cfg.Horizon,
		ID:       cfg.ID,
		Seed:     cfg.Seed,
		SeedPath: cfg.SeedPath,
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	archive := store.NewArchive(cfg.DataDir)
	if err := archive.Init(); err != nil {
		return err
	}

	ledger, err := store.OpenLedger(filepath.Join(cfg.DataDir, "ledger.db"))
	if err != nil {
		return err
	}
	defer ledger.Close()

	orch := newOrchestrator(cfg, ledger)

	start := time.Now()
	out, err := orch.Run(context.Background(), pipelineInput(cfg))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := archive.Save(store.RunMetadata{
		Seed:      cfg.Seed,
		StepSize:  cfg.StepSize,
		Horizon:   cfg.Horizon,
		Decision:  out.Decision,
		Signature: out.Signature,
		Digest:    out.Knowledge.Commit.Digest,
	}, out.Trajectory)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", out.Trajectory.Len())
	fmt.Printf("route: %s (perm %v)\n", out.Route.RouteID, out.Route.Permutation)
	fmt.Printf("signature: psi=%.6f rho=%.6f omega=%.6f\n",
		out.Signature.Psi, out.Signature.Rho, out.Signature.Omega)
	fmt.Printf("proof: delta_pi=%.6f phi=%.6f delta_v=%.6f\n",
		out.Proof.DeltaPi, out.Proof.Phi, out.Proof.DeltaV)

	if out.Decision == gate.Fire {
		fmt.Printf("gate: %s\n", fireStyle.Render(string(out.Decision)))
		fmt.Printf("committed: %s\n", out.Knowledge.Identifier)
		fmt.Printf("digest: %s\n", out.Knowledge.Commit.Digest)
	} else {
		fmt.Printf("gate: %s\n", holdStyle.Render(string(out.Decision)))
	}

	norms := make([]float64, out.Trajectory.Len())
	for i, s := range out.Trajectory.States {
		norms[i] = s.Norm()
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(norms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("state norm"),
	))

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	archive := store.NewArchive(dataDir)
	runs, err := archive.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tHORIZON\tDT\tDECISION\tRHO\tDIGEST")

	for _, run := range runs {
		digest := run.Digest
		if len(digest) > 12 {
			digest = digest[:12]
		}
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%.4f\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Horizon,
			run.StepSize,
			run.Decision,
			run.Signature.Rho,
			digest,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	archive := store.NewArchive(dataDir)
	meta, err := archive.Load(runID)
	if err != nil {
		return err
	}

	series, _, err := archive.LoadSeries(runID, component)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("decision: %s\n", meta.Decision)
	fmt.Printf("samples: %d\n\n", len(series))

	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x%d vs time", component)),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	archive := store.NewArchive(dataDir)
	meta, err := archive.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listLedger(cmd *cobra.Command, args []string) error {
	ledger, err := store.OpenLedger(filepath.Join(dataDir, "ledger.db"))
	if err != nil {
		return err
	}
	defer ledger.Close()

	entries, err := ledger.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("ledger is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTIFIER\tOWNER\tROUTE\tPHI\tDELTA_V\tCREATED")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%s\n",
			e.Identifier,
			e.Owner,
			e.RouteID,
			e.Phi,
			e.DeltaV,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

// verifyRecord recomputes the digest of a committed record. The committed
// state is recovered from the record's external projection, which round-trips
// exactly.
func verifyRecord(cmd *cobra.Command, args []string) error {
	ledger, err := store.OpenLedger(filepath.Join(dataDir, "ledger.db"))
	if err != nil {
		return err
	}
	defer ledger.Close()

	entry, err := ledger.Get(args[0])
	if err != nil {
		return err
	}

	var payload struct {
		External cube.Point `json:"external"`
	}
	if err := json.Unmarshal(entry.Payload, &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	rec := commit.Record{
		State:  payload.External.State(),
		Phi:    entry.Phi,
		Digest: entry.Digest,
	}

	if commit.Verify(rec, seed) {
		fmt.Printf("%s: digest verified\n", entry.Identifier)
		return nil
	}
	return fmt.Errorf("%s: digest mismatch", entry.Identifier)
}

func benchPipeline(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Horizon = horizon

	orch := newOrchestrator(cfg, nil)
	batch := pipeline.NewBatch(orch, workers)

	dts := []float64{0.001, 0.01, 0.1}
	inputs := make([]pipeline.Input, len(dts))
	for i, d := range dts {
		in := pipelineInput(cfg)
		in.StepSize = d
		inputs[i] = in
	}

	fmt.Printf("benchmarking pipeline (horizon=%.1fs, workers=%d)\n\n", horizon, workers)

	start := time.Now()
	outputs, errs := batch.Run(context.Background(), inputs)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSAMPLES\tDECISION\tRHO\tPHI")

	for i, out := range outputs {
		if errs[i] != nil {
			fmt.Fprintf(w, "%.4fs\terror: %v\n", dts[i], errs[i])
			continue
		}
		fmt.Fprintf(w, "%.4fs\t%d\t%s\t%.4f\t%.4f\n",
			dts[i], out.Trajectory.Len(), out.Decision, out.Signature.Rho, out.Proof.Phi)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ntotal: %v\n", elapsed)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	field, err := dynamo.NewVectorField(cfg.Mode(), cfg.CouplingMatrix(), cfg.FieldParams())
	if err != nil {
		return err
	}

	evaluator := resonance.NewEvaluator(cfg.Thresholds.MaxDeltaPi, cfg.Thresholds.MinPhi)
	return viz.Run(field, dynamo.State(cfg.InitState), cfg.StepSize, evaluator)
}
