// =============================================================================
// Lotto QR Generator - Process Command
// =============================================================================
//
// This file defines the 'process' command, which is the main command for
// turning documents of lotto numbers into QR codes. It orchestrates the
// entire pipeline.
//
// COMMAND USAGE:
//   lottoqr process [flags]
//
// FLAGS:
//   --dry-run     : Print the payloads without writing any file
//   --single      : Process only a single file (specify with --file)
//   --file        : Path to a specific file to process (used with --single)
//   --round       : Draw round to encode; computed from the schedule if empty
//   --grammar     : Payload grammar, url or slip
//   --strategy    : Repeated numbers on a line: dedupe or keep
//   --kind        : Force the document kind instead of sniffing
//
// PROCESSING PIPELINE:
//   1. Load configuration, labels, and logging
//   2. Discover documents in the input directory
//   3. For each document (concurrently, up to max_concurrency):
//      a. Extract games
//      b. Resolve the draw round
//      c. Split into blocks and encode payloads
//      d. Render one QR image per block
//      e. Write the history CSV
//      f. Archive the document
//   4. Print results in input order
//   5. Write the skipped-line log and the run summary
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/lotto-qr-generator/internal/config"
	"github.com/ginjaninja78/lotto-qr-generator/internal/extract"
	"github.com/ginjaninja78/lotto-qr-generator/internal/history"
	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/pipeline"
	"github.com/ginjaninja78/lotto-qr-generator/internal/render"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
	"github.com/ginjaninja78/lotto-qr-generator/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun prints payloads without writing output files.
var dryRun bool

// singleFile indicates whether to process only a single file.
var singleFile bool

// filePath is the path to a specific file to process (used with --single).
var filePath string

// drawRound is the round given on the command line.
var drawRound string

// kindName forces the document kind.
var kindName string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate QR codes from documents of lotto numbers",
	Long: `The process command scans the input directory for workbooks, CSV exports,
text files, and PDFs, extracts every game of six numbers, and renders one QR
code per five games.

Documents are processed concurrently. An error in one document does not
affect the others.

On successful processing:
  - One PNG per block is written to <output>/<run>/<document>/
  - A history CSV listing every block is written next to the images
  - The document is moved to the input archive when archive_inputs is set

Lines that do not hold a full game are skipped and listed in the
skipped-line log of the run directory.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Print payloads without writing output files",
	)

	processCmd.Flags().BoolVar(
		&singleFile,
		"single",
		false,
		"Process only a single file (use with --file)",
	)

	processCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a specific file to process (used with --single)",
	)

	processCmd.Flags().StringVar(
		&drawRound,
		"round",
		"",
		"Draw round to encode (default: the round on sale now)",
	)

	processCmd.Flags().StringVar(
		&kindName,
		"kind",
		"",
		"Document kind: xlsx, csv, text, or pdf (default: detect)",
	)

	// Flags that override configuration keys are read through viper.
	processCmd.Flags().String("grammar", "", "Payload grammar: url or slip")
	processCmd.Flags().String("strategy", "", "Repeated numbers on a line: dedupe or keep")
	vcfg.BindPFlag("payload.grammar", processCmd.Flags().Lookup("grammar"))
	vcfg.BindPFlag("extraction.strategy", processCmd.Flags().Lookup("strategy"))
}

// =============================================================================
// PROCESSOR
// =============================================================================

// processor holds everything shared by the per-document goroutines.
type processor struct {
	app        *app
	pipe       *pipeline.Pipeline
	renderer   render.Renderer
	renderOpts render.Options
	fm         *utils.FileManager
	kind       extract.Kind
	round      string
	runDir     string
	dryRun     bool
}

// fileResult is the outcome of one document.
type fileResult struct {
	index     int
	path      string
	result    *pipeline.Result
	outputDir string
	archived  string
	artifacts []string
	history   string
	err       error
	errType   string
	elapsed   time.Duration
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess is the main function that orchestrates the pipeline.
func runProcess(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	a, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, labels := a.cfg, a.labels
	fmt.Fprintln(out, labels.Title)
	fmt.Fprintln(out, labels.HeaderInfo)

	kind, err := extract.ParseKind(kindName)
	if err != nil {
		return err
	}

	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	calc, err := cfg.RoundCalculator()
	if err != nil {
		return err
	}
	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	pipe, err := pipeline.New(opts, calc)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	fm.ArchiveOnSuccess = cfg.ArchiveInputs && !dryRun

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	switch {
	case singleFile || filePath != "":
		if filePath == "" {
			return fmt.Errorf("--single requires --file")
		}
		if !utils.FileExists(filePath) {
			return fmt.Errorf("file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	default:
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
		inputFiles, err = fm.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintf(out, "No supported files found in %s\n", cfg.InputDir)
		return nil
	}
	a.logger.Info("processing documents", "count", len(inputFiles), "grammar", pipe.Grammar(), "dry_run", dryRun)

	// =========================================================================
	// STEP 3: PREPARE THE RUN DIRECTORY
	// =========================================================================

	p := &processor{
		app:        a,
		pipe:       pipe,
		renderer:   render.NewQRRenderer(),
		renderOpts: renderOpts,
		fm:         fm,
		kind:       kind,
		round:      drawRound,
		dryRun:     dryRun,
	}

	if !dryRun {
		runRound := drawRound
		if _, err := lotto.ParseDrawRound(runRound); err != nil {
			runRound = calc.Current().String()
		}
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		p.runDir, err = fm.NewRunDir(cfg.RunDirFormat, runRound)
		if err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 4: PROCESS FILES CONCURRENTLY
	// =========================================================================
	// A semaphore bounds the number of documents in flight.

	var wg sync.WaitGroup
	results := make(chan fileResult, len(inputFiles))
	sem := make(chan struct{}, cfg.MaxConcurrency)

	for i, file := range inputFiles {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			r := p.processDocument(path)
			r.index = index
			results <- r
		}(i, file)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]fileResult, len(inputFiles))
	for r := range results {
		ordered[r.index] = r
	}

	// =========================================================================
	// STEP 5: PRINT RESULTS AND COLLECT THE SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		StartTime:  startTime,
		Grammar:    string(pipe.Grammar()),
		TotalFiles: len(inputFiles),
	}
	var skipped []utils.SkippedEntry

	for _, r := range ordered {
		name := filepath.Base(r.path)
		fmt.Fprintf(out, "\n== %s ==\n", name)

		if r.err != nil {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    name,
				ErrorMessage: r.err.Error(),
				ErrorType:    r.errType,
			})
			fmt.Fprintf(out, "  ✗ %s\n", describeError(r.err, labels))
			a.logger.Warn("document failed", "document", name, "type", r.errType, "error", r.err)
			continue
		}

		res := r.result
		for _, e := range res.Skipped.Errors {
			skipped = append(skipped, utils.SkippedEntry{
				FileName: name,
				Line:     e.Line,
				Rule:     e.Rule,
				Message:  e.Message,
				Value:    e.Value,
			})
		}
		summary.SkippedLines += res.Stats.Skipped

		if res.Empty() {
			summary.EmptyFiles++
			fmt.Fprintf(out, "  ✗ %s\n", labels.ErrNoNum)
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalGames += res.Stats.Games
		summary.TotalBlocks += res.Stats.Blocks
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   name,
			OutputDir:   r.outputDir,
			ArchivePath: r.archived,
			Kind:        string(res.Kind),
			Round:       int(res.Round),
			Games:       res.Stats.Games,
			Blocks:      res.Stats.Blocks,
			ProcessTime: r.elapsed,
		})

		printResult(out, r, labels)
	}

	// =========================================================================
	// STEP 6: WRITE RUN LOGS
	// =========================================================================

	summary.EndTime = time.Now()

	if !dryRun {
		if path, err := fm.WriteSkippedLog(skipped, p.runDir); err != nil {
			a.logger.Error("failed to write skipped log", "error", err)
		} else if path != "" {
			a.logger.Info("skipped lines logged", "path", path, "count", len(skipped))
		}

		if path, err := fm.WriteSummaryLog(summary, p.runDir); err != nil {
			a.logger.Error("failed to write summary", "error", err)
		} else {
			a.logger.Info("summary written", "path", path)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, labels.SummaryProcessed+"\n", summary.SuccessfulFiles, summary.TotalGames, summary.TotalBlocks)
	a.logger.Info("processing complete",
		"files", summary.TotalFiles,
		"successful", summary.SuccessfulFiles,
		"empty", summary.EmptyFiles,
		"failed", summary.FailedFiles,
		"elapsed", summary.EndTime.Sub(startTime))

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// PER-DOCUMENT PROCESSING
// =============================================================================

// processDocument runs the pipeline on one file and writes its artifacts.
func (p *processor) processDocument(path string) fileResult {
	start := time.Now()
	r := fileResult{path: path}

	fail := func(errType string, err error) fileResult {
		r.err = err
		r.errType = errType
		r.elapsed = time.Since(start)
		return r
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail("io", err)
	}

	res, err := p.pipe.Run(pipeline.Request{
		Document: extract.Document{Name: filepath.Base(path), Data: data, Kind: p.kind},
		Round:    p.round,
	})
	if err != nil {
		return fail(errorType(err), err)
	}
	r.result = res

	if res.Empty() || p.dryRun {
		r.elapsed = time.Since(start)
		return r
	}

	// =========================================================================
	// RENDER
	// =========================================================================

	r.outputDir = utils.DocumentDir(p.runDir, path)
	for _, b := range res.Blocks {
		png, err := p.renderer.Render(b.Payload, p.renderOpts)
		if err != nil {
			return fail("render", fmt.Errorf("block %d: %w", b.Index, err))
		}
		written, err := utils.WriteArtifact(r.outputDir, utils.ArtifactName(int(res.Round), b.Index), png)
		if err != nil {
			return fail("io", err)
		}
		r.artifacts = append(r.artifacts, written)
	}

	// =========================================================================
	// HISTORY
	// =========================================================================

	if p.app.cfg.History.Enabled {
		labels := p.app.labels
		records := make([]history.Record, len(res.Blocks))
		for i, b := range res.Blocks {
			records[i] = history.Record{Round: res.Round, Batch: b.Index, Block: b.Block, Payload: b.Payload}
		}

		opts := history.DefaultExportOptions()
		opts.Headers = history.Headers{
			Round:   labels.ColRound,
			Batch:   labels.ColBatch,
			Numbers: labels.ColNums,
			Payload: labels.ColURL,
		}

		r.history = filepath.Join(r.outputDir, fmt.Sprintf(labels.HistoryFileName, int(res.Round)))
		if err := history.WriteFile(r.history, records, opts); err != nil {
			return fail("io", err)
		}
	}

	// =========================================================================
	// ARCHIVE
	// =========================================================================

	archived, err := p.fm.ArchiveInputFile(path)
	if err != nil {
		p.app.logger.Warn("failed to archive document", "document", path, "error", err)
	} else {
		r.archived = archived
	}

	r.elapsed = time.Since(start)
	return r
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// printResult writes the games and payloads of a successful document.
func printResult(out io.Writer, r fileResult, labels config.Labels) {
	res := r.result

	fmt.Fprintf(out, "  ✓ "+labels.Success+"\n", res.Stats.Games)
	if res.RoundComputed {
		fmt.Fprintf(out, "  "+labels.RoundComputed+"\n", int(res.Round))
	}
	if res.Stats.Skipped > 0 {
		fmt.Fprintf(out, "  "+labels.Skipped+"\n", res.Stats.Skipped)
	}

	game := 0
	for i, b := range res.Blocks {
		fmt.Fprintf(out, "  "+labels.Batch+"\n", b.Index, len(b.Block))
		for _, g := range b.Block {
			game++
			if verbose {
				fmt.Fprintf(out, "    "+labels.Game+": %s\n", game, g)
			}
		}
		fmt.Fprintf(out, "    %s\n", b.Payload)
		if i < len(r.artifacts) {
			fmt.Fprintf(out, "    "+labels.Saved+"\n", r.artifacts[i])
		}
	}

	if r.history != "" {
		fmt.Fprintf(out, "  "+labels.Saved+"\n", r.history)
	}
}

// errorType classifies a pipeline error for the run summary.
func errorType(err error) string {
	var docErr *extract.DocumentError
	var valErr *validation.ValidationError
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return "format"
	case errors.As(err, &docErr):
		return "document"
	case errors.As(err, &valErr):
		return "round"
	default:
		return "io"
	}
}

// describeError returns the user-facing message for a pipeline error.
func describeError(err error, labels config.Labels) string {
	var docErr *extract.DocumentError
	switch errorType(err) {
	case "format":
		return labels.ErrType
	case "document":
		errors.As(err, &docErr)
		return fmt.Sprintf(labels.ErrDocument, docErr.Err)
	case "round":
		return labels.ErrDigit
	default:
		return err.Error()
	}
}
