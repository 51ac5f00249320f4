// =============================================================================
// Lotto QR Generator - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a generator run:
//   - Input discovery (workbooks, CSV, text, and PDF files)
//   - Run directories holding the QR images and history of one run
//   - Artifact naming and writing
//   - Skipped-line logs and run summaries
//   - Input archival after successful processing
//
// OUTPUT LAYOUT:
//   output/
//   └── 20260209_120000_1211/          <- run directory (run_dir_format)
//       ├── games/                     <- one subdirectory per document
//       │   ├── lotto_qr_1211_1.png
//       │   ├── lotto_qr_1211_2.png
//       │   └── history.csv
//       ├── skipped_20260209_120000.txt
//       └── run_summary_20260209_120000.txt
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to input_archive after successful processing
//   - Failed files and files without games remain where they are
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SupportedExtensions lists the input file extensions picked up by
// DiscoverInputFiles. Content sniffing still decides how a file is parsed.
var SupportedExtensions = []string{".xlsx", ".csv", ".txt", ".pdf"}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the generator.
type FileManager struct {
	// InputDir is the directory scanned for documents.
	InputDir string

	// OutputDir is the directory run directories are created in.
	OutputDir string

	// InputArchiveDir is the directory for archived input files.
	InputArchiveDir string

	// UseTimestampSubdirs creates date-based subdirectories in the archive.
	// Example: input_archive/2026/02/09/games.xlsx
	UseTimestampSubdirs bool

	// ArchiveOnSuccess determines whether inputs are moved after processing.
	ArchiveOnSuccess bool

	// now returns the current time. Nil means time.Now.
	now func() time.Time
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir, inputArchiveDir string) *FileManager {
	return &FileManager{
		InputDir:            inputDir,
		OutputDir:           outputDir,
		InputArchiveDir:     inputArchiveDir,
		UseTimestampSubdirs: false,
		ArchiveOnSuccess:    true,
	}
}

func (fm *FileManager) clock() time.Time {
	if fm.now != nil {
		return fm.now()
	}
	return time.Now()
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir}
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.InputArchiveDir)
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// NewRunDir creates the output directory for one run.
//
// PARAMETERS:
//   - format: The directory name format.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {round}     - The draw round, or "auto" when computed per file
//   - round: The value for {round}.
//
// RETURNS:
//   - The path of the created directory.
//   - An error if the directory cannot be created.
//
// EXAMPLE:
//   format: "{timestamp}_{round}"
//   output: "output/20260209_120000_1211"
func (fm *FileManager) NewRunDir(format, round string) (string, error) {
	if format == "" {
		format = "{timestamp}_{uuid}"
	}

	name := ExpandName(format, map[string]string{"round": round}, fm.clock())
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("run directory format %q produced invalid name %q", format, name)
	}

	dir := filepath.Join(fm.OutputDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run directory: %w", err)
	}
	return dir, nil
}

// ExpandName replaces {uuid}, {timestamp}, {date}, and caller-supplied
// placeholders in format.
func ExpandName(format string, params map[string]string, now time.Time) string {
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the files in the input directory with a
// supported extension, sorted by name. Subdirectories are not scanned.
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			// Office lock files and hidden files.
			continue
		}
		if IsSupported(name) {
			result = append(result, filepath.Join(fm.InputDir, name))
		}
	}

	slices.Sort(result)
	return result, nil
}

// IsSupported reports whether a file name has a supported extension.
func IsSupported(name string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

// =============================================================================
// ARTIFACTS
// =============================================================================

// ArtifactName returns the image name for a block: lotto_qr_{round}_{index}.png.
func ArtifactName(round, index int) string {
	return fmt.Sprintf("lotto_qr_%d_%d.png", round, index)
}

// DocumentDir returns the directory for one document's artifacts inside a
// run directory, named after the document without its extension.
func DocumentDir(runDir, inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(runDir, stem)
}

// WriteArtifact writes data to dir/name, creating dir if needed.
//
// RETURNS:
//   - The path of the written file.
//   - An error if writing fails.
func WriteArtifact(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// PARAMETERS:
//   - filePath: The path to the file to archive.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	archivePath := fm.getArchivePath(fm.InputArchiveDir, filePath)

	archiveDir := filepath.Dir(archivePath)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if err := os.Rename(filePath, archivePath); err != nil {
		// If rename fails (e.g., cross-device), try copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// getArchivePath constructs the archive path for a file.
func (fm *FileManager) getArchivePath(archiveDir, filePath string) string {
	fileName := filepath.Base(filePath)

	if fm.UseTimestampSubdirs {
		now := fm.clock()
		subDir := filepath.Join(
			archiveDir,
			fmt.Sprintf("%d", now.Year()),
			fmt.Sprintf("%02d", now.Month()),
			fmt.Sprintf("%02d", now.Day()),
		)
		return filepath.Join(subDir, fileName)
	}

	return filepath.Join(archiveDir, fileName)
}

// =============================================================================
// SKIPPED LINE LOG
// =============================================================================

// SkippedEntry is one line or row that yielded no game.
type SkippedEntry struct {
	FileName string
	Line     int
	Rule     string
	Message  string
	Value    string
}

// WriteSkippedLog writes skipped lines to skipped_{timestamp}.txt in dir.
//
// RETURNS:
//   - The path to the log file, or "" when there is nothing to write.
//   - An error if writing fails.
func (fm *FileManager) WriteSkippedLog(entries []SkippedEntry, dir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	now := fm.clock()
	logPath := filepath.Join(dir, fmt.Sprintf("skipped_%s.txt", now.Format("20060102_150405")))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create skipped log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Lotto QR Generator - Skipped Lines\n"+
		"Generated: %s\n"+
		"Total Skipped: %d\n"+
		"================================================================================\n\n",
		now.Format("2006-01-02 15:04:05"), len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Skipped #%d\n"+
			"  File:    %s\n"+
			"  Line:    %d\n"+
			"  Rule:    %s\n"+
			"  Message: %s\n",
			i+1, entry.FileName, entry.Line, entry.Rule, entry.Message)
		if entry.Value != "" {
			fmt.Fprintf(writer, "  Value:   %s\n", entry.Value)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush skipped log: %w", err)
	}
	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains summary information about a run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	Grammar         string
	TotalFiles      int
	SuccessfulFiles int
	EmptyFiles      int
	FailedFiles     int
	TotalGames      int
	TotalBlocks     int
	SkippedLines    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo
}

// ProcessedFileInfo describes a document that produced codes.
type ProcessedFileInfo struct {
	InputFile   string
	OutputDir   string
	ArchivePath string
	Kind        string
	Round       int
	Games       int
	Blocks      int
	ProcessTime time.Duration
}

// FailedFileInfo describes a document that failed.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
	ErrorType    string
}

// WriteSummaryLog writes a run summary to run_summary_{timestamp}.txt in dir.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func (fm *FileManager) WriteSummaryLog(summary ProcessingSummary, dir string) (string, error) {
	summaryPath := filepath.Join(dir, fmt.Sprintf("run_summary_%s.txt", fm.clock().Format("20060102_150405")))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	if err := WriteSummary(file, summary); err != nil {
		return "", err
	}
	return summaryPath, nil
}

// WriteSummary renders a run summary to w.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(w)

	duration := summary.EndTime.Sub(summary.StartTime)
	fmt.Fprintf(writer, "Lotto QR Generator - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Grammar:        %s\n\n"+
		"Statistics:\n"+
		"  Total Files:    %d\n"+
		"  Successful:     %d\n"+
		"  Without Games:  %d\n"+
		"  Failed:         %d\n"+
		"  Games:          %d\n"+
		"  Codes:          %d\n"+
		"  Skipped Lines:  %d\n\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		duration.String(),
		summary.Grammar,
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.EmptyFiles,
		summary.FailedFiles,
		summary.TotalGames,
		summary.TotalBlocks,
		summary.SkippedLines)

	if len(summary.ProcessedFiles) > 0 {
		writer.WriteString("Successful Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s (%s)\n", pf.InputFile, pf.Kind)
			fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputDir)
			if pf.ArchivePath != "" {
				fmt.Fprintf(writer, "  Archived:     %s\n", pf.ArchivePath)
			}
			fmt.Fprintf(writer, "  Round:        %d\n", pf.Round)
			fmt.Fprintf(writer, "  Games:        %d\n", pf.Games)
			fmt.Fprintf(writer, "  Codes:        %d\n", pf.Blocks)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("Failed Files:\n")
		writer.WriteString("--------------------------------------------------------------------------------\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Type:  %s\n", ff.ErrorType)
			fmt.Fprintf(writer, "  Error: %s\n\n", ff.ErrorMessage)
		}
	}

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
