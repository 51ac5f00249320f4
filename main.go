// =============================================================================
// Lotto QR Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Lotto QR Generator CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   lottoqr process       - Generate QR codes for every document in the input directory
//   lottoqr round         - Print the draw round on sale
//   lottoqr version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Extraction, batching, encoding, rendering, and config
//   - pkg/           : File management shared by the commands
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/lotto-qr-generator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
