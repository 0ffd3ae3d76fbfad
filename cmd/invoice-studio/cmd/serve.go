package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server bound to one editing session.

The API provides endpoints for:
  - GET    /api/v1/invoice              - Current document and totals
  - PATCH  /api/v1/invoice              - Edit a top-level field
  - PATCH  /api/v1/invoice/issuer       - Edit an issuer field
  - PATCH  /api/v1/invoice/client       - Edit a bill-to field
  - GET    /api/v1/invoice/totals       - Derived totals, raw and formatted
  - POST   /api/v1/invoice/items        - Append a line item
  - PUT    /api/v1/invoice/items/:index - Replace a line item
  - DELETE /api/v1/invoice/items/:index - Remove a line item
  - POST   /api/v1/export               - Export a posted preview capture as PDF
  - POST   /api/v1/upload               - Simulated remote upload
  - GET    /api/v1/status               - Export/upload busy flags
  - GET    /preview                     - Rendered HTML preview
  - GET    /health                      - Health check

Examples:
  # Start server on default port with the service template
  invoice-studio serve

  # Start the commission template on a custom port
  invoice-studio serve --address :9090 --template commission

  # Start in debug mode
  invoice-studio serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      serverAddr,
		Template:     templateName,
		OutputDir:    outputDir,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	srv, err := server.NewServer(config)
	if err != nil {
		return err
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s (template: %s)\n", serverAddr, templateName)
	return srv.Run()
}
