package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/DRSN-tech/catalog-admin/internal/ui"
	"github.com/DRSN-tech/catalog-admin/pkg/gqlclient"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	endpoint  string
	productID int
	timeout   time.Duration
	logFile   string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "catalog-tui",
	Short: "Terminal admin for the product catalog",
	Long: `catalog-tui talks to the catalog GraphQL gateway.

Without flags it opens the product list. With --id it opens the edit form
of that product directly.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080/graphql", "GraphQL gateway URL")
	rootCmd.Flags().IntVar(&productID, "id", 0, "open the edit form for this product id")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "HTTP timeout per request")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write client logs to this file (stdout is taken by the UI)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug | info | warn | error")
}

func run() error {
	if productID < 0 {
		return fmt.Errorf("invalid --id %d: must be positive", productID)
	}

	log := logger.NewNopLogger()
	if logFile != "" {
		log = logger.New(logger.Options{Level: logLevel, File: logFile})
	}

	alerts := ui.NewAlertSink()
	client := gqlclient.New(endpoint, alerts,
		gqlclient.WithHTTPClient(&http.Client{Timeout: timeout}),
		gqlclient.WithLogger(log),
	)

	log.Infof("catalog-tui started, endpoint: %s", endpoint)

	p := tea.NewProgram(ui.New(client, alerts, productID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Errorf(err, "tui stopped with error")
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
