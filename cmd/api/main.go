package main

import (
	"os"

	_ "telehealth_flow/docs"

	"github.com/spf13/cobra"
)

// @title           Telehealth Flow API
// @version         1.0
// @description     Patient flow orchestrator: catalog selection, pricing, intake, consultation and fulfillment.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "telehealth-flow",
		Short:         "Telehealth patient flow orchestrator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(catalogCmd())
	return rootCmd
}
