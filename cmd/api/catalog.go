package main

import (
	"fmt"
	"io"

	"telehealth_flow/internal/infrastructure/catalog"

	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog tooling",
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate products, pricing rules and form mappings",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			return runCatalogValidate(cmd.OutOrStdout(), file)
		},
	}
	validateCmd.Flags().String("file", "", "Catalog YAML (embedded sample catalog when empty)")

	cmd.AddCommand(validateCmd)
	return cmd
}

func runCatalogValidate(w io.Writer, file string) error {
	cat, err := catalog.Load(file)
	if err != nil {
		return err
	}
	if err := cat.Validate(); err != nil {
		return err
	}
	name := file
	if name == "" {
		name = "embedded catalog"
	}
	_, err = fmt.Fprintf(w, "%s: ok\n", name)
	return err
}
