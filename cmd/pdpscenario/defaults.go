package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/pdptw/config"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default configuration as YAML.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printDefaults(cmd.OutOrStdout())
	},
}

func printDefaults(out io.Writer) error {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}

	_, err = out.Write(data)

	return err
}
