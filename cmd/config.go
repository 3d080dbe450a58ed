package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/printpositions/internal/config"
	"github.com/zjrosen/printpositions/internal/log"
	"github.com/zjrosen/printpositions/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the printpos configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Write a commented default config file. Without a path the file is created at
.printpos/config.yaml in the current directory. An existing file is left alone
unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := paths.LocalConfig
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		return runConfigInit(cmd.OutOrStdout(), path, force)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigShow(cmd.OutOrStdout(), cfg)
	},
}

var configSetLayoutCmd = &cobra.Command{
	Use:   "set-layout",
	Short: "Save layout flags as the new defaults",
	Long: `Merge the given layout flags into the loaded layout settings and write the
result to the layout section of the config file. Other sections and their
comments are preserved.

Examples:
  printpos config set-layout --width 40 --align right
  printpos config set-layout --fill . --tail ...`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		layout, err := resolveLayout(cmd)
		if err != nil {
			return err
		}
		path := configPath()
		if err := config.SaveLayout(path, layout); err != nil {
			return fmt.Errorf("saving layout: %w", err)
		}
		log.Info(log.CatConfig, "Saved layout", "path", path)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved layout to %s\n", path)
		return err
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	layoutFlags(configSetLayoutCmd)
	configSetLayoutCmd.Flags().String("fill", " ", "fill string, one print position")
	configSetLayoutCmd.Flags().String("align", "left", "left, right or center")
	configSetLayoutCmd.Flags().String("tail", "…", "appended when text is cut")

	configCmd.AddCommand(configInitCmd, configShowCmd, configSetLayoutCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(w io.Writer, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Wrote %s\n", path)
	return err
}

func runConfigShow(w io.Writer, c config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
