package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hive/internal/level"
	"github.com/vovakirdan/tui-hive/internal/levels"
	"github.com/vovakirdan/tui-hive/internal/levels/formats"
)

var flagExportOut string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows every level of the campaign in play order. The campaign is the
built-in pack unless campaign.levels_dir is set in hive.yaml.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

var levelsExportCmd = &cobra.Command{
	Use:   "export <level>",
	Short: "Print a level as YAML",
	Long: `Writes a campaign level in the YAML level format, ready to be edited
and dropped into a levels directory.

Examples:
  hive levels export 01-first-push
  hive levels export 5 --out chain.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelsExport,
}

func init() {
	levelsExportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Write to a file instead of stdout")
	levelsCmd.AddCommand(levelsExportCmd)
}

func runLevels(_ *cobra.Command, _ []string) error {
	_, entries, err := loadCampaign()
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, e := range entries {
		maxIDLen = max(maxIDLen, len(e.ID))
	}

	fmt.Printf("  %3s  %-*s  %-22s  %5s  %4s  %6s\n", "#", maxIDLen, "ID", "Title", "Size", "Bees", "Blocks")
	fmt.Printf("  %3s  %-*s  %-22s  %5s  %4s  %6s\n", "-", maxIDLen, "--", "-----", "----", "----", "------")
	for i, e := range entries {
		bees, blocks := countEntities(e)
		size := fmt.Sprintf("%dx%d", e.Definition.Columns, e.Definition.Rows)
		fmt.Printf("  %3d  %-*s  %-22s  %5s  %4d  %6d\n", i+1, maxIDLen, e.ID, e.Title, size, bees, blocks)
	}

	fmt.Println()
	fmt.Println("Run 'hive play <id>' to play a level.")
	return nil
}

func countEntities(e levels.Entry) (players, blocks int) {
	specs, err := e.Definition.Specs()
	if err != nil {
		return 0, 0
	}
	for _, s := range specs {
		if s.Type == level.EntityBlock {
			blocks++
		} else {
			players++
		}
	}
	return players, blocks
}

func runLevelsExport(_ *cobra.Command, args []string) error {
	_, entries, err := loadCampaign()
	if err != nil {
		return err
	}
	index, err := findLevel(entries, args[0])
	if err != nil {
		return err
	}

	file := entries[index].File
	if file.ID == "" {
		file.ID = entries[index].ID
	}
	data, err := formats.MarshalYAML(file)
	if err != nil {
		return err
	}

	if flagExportOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagExportOut, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagExportOut, err)
	}
	logger.Info("level exported", "level", entries[index].ID, "path", flagExportOut)
	return nil
}
