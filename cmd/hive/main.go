// hive is a hexagonal push puzzle for the terminal.
//
// Usage:
//
//	hive play [level]             - Pick a level, or play one directly
//	hive levels                   - List the campaign
//	hive levels export <level>    - Print a level as YAML
//	hive validate <files...>      - Check level files
//	hive replay <level> <inputs>  - Run an input string without a terminal UI
//	hive records                  - Show best solves per level
//	hive serve                    - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--db <path>       - Set database path (default: ~/.hive/records.db)
//	--config <path>   - Use a custom hive.yaml
//	--speed <preset>  - Animation speed: slow, normal, fast, instant
//	--verbose         - Debug logging
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/levels"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagConfig  string
	flagSpeed   string
	flagVerbose bool

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "hive",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hive",
	Short: "Hive - a hexagonal push puzzle for your terminal",
	Long: `Hive is a puzzle game played on a hexagonal grid. Walk your bees around
the comb and push every block onto a spot to solve the level.

Available commands:
  play      - Play the campaign
  levels    - List or export levels
  validate  - Check level files
  replay    - Run an input string headlessly
  records   - View best solves
  serve     - Start SSH server for remote play

Examples:
  hive play
  hive play 03-slab-walk
  hive levels export 01-first-push > my-level.yaml
  hive replay 01-first-push ff
  hive serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hive/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom hive.yaml")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Animation speed preset: slow, normal, fast, instant")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads hive.yaml and applies the --speed preset.
func loadConfig() (config.HiveConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSpeed != "" && !config.ApplySpeedPreset(&cfg, config.SpeedPreset(flagSpeed)) {
		return cfg, fmt.Errorf("unknown speed preset %q (want one of %v)", flagSpeed, config.SpeedPresets())
	}
	return cfg, nil
}

// levelLoader returns the configured level directory or the built-in pack.
func levelLoader(cfg config.HiveConfig) *levels.Loader {
	if cfg.Campaign.LevelsDir == "" {
		l := levels.Builtin()
		l.Logger = logger
		return l
	}
	l := levels.NewLoader(cfg.Campaign.LevelsDir)
	l.Logger = logger
	return l
}

// loadCampaign loads config and the campaign it points at.
func loadCampaign() (config.HiveConfig, []levels.Entry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}

	loader := levelLoader(cfg)
	entries, err := loader.LoadAll()
	if err != nil {
		return cfg, nil, err
	}
	if len(entries) == 0 {
		return cfg, nil, fmt.Errorf("no levels found in %s", loader.Root)
	}
	logger.Debug("campaign loaded", "root", loader.Root, "levels", len(entries))
	return cfg, entries, nil
}

// findLevel resolves a level by ID or by 1-based campaign number.
func findLevel(entries []levels.Entry, ref string) (int, error) {
	for i, e := range entries {
		if e.ID == ref {
			return i, nil
		}
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(entries) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("unknown level %q (run 'hive levels' to list them)", ref)
}
