package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-hive/internal/audio"
	"github.com/vovakirdan/tui-hive/internal/core"
	"github.com/vovakirdan/tui-hive/internal/games/hive"
	"github.com/vovakirdan/tui-hive/internal/platform/tui"
	"github.com/vovakirdan/tui-hive/internal/registry"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start the level picker, or jump straight into a level given by ID or
by its number in the campaign. Solving a level moves on to the next one.

Controls:
  W/Up, S/Down     - Walk or push forward, backward
  A/Left, D/Right  - Turn
  U/Z, Y/X         - Undo, redo
  Tab/Space/click  - Switch bee
  N/Enter          - Next level after a win
  R                - Restart level
  P                - Pause
  Esc/B            - Back to the level picker
  Q/Ctrl+C         - Quit

Examples:
  hive play
  hive play 4
  hive play 02-around-the-bend --speed fast
  hive play --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, entries, err := loadCampaign()
	if err != nil {
		return err
	}

	start := -1
	if len(args) == 1 {
		if start, err = findLevel(entries, args[0]); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if flagMute {
		cfg.Audio.Enabled = false
	}
	speaker, err := audio.Open(cfg.Audio, logger)
	if err != nil {
		return err
	}
	defer speaker.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	settings := hive.Settings{
		Config: cfg,
		Sound:  speaker,
		Levels: entries,
	}

	return tui.RunSession(tui.SessionOptions{
		Levels: entries,
		Store:  store,
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
		},
		NewGame: func(start int) registry.Game {
			s := settings
			s.StartLevel = start
			hive.Configure(s)

			game, createErr := registry.Create(hive.GameID)
			if createErr != nil {
				logger.Fatal("hive is not registered", "error", createErr)
			}
			return game
		},
		StartLevel: start,
	})
}
