package main

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
	"github.com/vovakirdan/tui-hive/internal/level"
	"github.com/vovakirdan/tui-hive/internal/levels"
)

var replayCmd = &cobra.Command{
	Use:   "replay <level> <inputs>",
	Short: "Run an input string without a terminal UI",
	Long: `Plays a level headlessly. Every change settles at once, so the inputs
run back to back. The level is a campaign ID, a campaign number or a path
to a level file.

Inputs:
  f  forward    b  backward
  l  turn left  r  turn right
  u  undo       y  redo
  s  switch bee

Spaces are ignored. The command fails when the level is not solved.

Examples:
  hive replay 01-first-push ff
  hive replay 4 "s ff"
  hive replay ./my-level.yaml flfflflb`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	entry, err := resolveReplayLevel(args[0])
	if err != nil {
		return err
	}

	wins := 0
	lvl, err := entry.New(level.WithCompletion(func() { wins++ }))
	if err != nil {
		return err
	}

	inputs, err := parseInputs(args[1])
	if err != nil {
		return err
	}
	for _, in := range inputs {
		lvl.HandleInput(in)
		lvl.SettleAll()
	}

	snap := lvl.Snapshot()
	fmt.Printf("%s (%s)\n\n", snap.Title, entry.ID)
	fmt.Print(boardText(snap))
	fmt.Println()
	fmt.Printf("inputs  %d\n", len(inputs))
	fmt.Printf("moves   %d\n", snap.Moves)
	fmt.Printf("undo    %d\n", snap.Undoable)
	fmt.Printf("redo    %d\n", snap.Redoable)
	for _, e := range snap.Entities {
		focus := ""
		if e.Focused {
			focus = " focused"
		}
		fmt.Printf("  #%d %-6s %-7s %s%s\n", e.ID, e.Type, e.Position, e.Orientation, focus)
	}
	fmt.Println()

	if !snap.Won {
		fmt.Println("not solved")
		return fmt.Errorf("level %s is not solved", entry.ID)
	}
	fmt.Printf("solved (completion fired %d time(s))\n", wins)
	return nil
}

// resolveReplayLevel accepts a campaign reference or a level file path.
func resolveReplayLevel(ref string) (levels.Entry, error) {
	if _, err := os.Stat(ref); err == nil {
		return levels.LoadFile(ref)
	}

	_, entries, err := loadCampaign()
	if err != nil {
		return levels.Entry{}, err
	}
	index, err := findLevel(entries, ref)
	if err != nil {
		return levels.Entry{}, err
	}
	return entries[index], nil
}

// boardText draws the snapshot one grid row per line. Odd columns sit half a
// tile lower on the real board.
func boardText(s level.Snapshot) string {
	occupant := make(map[hexagon.Position]level.EntityView, len(s.Entities))
	for _, e := range s.Entities {
		occupant[e.Position] = e
	}

	var b strings.Builder
	for row := 0; row < s.Rows; row++ {
		b.WriteString("  ")
		for col := 0; col < s.Columns; col++ {
			p := hexagon.Position{Column: col, Row: row}
			tile := s.Tiles[hexagon.TileIndex(p, s.Columns)]
			e, occupied := occupant[p]
			b.WriteRune(cellRune(tile, e, occupied))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cellRune(tile level.TileType, e level.EntityView, occupied bool) rune {
	if occupied {
		switch {
		case e.Type == level.EntityBlock && tile == level.TileSpot:
			return '*'
		case e.Type == level.EntityBlock:
			return 'B'
		case e.Focused:
			return 'P'
		default:
			return 'p'
		}
	}

	switch tile {
	case level.TileFloor:
		return '.'
	case level.TileSpot:
		return 'o'
	case level.TileSlab:
		return '='
	default:
		return ' '
	}
}

// parseInputs reads one input per letter, skipping whitespace. Errors name
// the position among the letters.
func parseInputs(text string) ([]level.Input, error) {
	var inputs []level.Input
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		in, ok := level.ParseInput(r)
		if !ok {
			return nil, fmt.Errorf("input %d: unknown letter %q (want one of f b l r u y s)", len(inputs)+1, r)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}
