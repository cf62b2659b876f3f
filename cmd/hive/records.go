package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hive/internal/platform/tui"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

var (
	flagRecordsClear string
	flagRecordsTop   int
)

var recordsCmd = &cobra.Command{
	Use:   "records [level]",
	Short: "Show best solves",
	Long: `Without arguments, shows the best move count and time of every campaign
level. With a level, lists its best completions.

Examples:
  hive records
  hive records 01-first-push --top 5
  hive records --clear 01-first-push`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().StringVar(&flagRecordsClear, "clear", "", "Delete every record of a level")
	recordsCmd.Flags().IntVar(&flagRecordsTop, "top", 10, "Number of completions to list for one level")
}

func runRecords(_ *cobra.Command, args []string) error {
	_, entries, err := loadCampaign()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening records database: %w", err)
	}
	defer store.Close()

	if flagRecordsClear != "" {
		if err := store.ClearLevel(flagRecordsClear); err != nil {
			return err
		}
		fmt.Printf("Cleared records of %s\n", flagRecordsClear)
		return nil
	}

	if len(args) == 1 {
		index, err := findLevel(entries, args[0])
		if err != nil {
			return err
		}
		return printCompletions(store, entries[index].ID, entries[index].Title)
	}

	records, err := store.Records()
	if err != nil {
		return err
	}
	progress, err := store.Progress()
	if err != nil {
		return err
	}

	fmt.Printf("Records - %d of %d levels solved\n\n", len(records), len(entries))
	fmt.Printf("  %3s  %-22s  %6s  %5s  %7s  %s\n", "#", "Level", "Solves", "Best", "Time", "Last played")
	fmt.Printf("  %3s  %-22s  %6s  %5s  %7s  %s\n", "-", "-----", "------", "----", "----", "-----------")

	now := time.Now()
	for _, row := range tui.BuildRecordRows(entries, records) {
		c := row.Cells(now)
		fmt.Printf("  %3s  %-22s  %6s  %5s  %7s  %s\n", c[0], c[1], c[2], c[3], c[4], c[5])
	}

	if progress >= 0 && progress+1 < len(entries) {
		fmt.Printf("\nNext up: %s ('hive play %d')\n", entries[progress+1].Title, progress+2)
	}
	return nil
}

func printCompletions(store *storage.Store, levelID, title string) error {
	completions, err := store.Completions(levelID, flagRecordsTop)
	if err != nil {
		return err
	}

	fmt.Printf("Completions - %s\n\n", title)
	if len(completions) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Printf("\nPlay 'hive play %s' to set the first record!\n", levelID)
		return nil
	}

	fmt.Printf("  %5s  %8s  %s\n", "Moves", "Time", "When")
	fmt.Printf("  %5s  %8s  %s\n", "-----", "----", "----")
	for _, c := range completions {
		fmt.Printf("  %5d  %8s  %s\n", c.Moves, c.Duration().Round(100*time.Millisecond), humanize.Time(c.Time()))
	}

	if best, ok, err := store.BestMoves(levelID); err == nil && ok {
		fmt.Printf("\nBest: %d moves\n", best)
	}
	return nil
}
