package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-hive/internal/level"
	"github.com/vovakirdan/tui-hive/internal/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <files...>",
	Short: "Check level files",
	Long: `Parses and validates level files (.yaml, .yml, .json) and reports the
first problem of each one with its error code.

Examples:
  hive validate levels/*.yaml
  hive validate my-level.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		entry, err := levels.LoadFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s\n      %s\n", path, describeLoadError(err))
			continue
		}
		fmt.Printf("ok    %s  %q %dx%d\n", path, entry.Title, entry.Definition.Columns, entry.Definition.Rows)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d level files are invalid", failed, len(args))
	}
	return nil
}

// describeLoadError prefers the validation code over the wrapped message.
func describeLoadError(err error) string {
	var ve level.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("[%s] %s", ve.Code, ve.Message)
	}
	return err.Error()
}
