package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindarch/mindarch/internal/display"
	"github.com/mindarch/mindarch/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current plan and progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	application, err := buildApp(false)
	if err != nil {
		return err
	}

	p, err := application.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, store.ErrNoPlan) {
			fmt.Println("No study plan yet. Create one with: mindarch generate")
			return nil
		}
		return fmt.Errorf("failed to load plan: %w", err)
	}

	display.Render(os.Stdout, p)
	return nil
}
