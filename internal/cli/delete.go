package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the current plan",
	RunE:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteForce {
		fmt.Print("Delete the current plan? This cannot be undone. [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	application, err := buildApp(false)
	if err != nil {
		return err
	}
	if err := application.DeletePlan(cmd.Context()); err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	fmt.Println("Plan deleted.")
	return nil
}
