package nutri

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Account operations are identity-sensitive: they wait for remote
// confirmation and surface failures instead of degrading silently.
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Identity-sensitive account operations",
}

var accountEmailCmd = &cobra.Command{
	Use:   "email <new-email>",
	Short: "Change the account email (requires remote confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			if err := a.repo.ChangeEmail(cmd.Context(), a.userID, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Email updated")
			return nil
		})
	},
}

var accountPasswordCmd = &cobra.Command{
	Use:   "password <new-password>",
	Short: "Change the account password (requires remote confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			if err := a.repo.ChangePassword(cmd.Context(), a.userID, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		})
	},
}

var accountDeleteConfirm bool

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account remotely and purge the local cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !accountDeleteConfirm {
			return fmt.Errorf("pass --yes to confirm account deletion")
		}
		return withApp(func(a *appContext) error {
			if err := requireUser(a); err != nil {
				return err
			}
			if err := a.repo.DeleteAccount(cmd.Context(), a.userID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account deleted")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountEmailCmd)
	accountCmd.AddCommand(accountPasswordCmd)
	accountCmd.AddCommand(accountDeleteCmd)

	accountDeleteCmd.Flags().BoolVar(&accountDeleteConfirm, "yes", false, "Confirm deletion")
}
