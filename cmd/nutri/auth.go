package nutri

import (
	"fmt"

	"github.com/Snape93/nutrition-sub006/internal/remote"
	"github.com/spf13/cobra"
)

var (
	authPassword string
	authEmail    string
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Log in against the remote service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			session, err := a.client.Login(cmd.Context(), args[0], authPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (user id %s)\n", args[0], session.UserID)
			fmt.Fprintf(cmd.OutOrStdout(), "Set NUTRI_USER=%s to address this account\n", session.UserID)
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account on the remote service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			session, err := a.client.Register(cmd.Context(), remote.RegisterInput{
				Username: args[0],
				Email:    authEmail,
				Password: authPassword,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (user id %s)\n", args[0], session.UserID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)

	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "Account email")
}
