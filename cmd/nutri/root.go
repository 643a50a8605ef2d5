package nutri

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath string
	userID string
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "nutri tracks nutrition goals and progress from your terminal",
	Long:  "nutri is the command-line front end for the nutrition tracking core: profile management, food/exercise/weight/water logging, and time-ranged progress snapshots backed by a local cache and a remote service.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the local cache database")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User id (defaults to NUTRI_USER)")
}
