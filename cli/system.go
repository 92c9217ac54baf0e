package cli

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/binhbb2204/Top-Movies/cli/config"
	"github.com/spf13/cobra"
)

var systemCmd = &cobra.Command{
	Use:   "system",
	Short: "System information",
	Long:  `Display system information and diagnostics.`,
}

var systemInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system info",
	Long:  `Display OS and architecture, the database in use and whether the web server answers.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "System Information:")
		fmt.Fprintln(out, "-------------------")
		fmt.Fprintf(out, "OS: %s\n", runtime.GOOS)
		fmt.Fprintf(out, "Architecture: %s\n", runtime.GOARCH)
		fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "Database: %s\n", resolveDBPath())

		if db, store, err := openStore(); err != nil {
			fmt.Fprintf(out, "Movies: unavailable (%s)\n", err.Error())
		} else {
			if n, err := store.Count(cmd.Context()); err == nil {
				fmt.Fprintf(out, "Movies: %d\n", n)
			}
			db.Close()
		}

		fmt.Fprintln(out, "\nServer Connectivity:")
		serverURL, err := config.GetServerURL()
		if err != nil {
			fmt.Fprintln(out, "  Status: Unknown (run: topmovies config init)")
			return nil
		}

		client := http.Client{Timeout: 2 * time.Second}
		resp, err := client.Get(serverURL + "/healthz")
		if err != nil {
			fmt.Fprintf(out, "  Status: ✗ Unreachable (%s)\n", err.Error())
			return nil
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			fmt.Fprintf(out, "  Status: ✓ Online (HTTP %d)\n", resp.StatusCode)
		} else {
			fmt.Fprintf(out, "  Status: ⚠ Issues (HTTP %d)\n", resp.StatusCode)
		}
		return nil
	},
}

func init() {
	systemCmd.AddCommand(systemInfoCmd)
}
