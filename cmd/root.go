package cmd

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags "-X github.com/corex-mon/check-pve/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "check-pve",
	Short: "Proxmox VE check plugin for Icinga 2 and Nagios",
	Long: `check-pve queries the Proxmox VE API and reports node, cluster,
storage and Ceph health as monitoring plugin output: one line per finding,
exit code 0/1/2 for OK/WARNING/CRITICAL and 3 for connectivity faults.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	},
}

const checkGroupID = "checks"

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: checkGroupID, Title: "Checks:"})

	pf := rootCmd.PersistentFlags()
	pf.String("hostname", "", "PVE host FQDN or IP")
	pf.Int("api_port", 8006, "API port")
	pf.String("api_user", "", "API user, e.g. monitoring@pve")
	pf.String("api_password", "", "API password (or CHECK_PVE_API_PASSWORD)")
	pf.String("api_token", "", "API token, format: token_ID=secret (or CHECK_PVE_API_TOKEN)")
	pf.Bool("insecure", false, "Don't verify the HTTPS certificate")
	pf.String("nodename", "", "node name")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")

	// Connection settings may come from the environment so credentials
	// stay out of process listings and service definitions.
	viper.SetEnvPrefix("CHECK_PVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	for _, name := range []string{"hostname", "api_port", "api_user", "api_password", "api_token", "nodename"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
}

// validateConnection checks the API connection settings before any network
// call is made.
func validateConnection() error {
	if viper.GetString("hostname") == "" {
		return errors.New("--hostname is required")
	}
	if viper.GetString("api_user") == "" {
		return errors.New("--api_user is required")
	}
	if viper.GetString("nodename") == "" {
		return errors.New("--nodename is required")
	}
	password := viper.GetString("api_password")
	token := viper.GetString("api_token")
	if password == "" && token == "" {
		return errors.New("one of --api_password or --api_token is required")
	}
	if password != "" && token != "" {
		return errors.New("--api_password and --api_token are mutually exclusive")
	}
	return nil
}

func setupLogging(cmd *cobra.Command) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	level := slog.LevelInfo
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
