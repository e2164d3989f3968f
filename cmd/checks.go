package cmd

import (
	"fmt"
	"log/slog"

	"github.com/corex-mon/check-pve/internal/check"
	"github.com/corex-mon/check-pve/internal/checks"
	"github.com/corex-mon/check-pve/internal/checks/ceph"
	"github.com/corex-mon/check-pve/internal/checks/cluster"
	"github.com/corex-mon/check-pve/internal/checks/disks"
	"github.com/corex-mon/check-pve/internal/checks/node"
	"github.com/corex-mon/check-pve/internal/checks/services"
	"github.com/corex-mon/check-pve/internal/checks/storage"
	"github.com/corex-mon/check-pve/internal/pve"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cpuCmd = &cobra.Command{
	Use:     node.NameCPU,
	Short:   "Check node CPU usage against thresholds",
	PreRunE: checkPreRun(node.NameCPU),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, node.NameCPU)
	},
}

var memoryCmd = &cobra.Command{
	Use:     node.NameMemory,
	Short:   "Check node memory usage against thresholds",
	PreRunE: checkPreRun(node.NameMemory),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, node.NameMemory)
	},
}

var swapCmd = &cobra.Command{
	Use:     node.NameSwap,
	Short:   "Check node swap usage against thresholds",
	PreRunE: checkPreRun(node.NameSwap),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, node.NameSwap)
	},
}

var pveversionCmd = &cobra.Command{
	Use:     node.NamePVEVersion,
	Short:   "Report the installed PVE version",
	PreRunE: checkPreRun(node.NamePVEVersion),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, node.NamePVEVersion)
	},
}

var clusterCmd = &cobra.Command{
	Use:     cluster.Name,
	Short:   "Check cluster quorum and node liveness",
	PreRunE: checkPreRun(cluster.Name),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, cluster.Name)
	},
}

var cephCmd = &cobra.Command{
	Use:     ceph.Name,
	Short:   "Check Ceph cluster health",
	PreRunE: checkPreRun(ceph.Name),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, ceph.Name)
	},
}

var cephIOCmd = &cobra.Command{
	Use:     ceph.NameIO,
	Short:   "Check Ceph IO operation and throughput rates",
	PreRunE: checkPreRun(ceph.NameIO),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, ceph.NameIO)
	},
}

var disksHealthCmd = &cobra.Command{
	Use:     disks.Name,
	Short:   "Check SMART health and wearout of physical disks",
	PreRunE: checkPreRun(disks.Name),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, disks.Name)
	},
}

var servicesCmd = &cobra.Command{
	Use:     services.Name,
	Short:   "Check that PVE services are running",
	PreRunE: checkPreRun(services.Name),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, services.Name)
	},
}

var storageCmd = &cobra.Command{
	Use:     storage.Name,
	Short:   "Check storage usage against thresholds",
	PreRunE: checkPreRun(storage.Name),
	Run: func(cmd *cobra.Command, args []string) {
		runCheck(cmd, storage.Name)
	},
}

func init() {
	checkCmds := []*cobra.Command{
		cephCmd, cephIOCmd, clusterCmd, cpuCmd, disksHealthCmd,
		memoryCmd, pveversionCmd, servicesCmd, storageCmd, swapCmd,
	}
	for _, cmd := range checkCmds {
		cmd.GroupID = checkGroupID
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{cpuCmd, memoryCmd, swapCmd, disksHealthCmd, storageCmd} {
		cmd.Flags().Int("warning", 0, "Warning threshold for the check value")
		cmd.Flags().Int("critical", 0, "Critical threshold for the check value")
	}

	storageCmd.Flags().StringArray("ignore-disk", nil, "Storage to ignore, repeatable")
	storageCmd.Flags().StringArray("disk-name", nil, "Storage to check by name, repeatable; overrides --ignore-disk")

	cephIOCmd.Flags().Int("ceph-io-warning", 10000, "IO read/write warning threshold in operations/sec")
	cephIOCmd.Flags().Int("ceph-byte-warning", 200, "Byte read/write warning threshold in MB/sec")
}

// checkPreRun validates connection settings and, where the check needs
// them, the threshold pair. All of it happens before any network call.
func checkPreRun(name string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := validateConnection(); err != nil {
			return err
		}
		spec, _ := checks.Lookup(name)
		if !spec.NeedThresholds {
			return nil
		}
		if !cmd.Flags().Changed("warning") || !cmd.Flags().Changed("critical") {
			return fmt.Errorf("--warning and --critical arguments are required for '%s' subcommand!", name)
		}
		if err := thresholdsFrom(cmd).Validate(spec.Direction); err != nil {
			return fmt.Errorf("%w for '%s' subcommand!", err, name)
		}
		return nil
	}
}

// runCheck performs one request/evaluate/print/exit cycle. It never
// returns: transport failures exit UNKNOWN, everything else exits with the
// worst finding severity.
func runCheck(cmd *cobra.Command, name string) {
	spec, ok := checks.Lookup(name)
	if !ok {
		check.ExitUnknown("unknown subcommand " + name)
	}

	cfg := pve.Config{
		Host:     viper.GetString("hostname"),
		Port:     viper.GetInt("api_port"),
		User:     viper.GetString("api_user"),
		Password: viper.GetString("api_password"),
		Token:    viper.GetString("api_token"),
	}
	cfg.Insecure, _ = cmd.Flags().GetBool("insecure")
	nodename := viper.GetString("nodename")

	ctx := cmd.Context()
	client := pve.NewClient(cfg)
	if cfg.Token == "" {
		if err := client.Login(ctx); err != nil {
			check.ExitUnknown(err.Error())
		}
	}

	path := spec.Path(nodename)
	slog.Debug("running check", "subcommand", name, "path", path)
	data, err := client.Get(ctx, path)
	if err != nil {
		check.ExitUnknown(err.Error())
	}

	check.Exit(evaluate(cmd, name, data))
}

// evaluate dispatches the decoded payload to the evaluator for the named
// subcommand.
func evaluate(cmd *cobra.Command, name string, data []byte) []check.Finding {
	switch name {
	case node.NameCPU:
		return node.CheckCPU(data, thresholdsFrom(cmd))
	case node.NameMemory:
		return node.CheckMemory(data, node.NameMemory, thresholdsFrom(cmd))
	case node.NameSwap:
		return node.CheckMemory(data, node.NameSwap, thresholdsFrom(cmd))
	case node.NamePVEVersion:
		return node.CheckVersion(data)
	case cluster.Name:
		return cluster.Check(data)
	case ceph.Name:
		return ceph.Check(data)
	case ceph.NameIO:
		opsWarn, _ := cmd.Flags().GetInt("ceph-io-warning")
		byteWarn, _ := cmd.Flags().GetInt("ceph-byte-warning")
		return ceph.CheckIO(data, ceph.IOThresholds{Ops: opsWarn, Bytes: byteWarn})
	case disks.Name:
		return disks.Check(data, thresholdsFrom(cmd))
	case services.Name:
		return services.Check(data)
	case storage.Name:
		ignore, _ := cmd.Flags().GetStringArray("ignore-disk")
		include, _ := cmd.Flags().GetStringArray("disk-name")
		return storage.Check(data, storage.Options{
			Thresholds: thresholdsFrom(cmd),
			Ignore:     ignore,
			Include:    include,
		})
	}
	return check.Unknown("unknown subcommand " + name)
}

func thresholdsFrom(cmd *cobra.Command) check.Thresholds {
	warning, _ := cmd.Flags().GetInt("warning")
	critical, _ := cmd.Flags().GetInt("critical")
	return check.Thresholds{Warning: warning, Critical: critical}
}
