package main

import (
	"time"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the probe command tree
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "trendscout-probe",
		Short:         "Send Open Floor envelopes to a trendscout agent",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String("url", "http://localhost:4000/openfloor", "Agent Open Floor endpoint")
	pf.String("speaker", "tag:trendscout-probe", "Speaker URI the probe sends as")
	pf.String("agent", "", "Speaker URI to address, empty broadcasts")
	pf.Duration("timeout", 30*time.Second, "Request timeout")
	pf.Bool("json", false, "Print the raw reply envelope")

	rootCmd.AddCommand(
		NewAskCmd(),
		NewManifestCmd(),
	)
	return rootCmd
}

// clientFrom reads the persistent flags into a client
func clientFrom(cmd *cobra.Command) *client {
	url, _ := cmd.Flags().GetString("url")
	speaker, _ := cmd.Flags().GetString("speaker")
	agent, _ := cmd.Flags().GetString("agent")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return newClient(url, speaker, agent, timeout)
}
