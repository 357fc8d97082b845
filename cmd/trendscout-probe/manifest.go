package main

import (
	"fmt"

	"trendscout/internal/services/agent/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewManifestCmd requests the agent manifests and prints them as YAML
func NewManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Fetch the agent capability manifest",
		Args:  cobra.NoArgs,
		RunE:  runManifest,
	}
}

func runManifest(cmd *cobra.Command, _ []string) error {
	c := clientFrom(cmd)
	asJSON, _ := cmd.Flags().GetBool("json")

	raw, reply, err := c.send(cmd.Context(), c.envelope(&domain.GetManifests{To: c.to()}))
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if asJSON {
		_, err = cmd.OutOrStdout().Write(append(raw, '\n'))
		return err
	}

	var out []domain.Manifest
	for _, ev := range reply.Events {
		if pm, ok := ev.(*domain.PublishManifests); ok {
			out = append(out, pm.ServicingManifests...)
		}
	}
	if len(out) == 0 {
		return fmt.Errorf("manifest: agent published nothing")
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	for _, m := range out {
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
