package main

import (
	"github.com/spf13/cobra"

	"github.com/GauBen/typed-board/config"
	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/publish"
	"github.com/GauBen/typed-board/schema"
)

func publishCmd(cfgPath *string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the schema artifact",
		Long:  "Publish derives the GraphQL schema from the entity declarations and\nwrites it to the artifact path. The write is atomic and idempotent:\nan unchanged schema produces byte-identical output.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg, *verbose)

			g, err := graph.Build(schema.Entities()...)
			if err != nil {
				return err
			}
			if err := publish.Write(g, cfg.Schema.Artifact); err != nil {
				return err
			}
			logger.Info("schema published", "artifact", cfg.Schema.Artifact)
			return nil
		},
	}
	cmd.Flags().String("schema.artifact", publish.DefaultPath, "artifact output path")
	return cmd
}
