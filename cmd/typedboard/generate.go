package main

import (
	"github.com/spf13/cobra"

	"github.com/GauBen/typed-board/config"
	"github.com/GauBen/typed-board/querygen"
)

func generateCmd(cfgPath *string, verbose *bool) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate typed request builders",
		Long:  "Generate reads the schema artifact and the operation documents and\nemits one Go file per operation, narrowed to its selection. With\n--watch it keeps regenerating as the inputs change.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg, *verbose)

			gen := querygen.Config{
				Artifact: cfg.Schema.Artifact,
				Queries:  cfg.Generate.Queries,
				Target:   cfg.Generate.Target,
			}

			if watch {
				return querygen.Watch(cmd.Context(), gen, logger)
			}

			res, err := querygen.Generate(gen)
			if err != nil {
				return err
			}
			if res.Skipped {
				logger.Info("inputs unchanged, nothing to do", "target", gen.Target)
				return nil
			}
			logger.Info("generated typed requests", "files", len(res.Files), "target", gen.Target)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate on input changes")
	cmd.Flags().String("schema.artifact", "schema.graphql", "artifact input path")
	cmd.Flags().StringSlice("generate.queries", []string{"board/queries.graphql"}, "operation document globs")
	cmd.Flags().String("generate.target", "board", "generated package directory")
	return cmd
}
