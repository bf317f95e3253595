package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quanda-ai/quanda/config"
	"github.com/quanda-ai/quanda/internal/agent"
	"github.com/quanda-ai/quanda/internal/knowledge"
	"github.com/quanda-ai/quanda/internal/store"
	"github.com/spf13/cobra"
)

func askCMD() *cobra.Command {
	var cfgPath string

	var ask = &cobra.Command{
		Use:   "ask <query>",
		Short: "Answer a single query from the command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			query := strings.Join(args, " ")
			logger := log.New(log.Writer(), "[ASK] ", log.LstdFlags)
			ctx := context.Background()
			if cfg.General.DefaultTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, cfg.General.DefaultTimeout)
				defer cancel()
			}

			st, err := store.New(ctx, cfg.Storage, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			orch, err := agent.FromConfig(cfg, st, logger, nil)
			if err != nil {
				return err
			}

			result := orch.Answer(ctx, query, func(delta string) {
				fmt.Print(delta)
			})
			fmt.Println()

			for _, d := range result.Data {
				switch d.Type {
				case agent.DatumReference:
					if refs, ok := d.Content.([]knowledge.Reference); ok {
						fmt.Println(knowledge.FormatReferences(refs))
					}
				case agent.DatumChart:
					fmt.Println("\n[chart descriptor attached]")
				}
			}
			return nil
		},
	}
	ask.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return ask
}
