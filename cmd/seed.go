package main

import (
	"context"
	"log"

	"github.com/quanda-ai/quanda/config"
	"github.com/quanda-ai/quanda/internal/store"
	"github.com/spf13/cobra"
)

func seedCMD() *cobra.Command {
	var cfgPath string
	var keep bool

	var seed = &cobra.Command{
		Use:   "seed",
		Short: "Load the sample QA records for the configured tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			logger := log.New(log.Writer(), "[SEED] ", log.LstdFlags)
			ctx := context.Background()

			st, err := store.New(ctx, cfg.Storage, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			tenant := cfg.Agent.Tenant
			if !keep {
				if err := st.Truncate(ctx, tenant); err != nil {
					return err
				}
				logger.Printf("cleared existing records for tenant %q", tenant)
			}
			if err := st.Seed(ctx, tenant, store.SampleRecords); err != nil {
				return err
			}
			logger.Printf("seeded %d records for tenant %q", len(store.SampleRecords), tenant)
			return nil
		},
	}
	seed.Flags().BoolVar(&keep, "keep", false, "keep existing records instead of truncating first")
	seed.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")

	return seed
}
