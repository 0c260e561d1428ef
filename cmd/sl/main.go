package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"salesline/internal/analytics"
	"salesline/internal/app"
	"salesline/internal/config"
	"salesline/internal/db"
	"salesline/internal/seed"
)

var rootCmd = &cobra.Command{
	Use:   "sl",
	Short: "Salesline CLI",
	Long: `Salesline fabricates a statistically plausible CRM sales pipeline and
reports on it. The workspace holds a .salesline directory with an SQLite
database and an optional salesline.yml scenario config.

Typical flow:
  sl init              create the workspace database and default config
  sl seed all --seed 7 generate every table in dependency order
  sl stats             show per-table row counts
  sl report pipeline   open pipeline by stage and close month`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("SALESLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(logCmd())
}

func withApp(ctx context.Context, fn func(context.Context, *app.Context) error) error {
	a, err := app.Open(viper.GetString("workspace"))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace database and default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace := viper.GetString("workspace")
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				if _, err := os.Stat(config.Path(workspace)); os.IsNotExist(err) {
					if err := a.Cfg.Write(workspace); err != nil {
						return err
					}
				}
				fmt.Println("workspace ready:", db.Path(workspace))
				return nil
			})
		},
	}
}

func configCmd() *cobra.Command {
	cfg := &cobra.Command{Use: "config", Short: "Inspect the scenario config"}
	cfg.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(viper.GetString("workspace"))
			if err != nil {
				return err
			}
			return printJSON(c)
		},
	})
	cfg.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(config.Path(viper.GetString("workspace")))
			return nil
		},
	})
	return cfg
}

func seedCmd() *cobra.Command {
	sc := &cobra.Command{Use: "seed", Short: "Generate synthetic tables"}
	sc.PersistentFlags().Int64("seed", 0, "random seed (0 uses current time)")
	sc.PersistentFlags().Int("accounts", 0, "override account count")
	_ = viper.BindPFlag("seed", sc.PersistentFlags().Lookup("seed"))
	_ = viper.BindPFlag("accounts", sc.PersistentFlags().Lookup("accounts"))

	steps := []struct {
		use   string
		short string
		run   func(*seed.Seeder, context.Context) (int, error)
	}{
		{"accounts", "Generate accounts", (*seed.Seeder).Accounts},
		{"leads", "Generate leads", (*seed.Seeder).Leads},
		{"contacts", "Generate contacts", (*seed.Seeder).Contacts},
		{"opportunities", "Generate opportunities", (*seed.Seeder).Opportunities},
		{"history", "Generate opportunity stage history", (*seed.Seeder).StageHistory},
		{"activities", "Generate activities", (*seed.Seeder).Activities},
		{"billing", "Generate billing orders", (*seed.Seeder).BillingOrders},
	}
	for _, step := range steps {
		run := step.run
		sc.AddCommand(&cobra.Command{
			Use:   step.use,
			Short: step.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
					n, err := run(s, ctx)
					if err != nil {
						return err
					}
					fmt.Printf("seeded %d rows\n", n)
					return nil
				})
			},
		})
	}
	sc.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Generate every table in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSeeder(cmd.Context(), func(ctx context.Context, s *seed.Seeder) error {
				counts, err := s.All(ctx)
				if err != nil {
					return err
				}
				return printCounts(counts)
			})
		},
	})
	return sc
}

func withSeeder(ctx context.Context, fn func(context.Context, *seed.Seeder) error) error {
	return withApp(ctx, func(ctx context.Context, a *app.Context) error {
		if n := viper.GetInt("accounts"); n > 0 {
			a.Cfg.Accounts.Count = n
		}
		seedValue := viper.GetInt64("seed")
		if seedValue == 0 {
			seedValue = time.Now().UnixNano()
		}
		s := seed.New(a.DB, a.Cfg, seedValue, a.Log)
		return fn(ctx, s)
	})
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-table row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				counts, err := a.Repo.Counts(ctx)
				if err != nil {
					return err
				}
				return printCounts(counts)
			})
		},
	}
}

var tableOrder = []string{
	"accounts", "leads", "contacts", "opportunities",
	"opportunity_stage_history", "activities", "billing_orders",
}

func printCounts(counts map[string]int) error {
	if viper.GetBool("json") {
		return printJSON(counts)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Table", "Rows"})
	for _, name := range tableOrder {
		if n, ok := counts[name]; ok {
			tw.AppendRow(table.Row{name, n})
		}
	}
	tw.Render()
	return nil
}

func reportCmd() *cobra.Command {
	rc := &cobra.Command{Use: "report", Short: "Pipeline and revenue reports"}
	rc.AddCommand(reportPipelineCmd())
	rc.AddCommand(reportVelocityCmd())
	rc.AddCommand(reportSourcesCmd())
	rc.AddCommand(reportARRCmd())
	rc.AddCommand(reportRetentionCmd())
	return rc
}

func reportPipelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline",
		Short: "Open pipeline by stage and close month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				opps, err := a.Repo.ListOpportunities(ctx)
				if err != nil {
					return err
				}
				stages := analytics.OpenPipelineByStage(opps)
				forecast := analytics.ForecastByCloseMonth(opps)
				if viper.GetBool("json") {
					return printJSON(map[string]any{"by_stage": stages, "by_close_month": forecast})
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Stage", "Deals", "Amount", "Weighted"})
				for _, s := range stages {
					tw.AppendRow(table.Row{s.Stage, s.Count, s.Amount, s.Weighted})
				}
				tw.Render()
				tw = table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Close Month", "Deals", "Amount", "Weighted"})
				for _, b := range forecast {
					tw.AppendRow(table.Row{b.Month, b.Count, b.Amount, b.Weighted})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func reportVelocityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "velocity",
		Short: "Sales cycle duration and win rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				opps, err := a.Repo.ListOpportunities(ctx)
				if err != nil {
					return err
				}
				cycle := analytics.SalesCycle(opps)
				winRate := analytics.WinRate(opps)
				if viper.GetBool("json") {
					return printJSON(map[string]any{"cycle": cycle, "win_rate": winRate})
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Closed Deals", "Mean Days", "Median Days", "P90 Days", "Win Rate"})
				tw.AppendRow(table.Row{cycle.Count,
					fmt.Sprintf("%.1f", cycle.MeanDays),
					fmt.Sprintf("%.1f", cycle.MedianDays),
					fmt.Sprintf("%.1f", cycle.P90Days),
					fmt.Sprintf("%.1f%%", winRate*100)})
				tw.Render()
				return nil
			})
		},
	}
}

func reportSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Per-source funnel efficiency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				leads, err := a.Repo.ListLeads(ctx)
				if err != nil {
					return err
				}
				opps, err := a.Repo.ListOpportunities(ctx)
				if err != nil {
					return err
				}
				rows := analytics.SourceEfficiency(leads, opps)
				if viper.GetBool("json") {
					return printJSON(rows)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Source", "Leads", "MQLs", "MQL Rate", "Deals", "Won", "Win Rate"})
				for _, r := range rows {
					tw.AppendRow(table.Row{r.Source, r.Leads, r.MQLs,
						fmt.Sprintf("%.1f%%", r.MQLRate*100), r.Deals, r.Won,
						fmt.Sprintf("%.1f%%", r.WinRate*100)})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func reportARRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arr",
		Short: "Annualized revenue by order month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				orders, err := a.Repo.ListBillingOrders(ctx)
				if err != nil {
					return err
				}
				points := analytics.ARRByMonth(orders)
				if viper.GetBool("json") {
					return printJSON(points)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Month", "Orders", "ARR"})
				for _, p := range points {
					tw.AppendRow(table.Row{p.Month, p.Orders, p.ARR})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func reportRetentionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retention",
		Short: "Renewal rate and ratio per account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				orders, err := a.Repo.ListBillingOrders(ctx)
				if err != nil {
					return err
				}
				accounts, err := a.Repo.ListAccounts(ctx)
				if err != nil {
					return err
				}
				sum := analytics.Retention(orders)
				mix := analytics.CategoryMix(accounts)
				if viper.GetBool("json") {
					return printJSON(map[string]any{"retention": sum, "category_mix": mix})
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Billed Accounts", "Renewed", "Renewal Rate", "Avg Renewal Ratio"})
				tw.AppendRow(table.Row{sum.Accounts, sum.Renewed,
					fmt.Sprintf("%.1f%%", sum.RenewalRate*100),
					fmt.Sprintf("%.2f", sum.AvgRenewalRatio)})
				tw.Render()
				tw = table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Category", "Accounts", "Share"})
				for _, m := range mix {
					tw.AppendRow(table.Row{m.Category, m.Count, fmt.Sprintf("%.1f%%", m.Share*100)})
				}
				tw.Render()
				return nil
			})
		},
	}
}

func logCmd() *cobra.Command {
	lc := &cobra.Command{Use: "log", Short: "Seed event log"}
	tail := &cobra.Command{
		Use:   "tail",
		Short: "Show the latest seed events",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withApp(cmd.Context(), func(ctx context.Context, a *app.Context) error {
				events, err := a.Repo.LatestEvents(ctx, limit)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(events)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Time", "Type", "Entity", "Payload"})
				for _, e := range events {
					tw.AppendRow(table.Row{e.TS.Format(time.RFC3339), e.Type, e.Entity, e.Payload})
				}
				tw.Render()
				return nil
			})
		},
	}
	tail.Flags().Int("limit", 20, "number of events")
	lc.AddCommand(tail)
	return lc
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
