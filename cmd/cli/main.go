package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/gosplit/internal/adapter/http/dto"
	"github.com/iho/gosplit/internal/infrastructure/config"
	"github.com/iho/gosplit/internal/infrastructure/logger"
	"github.com/iho/gosplit/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gosplit-cli",
		Short:         "GoSplit CLI tool",
		Long:          `A command line interface for interacting with the GoSplit API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoSplit API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Event operations",
	}
	eventsCmd.AddCommand(eventsListCmd())

	expensesCmd := &cobra.Command{
		Use:   "expenses",
		Short: "Expense operations",
	}
	expensesCmd.AddCommand(expensesListCmd())

	paymentsCmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment operations",
	}
	paymentsCmd.AddCommand(paymentsListCmd())

	rootCmd.AddCommand(
		eventsCmd,
		expensesCmd,
		paymentsCmd,
		balancesCmd(),
		settleCmd(),
		consistencyCmd(),
		seedCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func newClient(cmd *cobra.Command) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		out:     cmd.OutOrStdout(),
	}
}

func eventsListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.ListEventsResponse
			path := fmt.Sprintf("/api/v1/events?limit=%d&offset=%d", limit, offset)
			if err := c.do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tLOCATION")
			for _, e := range resp.Events {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, truncate(e.Title, 40), truncate(e.Location, 30))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of events to skip")

	return cmd
}

func expensesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <event-id>",
		Short: "List an event's expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.ListExpensesResponse
			if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/events/"+args[0]+"/expenses", nil, &resp); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPAYER\tAMOUNT\tSPLIT\tDESCRIPTION")
			for _, e := range resp.Expenses {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.PayerID, e.Amount, e.SplitStrategy, truncate(e.Description, 40))
			}
			return tw.Flush()
		},
	}
}

func paymentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <event-id>",
		Short: "List an event's payments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.ListPaymentsResponse
			if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/events/"+args[0]+"/payments", nil, &resp); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tFROM\tTO\tAMOUNT\tSETTLED")
			for _, p := range resp.Payments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", p.ID, p.FromUserID, p.ToUserID, p.Amount, p.Settled)
			}
			return tw.Flush()
		},
	}
}

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <event-id>",
		Short: "Show member balances for an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.BalancesResponse
			if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/events/"+args[0]+"/balances", nil, &resp); err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tNAME\tBALANCE")
			for _, b := range resp.Balances {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.UserID, truncate(b.Name, 30), b.Balance)
			}
			return tw.Flush()
		},
	}
}

func settleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <event-id>",
		Short: "Suggest transfers that settle an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.SettlementResponse
			if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/events/"+args[0]+"/settlements", nil, &resp); err != nil {
				return err
			}

			if len(resp.Transfers) == 0 {
				fmt.Fprintln(c.out, "All settled up.")
				return nil
			}
			for _, t := range resp.Transfers {
				fmt.Fprintf(c.out, "%s -> %s: %s\n", t.FromUserID, t.ToUserID, t.Amount)
			}
			return nil
		},
	}
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency <event-id>",
		Short: "Check that an event's balances sum to zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)

			var resp dto.ConsistencyResponse
			if err := c.do(cmd.Context(), http.MethodGet, "/api/v1/events/"+args[0]+"/consistency", nil, &resp); err != nil {
				return err
			}

			printJSON(c.out, resp)
			if !resp.Consistent {
				return fmt.Errorf("event %s is inconsistent: balances sum to %s", args[0], resp.Total)
			}
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo event with users, expenses and a payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient(cmd)
			eventID, err := seed(cmd.Context(), c)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Seeded event %s\n", eventID)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	run := func(down bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			log := logger.New(logger.Config{
				Level:  cfg.LogLevel,
				Format: "console",
				Output: cmd.ErrOrStderr(),
			})

			if down {
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: run(false)},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", RunE: run(true)},
	)

	return cmd
}

// apiClient is a thin JSON client for the /api/v1 surface.
type apiClient struct {
	baseURL string
	http    *http.Client
	out     io.Writer
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s %s: %d %s: %s", method, path, resp.StatusCode, apiErr.Error, apiErr.Message)
		}
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(string(raw), 200))
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
