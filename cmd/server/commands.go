package main

import (
	"fmt"
	"time"

	"github.com/AbdullahHad/WaadFinal/internal/config"
	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/logging"
	"github.com/AbdullahHad/WaadFinal/internal/models"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/AbdullahHad/WaadFinal/internal/scanner"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one overdue scan cycle and exit",
		Long: `Runs a single overdue scan. Notifications go to connected subscribers of this
process only, so with the local backend nobody receives them; use NOTIFY_BACKEND=amqp
to reach running servers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			now := time.Now()
			if at != "" {
				now, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at %q: %w", at, err)
				}
			}

			var channel notify.Channel = notify.NewHub(1, logging.Component(log, "hub"))
			if cfg.NotifyBackend == config.NotifyBackendAMQP {
				publisher, _, closeFn, err := dialPublisher(cfg)
				if err != nil {
					return err
				}
				defer closeFn()
				channel = publisher
			}

			scan := scanner.New(
				repository.NewCommitmentRepository(db),
				scanner.NewDispatcher(channel, logging.Component(log, "dispatcher")),
				logging.Component(log, "scanner"),
			)
			result, err := scan.RunCycle(cmd.Context(), now)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
				return err
			}

			printCycle(cmd, now, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "scan as of this RFC3339 time instead of now")
	return cmd
}

func printCycle(cmd *cobra.Command, now time.Time, result scanner.CycleResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scan at %s\n", now.Format(time.RFC3339))
	fmt.Fprintf(out, "  matched:  %d\n", result.Matched)
	fmt.Fprintf(out, "  overdue:  %s\n", color.New(color.FgYellow).Sprint(result.Updated))
	if result.Skipped > 0 {
		fmt.Fprintf(out, "  skipped:  %s (changed concurrently)\n", color.New(color.FgYellow).Sprint(result.Skipped))
	}
	fmt.Fprintf(out, "  notified: %s\n", color.New(color.FgGreen).Sprint(result.Notified))
	if result.NotifyFailed > 0 {
		fmt.Fprintf(out, "  failed:   %s\n", color.New(color.FgRed).Sprint(result.NotifyFailed))
	}
}

func employeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}
	cmd.AddCommand(employeeCreateCmd())
	return cmd
}

func employeeCreateCmd() *cobra.Command {
	var (
		email string
		name  string
		admin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db, log); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			role := models.RoleEmployee
			if admin {
				role = models.RoleAdmin
			}

			employee, err := services.NewEmployeeService(repository.NewEmployeeRepository(db)).Create(email, name, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s employee %d <%s> role=%s\n",
				color.New(color.FgGreen).Sprint("Created"), employee.ID, employee.Email, employee.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "employee email (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// requestLogger logs one line per request through zerolog
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(started)).
			Msg("Request handled")
	}
}
