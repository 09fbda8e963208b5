package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AbdullahHad/WaadFinal/internal/config"
	"github.com/AbdullahHad/WaadFinal/internal/constants"
	"github.com/AbdullahHad/WaadFinal/internal/database"
	"github.com/AbdullahHad/WaadFinal/internal/handlers"
	"github.com/AbdullahHad/WaadFinal/internal/logging"
	"github.com/AbdullahHad/WaadFinal/internal/notify"
	"github.com/AbdullahHad/WaadFinal/internal/repository"
	"github.com/AbdullahHad/WaadFinal/internal/scanner"
	"github.com/AbdullahHad/WaadFinal/internal/services"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func serveCmd() *cobra.Command {
	var noScanner bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the overdue scanner",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db, log); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)

			hub := notify.NewHub(constants.NotificationBufferSize, logging.Component(log, "hub"))
			channel, closeChannel, err := notificationChannel(ctx, g, cfg, hub, log)
			if err != nil {
				return err
			}
			defer closeChannel()

			employeeRepo := repository.NewEmployeeRepository(db)
			commitmentRepo := repository.NewCommitmentRepository(db)
			alertRepo := repository.NewAlertRepository(db)

			if !noScanner {
				scan := scanner.New(
					commitmentRepo,
					scanner.NewDispatcher(channel, logging.Component(log, "dispatcher")),
					logging.Component(log, "scanner"),
					scanner.WithInterval(cfg.ScanInterval),
				)
				g.Go(func() error {
					return scan.Run(ctx)
				})
			}

			commitments := services.NewCommitmentService(commitmentRepo, alertRepo)
			employees := services.NewEmployeeService(employeeRepo)
			alerts := services.NewAlertService(alertRepo, commitmentRepo)
			admin := services.NewAdminService(commitmentRepo, commitments, employees)

			gin.SetMode(cfg.GinMode)
			r := gin.New()
			httpLog := logging.Component(log, "http")
			r.Use(gin.Recovery(), requestLogger(httpLog))

			handlers.Routes{
				Employees:     employeeRepo,
				Commitments:   commitmentRepo,
				Health:        handlers.NewHealthHandler(db),
				Commitment:    handlers.NewCommitmentHandler(commitments, httpLog),
				Alert:         handlers.NewAlertHandler(alerts, httpLog),
				Admin:         handlers.NewAdminHandler(admin, httpLog),
				Notifications: handlers.NewNotificationHandler(hub, constants.NotificationHeartbeat),
			}.Register(r)

			srv := &http.Server{
				Addr:    cfg.HTTPAddr,
				Handler: r,
				// Notification streams end when the process starts shutting down.
				BaseContext: func(net.Listener) context.Context { return ctx },
			}

			g.Go(func() error {
				log.Info().Str("addr", cfg.HTTPAddr).Msg("Server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				log.Info().Msg("Shutting down")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&noScanner, "no-scanner", false, "serve the API without running the overdue scanner")
	return cmd
}

// notificationChannel picks where the scanner's notifications go. With RabbitMQ every
// instance publishes to the exchange and a bridge feeds this instance's hub.
func notificationChannel(ctx context.Context, g *errgroup.Group, cfg *config.Config, hub *notify.Hub, log zerolog.Logger) (notify.Channel, func(), error) {
	if cfg.NotifyBackend != config.NotifyBackendAMQP {
		return hub, func() {}, nil
	}

	publisher, conn, closeFn, err := dialPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}

	bridge := notify.NewBridge(conn, cfg.AMQPExchange, hub, logging.Component(log, "bridge"))
	g.Go(func() error {
		return bridge.Run(ctx)
	})

	return publisher, closeFn, nil
}

func dialPublisher(cfg *config.Config) (*notify.Publisher, *amqp.Connection, func(), error) {
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}
	if err := notify.DeclareExchange(ch, cfg.AMQPExchange); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.AMQPExchange, err)
	}

	closeFn := func() {
		ch.Close()
		conn.Close()
	}
	return notify.NewPublisher(ch, cfg.AMQPExchange), conn, closeFn, nil
}
