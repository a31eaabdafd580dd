package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	ddEcho "gopkg.in/DataDog/dd-trace-go.v1/contrib/labstack/echo.v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/getAlby/royaltyhub.go/db"
	"github.com/getAlby/royaltyhub.go/docs"
	"github.com/getAlby/royaltyhub.go/lib/logging"
	"github.com/getAlby/royaltyhub.go/lib/royalty"
	"github.com/getAlby/royaltyhub.go/lib/service"
	"github.com/getAlby/royaltyhub.go/lib/tokens"
	"github.com/getAlby/royaltyhub.go/lib/transport"
	"github.com/getAlby/royaltyhub.go/rabbitmq"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title        RoyaltyHub.go
// @version      0.1.0
// @description  Music royalty NFTs: song tokens with fixed royalty terms and withdrawable royalty balances.

// @contact.name   Alby
// @contact.url    https://getalby.com
// @contact.email  hello@getalby.com

// @license.name  GNU GPLv3
// @license.url   https://www.gnu.org/licenses/gpl-3.0.en.html

// @BasePath  /

// @securitydefinitions.oauth2.password  OAuth2Password
// @tokenUrl                             /v2/auth
// @schemes                              https http

// @securityDefinitions.apikey  AdminToken
// @in                          header
// @name                        Authorization
func main() {

	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	defer cancelStartup()

	// a persistent store needs a real payout backend, otherwise withdrawals could never settle
	if !c.UseMemoryStore() && c.RabbitMQUri == "" {
		logger.Fatal("RABBITMQ_URI is required unless DATABASE_URI is memory://")
	}

	store, closeStore, err := db.OpenStore(startupCtx, c, db.WithMigrations(), db.WithLogger(logger))
	if err != nil {
		logger.Fatalf("Error initializing store: %v", err)
	}
	defer closeStore()

	// sentry init needs to happen before the echo middlewares are added
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:              c.SentryDSN,
			IgnoreErrors:     []string{"401"},
			EnableTracing:    c.SentryTracesSampleRate > 0,
			TracesSampleRate: c.SentryTracesSampleRate,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Without RABBITMQ_URI payments only come in through the admin API and payouts are only logged
	// (memory store only, see above)
	var rabbitmqClient *rabbitmq.DefaultClient
	var payer royalty.Payer
	if c.RabbitMQUri != "" {
		amqpClient, err := rabbitmq.DialAMQP(c.RabbitMQUri, rabbitmq.WithAmqpLogger(logger))
		if err != nil {
			logger.Fatal(err)
		}

		rabbitmqClient, err = rabbitmq.NewClient(amqpClient,
			rabbitmq.WithLogger(logger),
			rabbitmq.WithPaymentExchange(c.RabbitMQPaymentExchange),
			rabbitmq.WithPaymentConsumerQueueName(c.RabbitMQPaymentConsumerQueue),
			rabbitmq.WithPayoutExchange(c.RabbitMQPayoutExchange),
			rabbitmq.WithEventExchange(c.RabbitMQEventExchange),
		)
		if err != nil {
			logger.Fatal(err)
		}

		// closes the underlying amqp client as well
		defer rabbitmqClient.Close()
		payer = rabbitmqClient
	}

	svc := service.NewRoyaltyHubService(c, store, payer, logger)
	if rabbitmqClient != nil {
		svc.RabbitMQClient = rabbitmqClient
	}

	e := transport.InitEcho(c, logger)
	if c.DatadogAgentUrl != "" {
		tracer.Start(tracer.WithAgentAddr(c.DatadogAgentUrl))
		defer tracer.Stop()
		e.Use(ddEcho.Middleware(ddEcho.WithServiceName("royaltyhub.go")))
	}

	// has to wrap the handlers before the routes are registered
	var echoPrometheus *echo.Echo
	if c.EnablePrometheus {
		echoPrometheus = transport.NewPrometheusEcho(logger, e)
		if err := transport.RegisterEventMetrics(prometheus.DefaultRegisterer, svc.EventPubSub); err != nil {
			logger.Fatalf("Error registering event metrics: %v", err)
		}
	}

	logMw := transport.CreateLoggingMiddleware(logger)
	// strict rate limit for logins and withdrawals
	strictRateLimitMiddleware := transport.CreateRateLimitMiddleware(c.StrictRateLimit, c.BurstRateLimit)

	secured := e.Group("", tokens.Middleware(c.JWTSecret), logMw)
	securedWithStrictRateLimit := e.Group("", tokens.Middleware(c.JWTSecret), strictRateLimitMiddleware, logMw)

	transport.RegisterV2Endpoints(svc, e, secured, securedWithStrictRateLimit, strictRateLimitMiddleware,
		tokens.AdminTokenMiddleware(c.AdminToken), transport.CreateCacheClient().Middleware(), logMw)

	// Swagger UI
	docs.SwaggerInfo.Host = c.Host
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	var backgroundWg sync.WaitGroup
	backGroundCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Consume payment notifications
	backgroundWg.Add(1)
	go func() {
		defer backgroundWg.Done()
		err := svc.StartPaymentRoutine(backGroundCtx)
		if err != nil {
			sentry.CaptureException(err)
			// we want to restart in case of an error here
			svc.Logger.Fatal(err)
		}
		svc.Logger.Info("Payment routine done")
	}()

	// Report withdrawals stuck in pending
	backgroundWg.Add(1)
	go func() {
		defer backgroundWg.Done()
		err := svc.StartPendingWithdrawalRoutine(backGroundCtx)
		if err != nil {
			sentry.CaptureException(err)
			svc.Logger.Error(err)
		}
		svc.Logger.Info("Pending withdrawal check routine done")
	}()

	if c.WebhookUrl != "" {
		backgroundWg.Add(1)
		go func() {
			defer backgroundWg.Done()
			svc.StartWebhookSubscription(backGroundCtx, c.WebhookUrl)
			svc.Logger.Info("Webhook routine done")
		}()
	}

	if svc.RabbitMQClient != nil {
		backgroundWg.Add(1)
		go func() {
			defer backgroundWg.Done()
			err := svc.RabbitMQClient.StartPublishEvents(backGroundCtx, svc.SubscribeEvents)
			if err != nil {
				svc.Logger.Error(err)
				sentry.CaptureException(err)
			}
			svc.Logger.Info("Rabbit event publisher done")
		}()
	}

	if echoPrometheus != nil {
		go func() {
			if err := transport.ServePrometheus(echoPrometheus, c.PrometheusPort); err != nil && err != http.ErrServerClosed {
				logger.Error(err)
			}
		}()
	}

	go func() {
		if err := e.Start(fmt.Sprintf(":%v", c.Port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	<-backGroundCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
	if echoPrometheus != nil {
		if err := echoPrometheus.Shutdown(ctx); err != nil {
			e.Logger.Fatal(err)
		}
	}
	// Wait for graceful shutdown of background routines
	backgroundWg.Wait()
	svc.Logger.Info("RoyaltyHub exiting gracefully. Goodbye.")
}
