package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calemorrison/funnel-api/internal/infra/analytics"
	"github.com/calemorrison/funnel-api/internal/infra/database"
	"github.com/calemorrison/funnel-api/internal/infra/http/handlers"
	"github.com/calemorrison/funnel-api/internal/infra/http/middleware"
	"github.com/calemorrison/funnel-api/internal/infra/integration/crm"
	"github.com/calemorrison/funnel-api/internal/infra/integration/gtm"
	"github.com/calemorrison/funnel-api/internal/infra/mail"
	"github.com/calemorrison/funnel-api/internal/infra/queue"
	"github.com/calemorrison/funnel-api/internal/infra/worker"
	"github.com/calemorrison/funnel-api/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	eventRepo := database.NewEventRepository(db)
	funnelRepo := database.NewFunnelRepository(db)

	// 2. Tag queue. Without a broker the in-process data layer keeps the
	// pipeline functional (tags just never leave the process).
	var tagSink usecase.AnalyticsSink
	var rabbitMQ *queue.RabbitMQ

	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err = queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Fatal(err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		tagSink = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		// 3. Worker: drains the tag queue into the collector and CRM.
		collector := gtm.NewClient(os.Getenv("GTM_ENDPOINT"), os.Getenv("GTM_API_SECRET"))
		crmClient := crm.NewClient()
		tagWorker := queue.NewWorker(rabbitMQ.Ch, collector, crmClient)
		go tagWorker.Start(queue.QueueName)
	} else {
		log.Println("⚠️ RABBITMQ_HOST not set, tags stay in the in-process data layer")
		tagSink = analytics.NewDataLayer()
	}

	// 4. Owner notification
	var notifier usecase.LeadNotifier
	if os.Getenv("MAIL_HOST") != "" {
		notifier = mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		)
	}

	// 5. Use cases
	submitLeadUC := usecase.NewSubmitLeadUseCase(
		leadRepo, eventRepo, tagSink, notifier, os.Getenv("LEAD_NOTIFY_TO"),
	)
	trackEventUC := usecase.NewTrackEventUseCase(eventRepo, tagSink)

	// 6. Handlers
	leadHandler := handlers.NewLeadHandler(submitLeadUC)
	eventHandler := handlers.NewEventHandler(trackEventUC)
	funnelHandler := handlers.NewFunnelHandler(funnelRepo)

	healthHandler := handlers.NewHealthHandler(db, nil)
	if rabbitMQ != nil {
		healthHandler = handlers.NewHealthHandler(db, rabbitMQ.Conn)
	}

	// 7. Stats worker
	statsWorker := worker.NewFunnelStatsWorker(db)
	go statsWorker.Start(context.Background())

	// 8. Router
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Post("/api/leads", leadHandler.Handle)
	r.Post("/api/events", eventHandler.Handle)
	r.Get("/api/funnels", funnelHandler.HandleList)
	r.Get("/api/funnels/{slug}", funnelHandler.HandleGet)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🔥 funnel-api listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
