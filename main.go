package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"ecotrackAPI/handlers"
	"ecotrackAPI/internal/identity"
	"ecotrackAPI/internal/storage"
	"ecotrackAPI/middleware"
	"ecotrackAPI/services"
)

var (
	logger               *zap.SugaredLogger
	mongoClient          *mongo.Client
	verifier             *identity.FirebaseVerifier
	challengeService     *services.ChallengeService
	tipService           *services.TipService
	eventService         *services.EventService
	userChallengeService *services.UserChallengeService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	logger = zl.Sugar()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		logger.Fatal("MONGODB_URI environment variable is not set")
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "EcoTrackDB"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err = mongo.Connect(ctx, options.Client().
		ApplyURI(mongoURI).
		SetMaxPoolSize(25).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30*time.Minute))
	if err != nil {
		logger.Fatalw("Failed to connect to MongoDB", "error", err)
	}

	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatalw("Failed to ping MongoDB", "error", err)
	}
	logger.Info("Successfully connected to MongoDB")

	db := mongoClient.Database(dbName)

	if err := storage.EnsureIndexes(ctx, db); err != nil {
		logger.Fatalw("Failed to ensure indexes", "error", err)
	}

	verifier, err = identity.NewFirebaseVerifier(ctx)
	if err != nil {
		logger.Fatalw("Failed to initialize Firebase", "error", err)
	}
	logger.Info("Firebase initialized successfully")

	challengeStore := storage.NewMongoChallengeStore(db)
	tipStore := storage.NewMongoTipStore(db)
	eventStore := storage.NewMongoEventStore(db)
	userChallengeStore := storage.NewMongoUserChallengeStore(db)

	challengeService = services.NewChallengeService(challengeStore, userChallengeStore, logger)
	tipService = services.NewTipService(tipStore, logger)
	eventService = services.NewEventService(eventStore, logger)
	userChallengeService = services.NewUserChallengeService(userChallengeStore, verifier, logger)

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		logger.Info("Closing MongoDB connection...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Errorw("MongoDB disconnect error", "error", err)
		}
		logger.Sync()
	}()

	challengeHandler := handlers.NewChallengeHandler(challengeService, logger)
	tipHandler := handlers.NewTipHandler(tipService, logger)
	eventHandler := handlers.NewEventHandler(eventService, logger)
	userChallengeHandler := handlers.NewUserChallengeHandler(userChallengeService, logger)

	r := mux.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))

	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"ok": false, "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public reads
	api.HandleFunc("/challenges", challengeHandler.ListChallenges).Methods("GET")
	api.HandleFunc("/challenges/{id}", challengeHandler.GetChallenge).Methods("GET")
	api.HandleFunc("/tips", tipHandler.ListTips).Methods("GET")
	api.HandleFunc("/events", eventHandler.ListEvents).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware(verifier))

	protected.HandleFunc("/challenges", challengeHandler.CreateChallenge).Methods("POST")
	protected.HandleFunc("/challenges/join/{id}", challengeHandler.JoinChallenge).Methods("POST")
	protected.HandleFunc("/challenges/{id}", challengeHandler.UpdateChallenge).Methods("PATCH")
	protected.HandleFunc("/challenges/{id}", challengeHandler.DeleteChallenge).Methods("DELETE")

	protected.HandleFunc("/tips", tipHandler.CreateTip).Methods("POST")
	protected.HandleFunc("/tips/{id}/upvote", tipHandler.UpvoteTip).Methods("POST")
	protected.HandleFunc("/events", eventHandler.CreateEvent).Methods("POST")

	protected.HandleFunc("/user-challenges/my-activities", userChallengeHandler.ListMyActivities).Methods("GET")
	protected.HandleFunc("/user-challenges/participants/{id}", userChallengeHandler.ListParticipants).Methods("GET")
	protected.HandleFunc("/user-challenges/{id}/progress", userChallengeHandler.UpdateProgress).Methods("PATCH")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-ID"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-ID"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalw("Error starting server", "error", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	logger.Infow("Got signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorw("Server shutdown error", "error", err)
	}

	logger.Info("Server shutdown complete")
}
