package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"events-cms-backend/config"
	"events-cms-backend/constants"
	"events-cms-backend/database"
	"events-cms-backend/handlers"
	"events-cms-backend/middleware"
	"events-cms-backend/services"
	"events-cms-backend/storage"
	"events-cms-backend/utils"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	// Connexion à MongoDB
	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Erreur de connexion à MongoDB: %v", err)
	}
	defer database.Close()

	// Stockage objet (S3 ou MinIO)
	gateway, err := newGateway(cfg)
	if err != nil {
		log.Fatalf("❌ Erreur d'initialisation du stockage: %v", err)
	}
	log.Printf("✓ Stockage objet initialisé (%s, bucket %s)", cfg.Storage.Driver, cfg.Storage.Bucket)

	// Suivi des clés émises (Redis, optionnel)
	tracker, redisPing := newTracker(cfg)

	// Créer les repositories
	adminRepo := database.NewAdminRepository(database.DB)
	eventRepo := database.NewEventRepository(database.DB)
	categoryRepo := database.NewCategoryRepository(database.DB)

	// Créer les services
	slackService := services.NewSlackService(cfg.SlackWebhookURL)
	authService := services.NewAuthService(adminRepo, cfg.JWTSecret, cfg.JWTTTL)
	uploadService := services.NewMediaUploadService(gateway, tracker, cfg.Upload.MultipartThreshold, cfg.Upload.PartSize)
	eventService := services.NewEventService(eventRepo, categoryRepo, uploadService, slackService)
	categoryService := services.NewCategoryService(categoryRepo)
	statsService := services.NewStatsService(adminRepo, eventRepo, categoryRepo)

	// Créer les handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure)
	mediaHandler := handlers.NewMediaHandler(uploadService)
	eventHandler := handlers.NewEventHandler(eventService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(statsService)
	publicHandler := handlers.NewPublicHandler(eventService, categoryService)
	healthHandler := handlers.NewHealthHandler(cfg.Environment, func(context.Context) error { return database.Ping() }, redisPing)

	// Créer le routeur
	router := mux.NewRouter()
	router.Use(middleware.Logging(slackService))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, constants.ErrRouteNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	})

	// Route de santé (health check)
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Espace admin : origines listées, cookie de session
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.CORS(cfg.CORSOrigins))
	admin.HandleFunc("/login", handlers.Handle(authHandler.Login)).Methods("POST", "OPTIONS")
	admin.HandleFunc("/logout", handlers.Handle(authHandler.Logout)).Methods("POST", "OPTIONS")

	// Routes admin protégées
	protected := admin.NewRoute().Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))
	protected.Use(middleware.RequireAdmin(adminRepo))

	protected.HandleFunc("/check-auth", handlers.Handle(authHandler.CheckAuth)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/stats", handlers.Handle(adminHandler.GetStats)).Methods("GET", "OPTIONS")

	// Médias : URLs présignées et sessions multipart
	protected.HandleFunc("/event-media/signed-url", handlers.Handle(mediaHandler.SignedURL)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/event-media/complete-multipart-batch", handlers.Handle(mediaHandler.CompleteMultipartBatch)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/event-media/abort-multipart", handlers.Handle(mediaHandler.AbortMultipart)).Methods("DELETE", "OPTIONS")

	// Événements
	protected.HandleFunc("/event/create", handlers.Handle(eventHandler.Create)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/events", handlers.Handle(eventHandler.List)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/event/{id}", handlers.Handle(eventHandler.Get)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/event/{id}", handlers.Handle(eventHandler.Update)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/event/{id}", handlers.Handle(eventHandler.Delete)).Methods("DELETE", "OPTIONS")

	// Catégories
	protected.HandleFunc("/event-category", handlers.Handle(categoryHandler.Create)).Methods("POST", "OPTIONS")
	protected.HandleFunc("/event-category", handlers.Handle(categoryHandler.List)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/event-category/{id}", handlers.Handle(categoryHandler.Get)).Methods("GET", "OPTIONS")
	protected.HandleFunc("/event-category/{id}", handlers.Handle(categoryHandler.Update)).Methods("PUT", "OPTIONS")
	protected.HandleFunc("/event-category/{id}", handlers.Handle(categoryHandler.Delete)).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/event-category/{id}/status", handlers.Handle(categoryHandler.SetStatus)).Methods("PATCH", "OPTIONS")

	// Surface publique en lecture seule
	public := router.PathPrefix("/api/v1").Subrouter()
	public.Use(middleware.PublicCORS())
	public.HandleFunc("/events", handlers.Handle(publicHandler.Events)).Methods("GET", "OPTIONS")
	public.HandleFunc("/events/category/{categorySlug}", handlers.Handle(publicHandler.EventsByCategory)).Methods("GET", "OPTIONS")
	public.HandleFunc("/events/{slug}", handlers.Handle(publicHandler.EventBySlug)).Methods("GET", "OPTIONS")
	public.HandleFunc("/categories", handlers.Handle(publicHandler.Categories)).Methods("GET", "OPTIONS")
	public.HandleFunc("/categories/all", handlers.Handle(publicHandler.AllCategories)).Methods("GET", "OPTIONS")
	public.HandleFunc("/categories/{slug}", handlers.Handle(publicHandler.CategoryBySlug)).Methods("GET", "OPTIONS")

	// Démarrer le serveur
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Gérer l'arrêt gracieux du serveur
	go func() {
		log.Printf("🚀 Serveur démarré sur http://%s", addr)
		log.Printf("📝 Environnement: %s", cfg.Environment)
		log.Printf("🗄️  Base de données: MongoDB (%s)", cfg.MongoDB)
		log.Println("📋 Routes disponibles:")
		log.Println("   GET    /health                                   - Health check")
		log.Println("")
		log.Println("   🔐 Admin:")
		log.Println("   POST   /admin/login                              - Connexion")
		log.Println("   POST   /admin/logout                             - Déconnexion")
		log.Println("   GET    /admin/check-auth                         - Session courante")
		log.Println("   GET    /admin/stats                              - Statistiques")
		log.Println("   POST   /admin/event-media/signed-url             - URLs présignées")
		log.Println("   POST   /admin/event-media/complete-multipart-batch - Finaliser des uploads multipart")
		log.Println("   DELETE /admin/event-media/abort-multipart        - Annuler un upload multipart")
		log.Println("   POST   /admin/event/create                       - Créer un événement")
		log.Println("   GET    /admin/events                             - Liste des événements")
		log.Println("   GET    /admin/event/{id}                         - Détails événement")
		log.Println("   PUT    /admin/event/{id}                         - Modifier un événement")
		log.Println("   DELETE /admin/event/{id}                         - Supprimer un événement")
		log.Println("   POST   /admin/event-category                     - Créer une catégorie")
		log.Println("   GET    /admin/event-category                     - Liste des catégories")
		log.Println("   GET    /admin/event-category/{id}                - Détails catégorie")
		log.Println("   PUT    /admin/event-category/{id}                - Modifier une catégorie")
		log.Println("   DELETE /admin/event-category/{id}                - Supprimer une catégorie")
		log.Println("   PATCH  /admin/event-category/{id}/status         - Activer / désactiver")
		log.Println("")
		log.Println("   🌍 Public:")
		log.Println("   GET    /api/v1/events                            - Événements publiés à venir")
		log.Println("   GET    /api/v1/events/category/{categorySlug}    - Événements d'une catégorie")
		log.Println("   GET    /api/v1/events/{slug}                     - Détails événement")
		log.Println("   GET    /api/v1/categories                        - Catégories actives")
		log.Println("   GET    /api/v1/categories/all                    - Toutes les catégories actives")
		log.Println("   GET    /api/v1/categories/{slug}                 - Détails catégorie")
		log.Println("\n✨ Le serveur est prêt à recevoir des requêtes!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur du serveur: %v", err)
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Arrêt du serveur...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Erreur lors de l'arrêt du serveur: %v", err)
	}
	log.Println("✓ Serveur arrêté proprement")
}

// newGateway crée la passerelle de stockage selon STORAGE_DRIVER
func newGateway(cfg *config.Config) (storage.Gateway, error) {
	s := cfg.Storage
	switch s.Driver {
	case "minio":
		return storage.NewMinioGateway(storage.MinioConfig{
			Endpoint:        s.Endpoint,
			Region:          s.Region,
			Bucket:          s.Bucket,
			AccessKeyID:     s.AccessKeyID,
			SecretAccessKey: s.SecretAccessKey,
			UseSSL:          s.UseSSL,
			PublicBaseURL:   s.PublicBaseURL,
			PresignExpiry:   cfg.Upload.PresignExpiry,
		})
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Gateway(ctx, storage.S3Config{
			Region:          s.Region,
			Bucket:          s.Bucket,
			AccessKeyID:     s.AccessKeyID,
			SecretAccessKey: s.SecretAccessKey,
			Endpoint:        s.Endpoint,
			PublicBaseURL:   s.PublicBaseURL,
			PresignExpiry:   cfg.Upload.PresignExpiry,
		})
	}
}

// newTracker connecte Redis quand REDIS_URL est configuré. Sans Redis,
// le tracker inactif est utilisé et le health check ne le vérifie pas.
func newTracker(cfg *config.Config) (storage.KeyTracker, handlers.Pinger) {
	if cfg.RedisURL == "" {
		return storage.NewDisabledKeyTracker(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ REDIS_URL invalide: %v", err)
	}
	tracker := storage.NewRedisKeyTracker(redis.NewClient(opts), cfg.Upload.TrackingTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tracker.Ping(ctx); err != nil {
		log.Fatalf("❌ Erreur de connexion à Redis: %v", err)
	}
	log.Println("✓ Redis connecté (suivi des clés d'upload)")

	return tracker, tracker.Ping
}
