package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"events-cms-backend/config"
	"events-cms-backend/database"
	"events-cms-backend/services"
)

func main() {
	name := flag.String("name", "", "nom de l'administrateur")
	email := flag.String("email", "", "email de connexion")
	password := flag.String("password", "", "mot de passe (4 à 20 caractères)")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("❌ -name, -email et -password sont requis")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	if err := database.Connect(cfg.MongoURI, cfg.MongoDB); err != nil {
		log.Fatalf("❌ Erreur de connexion à MongoDB: %v", err)
	}
	defer database.Close()

	log.Println("🔐 Création de l'administrateur...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authService := services.NewAuthService(database.NewAdminRepository(database.DB), cfg.JWTSecret, cfg.JWTTTL)
	admin, err := authService.CreateAdmin(ctx, *name, *email, *password)
	if err != nil {
		log.Printf("❌ Impossible de créer l'administrateur: %v", err)
		return
	}

	fmt.Printf("\n✅ Administrateur créé: %s <%s>\n", admin.Name, admin.Email)
}
