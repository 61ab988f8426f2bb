package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/repclub/revenue-api/internal/auth"
	"github.com/repclub/revenue-api/internal/commission"
	"github.com/repclub/revenue-api/internal/conversion"
	"github.com/repclub/revenue-api/internal/ledger"
	"github.com/repclub/revenue-api/internal/note"
	"github.com/repclub/revenue-api/internal/plan"
	"github.com/repclub/revenue-api/internal/promotion"
	"github.com/repclub/revenue-api/internal/salesperson"
	"github.com/repclub/revenue-api/internal/subscription"
	"github.com/repclub/revenue-api/internal/utils/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading environment directly")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}

	// AutoMigrate for every model
	for _, migrate := range []func(*gorm.DB) error{
		salesperson.Migrate,
		plan.Migrate,
		promotion.Migrate,
		commission.Migrate,
		conversion.Migrate,
		subscription.Migrate,
		ledger.Migrate,
		note.Migrate,
	} {
		if err := migrate(database); err != nil {
			log.Fatal("migration failed:", err)
		}
	}

	// Handlers
	salespersonHandler := salesperson.NewHandler(salesperson.NewRepository(database))
	planHandler := plan.NewHandler(plan.NewRepository(database))
	promotionHandler := promotion.NewHandler(promotion.NewRepository(database))
	commissionHandler := commission.NewHandler(commission.NewRepository(database))
	ledgerHandler := ledger.NewHandler(ledger.NewRepository(database))
	conversionHandler := conversion.NewHandler(conversion.NewService(database))
	subscriptionHandler := subscription.NewHandler(subscription.NewRepository(database), plan.NewRepository(database), promotion.NewRepository(database))
	noteHandler := note.NewHandler(note.NewRepository(database))

	// Router
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/login", salespersonHandler.Login).Methods("POST")
	r.HandleFunc("/salespeople", salespersonHandler.Create).Methods("POST")

	// Everything else requires a token
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware)

	// Salespeople
	api.HandleFunc("/salespeople", salespersonHandler.List).Methods("GET")
	api.HandleFunc("/salespeople/{id}", salespersonHandler.Get).Methods("GET")
	api.HandleFunc("/salespeople/{id}", salespersonHandler.Update).Methods("PUT")
	api.Handle("/salespeople/{id}", auth.RequireAdmin(http.HandlerFunc(salespersonHandler.Delete))).Methods("DELETE")
	api.Handle("/salespeople/{id}/reset-password", auth.RequireAdmin(http.HandlerFunc(salespersonHandler.ResetPassword))).Methods("POST")
	api.HandleFunc("/salespeople/{id}/commissions", ledgerHandler.ListBySalesperson).Methods("GET")
	api.HandleFunc("/salespeople/{id}/conversions", conversionHandler.ListBySalesperson).Methods("GET")

	// Plans
	api.HandleFunc("/plans", planHandler.Create).Methods("POST")
	api.HandleFunc("/plans", planHandler.List).Methods("GET")
	api.HandleFunc("/plans/{id}", planHandler.Get).Methods("GET")
	api.HandleFunc("/plans/{id}", planHandler.Update).Methods("PUT")
	api.HandleFunc("/plans/{id}", planHandler.Delete).Methods("DELETE")

	// Promotions
	api.HandleFunc("/promotions", promotionHandler.Create).Methods("POST")
	api.HandleFunc("/promotions", promotionHandler.List).Methods("GET")
	api.HandleFunc("/promotions/{id}", promotionHandler.Get).Methods("GET")
	api.HandleFunc("/promotions/{id}", promotionHandler.Update).Methods("PUT")
	api.HandleFunc("/promotions/{id}", promotionHandler.Delete).Methods("DELETE")
	api.HandleFunc("/promotions/{id}/toggle", promotionHandler.Toggle).Methods("POST")

	// Commission rules and assignments. /resolve is registered ahead of the
	// {id} routes so it doesn't get captured as an ID.
	api.HandleFunc("/commission-rules/resolve", commissionHandler.Resolve).Methods("GET")
	api.HandleFunc("/commission-rules", commissionHandler.CreateRule).Methods("POST")
	api.HandleFunc("/commission-rules", commissionHandler.ListRules).Methods("GET")
	api.HandleFunc("/commission-rules/{id}", commissionHandler.GetRule).Methods("GET")
	api.HandleFunc("/commission-rules/{id}", commissionHandler.UpdateRule).Methods("PUT")
	api.HandleFunc("/commission-rules/{id}", commissionHandler.DeleteRule).Methods("DELETE")
	api.HandleFunc("/commission-assignments", commissionHandler.CreateAssignment).Methods("POST")
	api.HandleFunc("/commission-assignments", commissionHandler.ListAssignments).Methods("GET")
	api.HandleFunc("/commission-assignments/{id}", commissionHandler.GetAssignment).Methods("GET")
	api.HandleFunc("/commission-assignments/{id}", commissionHandler.UpdateAssignment).Methods("PUT")
	api.HandleFunc("/commission-assignments/{id}", commissionHandler.DeleteAssignment).Methods("DELETE")

	// Quotes and conversions
	api.HandleFunc("/quotes", conversionHandler.Quote).Methods("POST")
	api.HandleFunc("/conversions", conversionHandler.Create).Methods("POST")
	api.HandleFunc("/conversions", conversionHandler.List).Methods("GET")
	api.HandleFunc("/conversions/{id}", conversionHandler.Get).Methods("GET")
	api.HandleFunc("/conversions/{id}/close", conversionHandler.Close).Methods("POST")
	api.HandleFunc("/conversions/{id}/lost", conversionHandler.MarkLost).Methods("POST")
	api.HandleFunc("/conversions/{id}/commissions", ledgerHandler.ListByConversion).Methods("GET")

	// Commission records
	api.HandleFunc("/commissions/{id}", ledgerHandler.Get).Methods("GET")
	api.HandleFunc("/commissions/{id}/status", ledgerHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/commissions/{id}/reallocate", conversionHandler.Reallocate).Methods("POST")

	// Subscriptions
	api.HandleFunc("/subscriptions", subscriptionHandler.List).Methods("GET")
	api.HandleFunc("/subscriptions/{id}", subscriptionHandler.Get).Methods("GET")
	api.HandleFunc("/subscriptions/{id}/charges/{cycle}", subscriptionHandler.ChargePreview).Methods("GET")
	api.HandleFunc("/subscriptions/{id}/advance", conversionHandler.AdvanceSubscription).Methods("POST")
	api.HandleFunc("/subscriptions/{id}/promotions", subscriptionHandler.ApplyPromotion).Methods("POST")

	// Notes
	api.HandleFunc("/conversions/{id}/notes", noteHandler.Create).Methods("POST")
	api.HandleFunc("/conversions/{id}/notes", noteHandler.ListByConversion).Methods("GET")
	api.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("server listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
