package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"chocshop/internal/cli"
	"chocshop/internal/database"
	"chocshop/internal/repositories"
	"chocshop/internal/services"
	"chocshop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables.
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "chocshop.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "chocshop_dev_secret")
	viper.SetDefault("SEED_CATALOG", true)
	viper.AutomaticEnv() // Load environment variables

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// --- Open the database session ---
	// One handle is held for the process lifetime; every component that
	// needs storage receives it through its repository.
	db, err := database.Open(database.Config{
		Driver: viper.GetString("DATABASE_DRIVER"),
		DSN:    viper.GetString("DATABASE_DSN"),
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// --- Initialize Repositories ---
	chocolateRepo := repositories.NewGORMChocolateRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	staffRepo := repositories.NewGORMStaffRepository(db)

	if viper.GetBool("SEED_CATALOG") {
		if err := database.SeedCatalog(chocolateRepo); err != nil {
			log.Warnf("Failed to seed catalog: %v", err)
		}
	}

	// --- Optional RabbitMQ client for order lifecycle events ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Warnf("Failed to initialize RabbitMQ client, order events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(staffRepo, viper.GetString("JWT_SECRET"))
	chocolateService := services.NewChocolateService(chocolateRepo)
	customerService := services.NewCustomerService(customerRepo, orderRepo)
	orderService := services.NewOrderService(orderRepo, mqClient)
	cartService := services.NewCartService(orderRepo, chocolateRepo, customerRepo, mqClient)

	// --- Run the interactive shell ---
	shell := cli.NewShell(os.Stdin, os.Stdout, authService, chocolateService, customerService, orderService, cartService)
	if !shell.Login() {
		return
	}
	shell.Run()
}
