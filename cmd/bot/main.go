package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/database"
	"github.com/Akuma-39/botTelegramPortafoglio/internal/engine"
	"github.com/Akuma-39/botTelegramPortafoglio/internal/metrics"
	"github.com/Akuma-39/botTelegramPortafoglio/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("file .env non trovato, uso le variabili d'ambiente")
	}

	ctx := context.Background()

	pool, err := database.ConnectDB(ctx)
	if err != nil {
		log.Fatalf("errore di connessione al database: %v", err)
	}
	defer pool.Close()

	if err := database.CreateTables(ctx, pool); err != nil {
		log.Fatalf("errore nella creazione delle tabelle: %v", err)
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("assicurati di aver impostato TELEGRAM_BOT_TOKEN nelle variabili d'ambiente")
	}

	eng := engine.New(database.NewStore(pool))

	bot, err := telegram.New(token, eng)
	if err != nil {
		log.Fatalf("errore nell'avvio del bot: %v", err)
	}

	// Keep-alive periodico del database, come da istanze gratuite che si
	// addormentano senza traffico.
	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() {
		if err := database.KeepAlive(ctx, pool); err != nil {
			log.Printf("keep-alive fallito: %v", err)
		}
	}); err != nil {
		log.Fatalf("errore nella configurazione del keep-alive: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Superficie HTTP di servizio (/ping, /metrics) in parallelo al polling.
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	router := metrics.NewRouter(pool, time.Now())
	go func() {
		if err := router.Run(":" + port); err != nil {
			log.Fatalf("errore del server metriche: %v", err)
		}
	}()

	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("errore del bot: %v", err)
	}
}
