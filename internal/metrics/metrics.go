// Package metrics espone la superficie HTTP di servizio del bot: un endpoint
// di keep-alive e le metriche d'uso lette dal database.
package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akuma-39/botTelegramPortafoglio/internal/database"
)

// NewRouter costruisce il router con GET /ping e GET /metrics. Condivide il
// pool del bot ma non tocca mai lo stato delle conversazioni.
func NewRouter(pool *pgxpool.Pool, startedAt time.Time) *gin.Engine {
	router := gin.Default()

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	router.GET("/metrics", func(c *gin.Context) {
		ctx := c.Request.Context()

		today, err := database.CountTransactionsToday(ctx, pool)
		if err != nil {
			log.Printf("errore nel calcolo delle metriche: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "metriche non disponibili"})
			return
		}
		activeToday, err := database.ActiveUsersToday(ctx, pool)
		if err != nil {
			log.Printf("errore nel calcolo delle metriche: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "metriche non disponibili"})
			return
		}
		total, err := database.TotalUsers(ctx, pool)
		if err != nil {
			log.Printf("errore nel calcolo delle metriche: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "metriche non disponibili"})
			return
		}
		growth, err := database.UserGrowthPercent(ctx, pool)
		if err != nil {
			log.Printf("errore nel calcolo delle metriche: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "metriche non disponibili"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"timestamp":          time.Now().Format(time.RFC3339),
			"uptime":             time.Since(startedAt).String(),
			"transazioni_oggi":   today,
			"utenti_attivi_oggi": activeToday,
			"utenti_totali":      total,
			"crescita_utenti":    growth,
		})
	})

	return router
}
