package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != api.StageDev && stage != api.StageProd {
		panic("stage must be either dev or prod")
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	opponentDelay := api.DefaultOpponentDelay
	if delayEnv := os.Getenv("OPPONENT_DELAY_MS"); delayEnv != "" {
		delayMs, err := strconv.Atoi(delayEnv)
		if err != nil {
			panic(err)
		}
		opponentDelay = time.Duration(delayMs) * time.Millisecond
	}

	var allowedOrigins []string
	if originsEnv := os.Getenv("ALLOWED_ORIGINS"); originsEnv != "" {
		allowedOrigins = strings.Split(originsEnv, ",")
	}

	opts := []api.Option{
		api.WithStage(stage, allowedOrigins...),
		api.WithOpponentDelay(opponentDelay),
	}

	// Analytics are optional; the game runs without a database
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		migrationDir := os.Getenv("MIGRATION_DIR")
		if migrationDir == "" {
			migrationDir = db.DefaultMigrationDir
		}
		conn := db.MustConnectToDb(psqlUrl, migrationDir)
		defer conn.Close()

		opts = append(opts, api.WithQuerier(sqlc.New(conn)))
	} else {
		log.Println("DATABASE_URL not set; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager()
	go sessionManager.CleanupPeriodically()

	rp := api.NewRequestProcessor(sessionManager, mb.NewBattleshipGameManager(), opts...)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	log.Printf("Listening to port %d\n", port)
	log.Fatalln(http.ListenAndServe("0.0.0.0:"+strconv.Itoa(port), mux))
}
