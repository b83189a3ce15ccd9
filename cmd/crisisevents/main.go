// Command crisisevents prints the most recent crisis detections recorded in
// Redis as JSON lines. Usage: crisisevents [limit]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/wolfman30/saathi/internal/app/bootstrap"
	appconfig "github.com/wolfman30/saathi/internal/config"
	"github.com/wolfman30/saathi/internal/crisislog"
	"github.com/wolfman30/saathi/pkg/logging"
)

const defaultLimit = 50

type eventLister interface {
	List(ctx context.Context, limit int64) ([]crisislog.Event, error)
}

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	limit := int64(defaultLimit)
	if len(os.Args) >= 2 {
		n, err := strconv.ParseInt(os.Args[1], 10, 64)
		if err != nil {
			log.Fatalf("invalid limit: %v", err)
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient == nil {
		log.Fatal("REDIS_ADDR must point at a reachable Redis")
	}
	defer func() { _ = redisClient.Close() }()

	if err := printEvents(ctx, bootstrap.BuildCrisisLog(redisClient, cfg, logger), limit, os.Stdout); err != nil {
		log.Fatalf("list crisis events: %v", err)
	}
}

func printEvents(ctx context.Context, events eventLister, limit int64, w io.Writer) error {
	list, err := events.List(ctx, limit)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, evt := range list {
		if err := enc.Encode(evt); err != nil {
			return fmt.Errorf("write event: %w", err)
		}
	}
	return nil
}
