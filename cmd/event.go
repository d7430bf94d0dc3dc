package cmd

import (
	"context"
	"log"
	"slices"
	"time"

	"github.com/frahmantamala/family-ledger/internal/core/events"
	"github.com/frahmantamala/family-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Manage events: publish test events through the bus and, when enabled, the broker`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a test event to the event bus for testing and debugging. Ledger event types are forwarded to the broker when it is enabled.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var eventData string

func publishTestEvent(eventType string) {
	lg := logger.LoggerWrapper()

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	eventBus, client, err := initEventBus(cfg.Broker, lg)
	if err != nil {
		log.Fatalf("failed to init event bus: %v", err)
	}
	if client != nil {
		defer client.Close()
	}

	if !slices.Contains(events.LedgerEventTypes, eventType) {
		lg.Warn("event type is not a ledger event; only the test handler will see it", "event_type", eventType)
	}

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		lg.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.New(eventType, map[string]interface{}{
		"message": eventData,
		"source":  "cli",
	})


	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := eventBus.PublishSync(ctx, testEvent); err != nil {
		lg.Error("event delivery failed", "event_id", testEvent.ID, "error", err)
		return
	}
	lg.Info("event delivered", "event_id", testEvent.ID)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)
}
