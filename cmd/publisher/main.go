package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"mk-orders/internal/configs"
	"mk-orders/internal/delivery/kafka"
	"mk-orders/internal/service"
)

// Publishes the lifecycle commands in COMMAND_FILE, a JSON array of
// {order_id, action, carrier, shipped_date}, to the command topic.
func main() {
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	logrus.Print("config loaded")

	body, err := os.ReadFile(cfg.CommandFile)
	if err != nil {
		logrus.Fatalf("read command file: %s", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		logrus.Fatalf("command file must be a JSON array: %s", err)
	}

	pub := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaCommandTopic)
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sent := 0
	for i, msg := range raw {
		cmd, err := service.DecodeCommand(msg)
		if err != nil {
			logrus.WithField("index", i).Errorf("skip command: %s", err)
			continue
		}
		if err := pub.Publish(ctx, cmd.OrderID, msg); err != nil {
			logrus.Fatalf("publish failed: %s", err)
		}
		sent++
	}
	logrus.WithFields(logrus.Fields{"sent": sent, "topic": cfg.KafkaCommandTopic}).Print("commands published")
}
