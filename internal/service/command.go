package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mk-orders/internal/lifecycle"
)

// Command is a lifecycle action sent over the broker by downstream roles.
type Command struct {
	OrderID     string     `json:"order_id"     validate:"required"`
	Action      string     `json:"action"       validate:"required,oneof=accept process complete ship"`
	Carrier     string     `json:"carrier"      validate:"omitempty,max=120"`
	ShippedDate *time.Time `json:"shipped_date"`
}

func DecodeCommand(payload []byte) (Command, error) {
	var cmd Command
	dec := json.NewDecoder(bytes.NewReader(payload))
	if err := dec.Decode(&cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cmd, nil
}

// HandleMessage applies one broker command through the same path as the HTTP API.
func (s *Service) HandleMessage(ctx context.Context, payload []byte) error {
	cmd, err := DecodeCommand(payload)
	if err != nil {
		commandsTotal.WithLabelValues("unknown", "decode_error").Inc()
		return err
	}
	if err := s.v.Struct(cmd); err != nil {
		commandsTotal.WithLabelValues(cmd.Action, "invalid").Inc()
		return lifecycle.ValidationError(err)
	}

	trigger, ok := lifecycle.ParseTrigger(cmd.Action)
	if !ok {
		commandsTotal.WithLabelValues(cmd.Action, "invalid").Inc()
		return fmt.Errorf("%w: unknown action %q", lifecycle.ErrValidation, cmd.Action)
	}

	switch trigger {
	case lifecycle.TriggerAccept:
		_, err = s.Accept(ctx, cmd.OrderID)
	case lifecycle.TriggerProcess:
		_, err = s.StartProcessing(ctx, cmd.OrderID)
	case lifecycle.TriggerComplete:
		_, err = s.Complete(ctx, cmd.OrderID)
	case lifecycle.TriggerShip:
		sh := lifecycle.Shipment{Carrier: cmd.Carrier}
		if cmd.ShippedDate != nil {
			sh.ShippedDate = *cmd.ShippedDate
		}
		_, err = s.Ship(ctx, cmd.OrderID, sh)
	default:
		err = fmt.Errorf("%w: action %q is not accepted over the broker", lifecycle.ErrValidation, cmd.Action)
	}
	if err != nil {
		commandsTotal.WithLabelValues(cmd.Action, errorKind(err)).Inc()
		return err
	}

	commandsTotal.WithLabelValues(cmd.Action, "ok").Inc()
	logrus.WithFields(logrus.Fields{"id": cmd.OrderID, "action": cmd.Action}).Debug("command applied")
	return nil
}
