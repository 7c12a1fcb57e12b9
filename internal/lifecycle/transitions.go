package lifecycle

import "mk-orders/internal/models"

type Trigger string

const (
	TriggerCreate         Trigger = "create"
	TriggerSubmit         Trigger = "submit"
	TriggerAccept         Trigger = "accept"
	TriggerProcess        Trigger = "process"
	TriggerComplete       Trigger = "complete"
	TriggerShip           Trigger = "ship"
	TriggerDelete         Trigger = "delete"
	TriggerEditItems      Trigger = "edit_items"
	TriggerRecordProgress Trigger = "record_progress"
)

// transitions lists the statuses each trigger may be applied in.
var transitions = map[Trigger][]models.Status{
	TriggerSubmit:         {models.StatusDraft},
	TriggerAccept:         {models.StatusPending},
	TriggerProcess:        {models.StatusAccepted},
	TriggerComplete:       models.InProgress,
	TriggerShip:           {models.StatusCompleted},
	TriggerDelete:         models.DraftAndPending,
	TriggerEditItems:      {models.StatusDraft},
	TriggerRecordProgress: models.InProgress,
}

// ParseTrigger maps a command action name onto a trigger.
func ParseTrigger(s string) (Trigger, bool) {
	t := Trigger(s)
	if t == TriggerCreate {
		return t, true
	}
	_, ok := transitions[t]
	return t, ok
}
