package postgres

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"mk-orders/internal/itemset"
	"mk-orders/internal/models"
)

// orderRow stores an order as a document: scalar meta in columns, items,
// history and timestamps as JSON text.
type orderRow struct {
	ID         string     `gorm:"primary_key;type:varchar(64)"`
	Status     string     `gorm:"type:varchar(16);index"`
	Name       string     `gorm:"type:varchar(120)"`
	OrderDate  time.Time
	ShipDate   *time.Time `gorm:"index"`
	ShipMethod string     `gorm:"type:varchar(8)"`
	Carrier    string     `gorm:"type:varchar(120)"`
	Items      string     `gorm:"type:text"`
	Total      int
	History    string `gorm:"type:text"`
	Timestamps string `gorm:"type:text"`
	UpdatedAt  time.Time
}

func (orderRow) TableName() string { return "orders" }

func toRow(o models.Order) (orderRow, error) {
	items := o.Items
	if items == nil {
		items = models.Lines{}
	}
	history := o.History
	if history == nil {
		history = models.History{}
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return orderRow{}, errors.Wrap(err, "marshal items")
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return orderRow{}, errors.Wrap(err, "marshal history")
	}
	tsJSON, err := json.Marshal(o.Timestamps)
	if err != nil {
		return orderRow{}, errors.Wrap(err, "marshal timestamps")
	}

	return orderRow{
		ID:         o.ID,
		Status:     string(o.Status),
		Name:       o.Meta.Name,
		OrderDate:  o.Meta.OrderDate,
		ShipDate:   o.Meta.ShipDate,
		ShipMethod: string(o.Meta.ShipMethod),
		Carrier:    o.Meta.Carrier,
		Items:      string(itemsJSON),
		Total:      items.Total(),
		History:    string(historyJSON),
		Timestamps: string(tsJSON),
	}, nil
}

// fromRow decodes a row. Items go through itemset so rows written by older
// code in the nested map form still load; total is recomputed from them.
func fromRow(r orderRow) (models.Order, error) {
	o := models.Order{
		ID:     r.ID,
		Status: models.Status(r.Status),
		Meta: models.Meta{
			OrderDate:  r.OrderDate,
			ShipDate:   r.ShipDate,
			ShipMethod: models.ShipMethod(r.ShipMethod),
			Name:       r.Name,
			Carrier:    r.Carrier,
		},
		Items:   itemset.NormalizeJSON([]byte(r.Items)),
		History: models.History{},
	}
	o.Total = o.Items.Total()

	if r.History != "" {
		if err := json.Unmarshal([]byte(r.History), &o.History); err != nil {
			return models.Order{}, errors.Wrapf(err, "order %s: decode history", r.ID)
		}
	}
	if r.Timestamps != "" {
		if err := json.Unmarshal([]byte(r.Timestamps), &o.Timestamps); err != nil {
			return models.Order{}, errors.Wrapf(err, "order %s: decode timestamps", r.ID)
		}
	}
	return o, nil
}
