package models

import (
	"time"
)

type ShipMethod string

const (
	ShipAir ShipMethod = "AIR"
	ShipSea ShipMethod = "SEA"
)

type Meta struct {
	OrderDate  time.Time  `json:"order_date"`
	ShipDate   *time.Time `json:"ship_date"`
	ShipMethod ShipMethod `json:"ship_method"       validate:"omitempty,oneof=AIR SEA"`
	Name       string     `json:"name"              validate:"max=120"`
	Carrier    string     `json:"carrier,omitempty" validate:"max=120"`
}

type Order struct {
	ID         string     `json:"id"`
	Status     Status     `json:"status"`
	Meta       Meta       `json:"meta"`
	Items      Lines      `json:"items"`
	Total      int        `json:"total"`
	History    History    `json:"history"`
	Timestamps Timestamps `json:"timestamps"`
}

// Clone returns a copy that shares no slices or stamps with o.
func (o Order) Clone() Order {
	c := o
	c.Items = o.Items.Clone()
	if o.History != nil {
		c.History = make(History, len(o.History))
		copy(c.History, o.History)
	}
	c.Timestamps = Timestamps{}.Merge(o.Timestamps)
	if o.Meta.ShipDate != nil {
		c.Meta.ShipDate = Stamp(*o.Meta.ShipDate)
	}
	return c
}

func (o Order) ShipDateOrZero() time.Time {
	if o.Meta.ShipDate == nil {
		return time.Time{}
	}
	return *o.Meta.ShipDate
}
