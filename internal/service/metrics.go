package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_transitions_total",
			Help: "Lifecycle triggers applied, by trigger and resulting status",
		},
		[]string{"trigger", "to"},
	)

	rejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_transition_rejections_total",
			Help: "Lifecycle triggers refused, by trigger and error kind",
		},
		[]string{"trigger", "kind"},
	)

	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_commands_total",
			Help: "Lifecycle commands received from the broker, by action and outcome",
		},
		[]string{"action", "outcome"},
	)
)
