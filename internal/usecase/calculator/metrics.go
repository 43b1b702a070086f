package calculator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var evaluationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "calculator_evaluations_total",
		Help: "Total number of evaluated expressions by outcome (ok or error kind)",
	},
	[]string{"outcome"},
)

const outcomeOK = "ok"
