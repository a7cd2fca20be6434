package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Account metrics
	AccountsCreated prometheus.Counter

	// Transaction metrics
	TransactionsApplied   *prometheus.CounterVec
	TransactionRejections *prometheus.CounterVec
	ApplyDuration         prometheus.Histogram
	TransactionAmount     prometheus.Histogram

	// Balance query metrics
	BalanceReads    *prometheus.CounterVec
	SnapshotLookups prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "balances_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		TransactionsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "balances_transactions_applied_total",
				Help: "Total number of transactions applied by direction",
			},
			[]string{"direction"},
		),
		TransactionRejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "balances_transaction_rejections_total",
				Help: "Total number of rejected transactions by reason",
			},
			[]string{"reason"},
		),
		ApplyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "balances_apply_duration_seconds",
			Help:    "Duration of transaction application",
			Buckets: prometheus.DefBuckets,
		}),
		TransactionAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "balances_transaction_amount",
			Help:    "Transaction amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		BalanceReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "balances_balance_reads_total",
				Help: "Total balance reads by kind (live or as_of)",
			},
			[]string{"kind"},
		),
		SnapshotLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "balances_snapshot_lookups_total",
			Help: "Total point-in-time snapshot lookups",
		}),
	}
}
