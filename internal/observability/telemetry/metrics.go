package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Conversation metrics
	TurnsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_turns_processed_total",
		Help: "Total de turnos de diálogo processados",
	}, []string{"language", "state"})

	IntentClassifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_intent_classifications_total",
		Help: "Total de classificações de intenção por origem",
	}, []string{"intent", "provenance"})

	ClassifierTierFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concierge_classifier_fallbacks_total",
		Help: "Turnos que esgotaram regras e provedor e caíram no intent padrão",
	})

	ProviderLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_provider_latency_seconds",
		Help:    "Latência das chamadas ao provedor de classificação",
		Buckets: prometheus.DefBuckets,
	})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "concierge_active_sessions",
		Help: "Sessões de diálogo não terminais em andamento",
	})

	StateTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_state_transitions_total",
		Help: "Transições de estado do diálogo",
	}, []string{"from", "to"})

	BookingsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_bookings_executed_total",
		Help: "Execuções de reserva por intenção e resultado",
	}, []string{"intent", "status"})

	// Infrastructure metrics
	SessionStoreLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_session_store_latency_seconds",
		Help:    "Latência de load/save do armazenamento de sessões",
		Buckets: prometheus.DefBuckets,
	})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_database_latency_seconds",
		Help:    "Latência de queries no banco",
		Buckets: prometheus.DefBuckets,
	})
)
