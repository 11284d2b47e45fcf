package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// TriggerClearance settles an IMMEDIATE asset when clearance is granted
	TriggerClearance = "clearance"
	// TriggerEvent settles on a recorded settlement event
	TriggerEvent = "event"
	// TriggerManual settles through an explicit settlement call
	TriggerManual = "manual"
)

const (
	// InvariantFractionSum is the fraction conservation invariant
	InvariantFractionSum = "fraction_sum"
	// InvariantSettlementEvidence is the SETTLED-needs-evidence invariant
	InvariantSettlementEvidence = "settlement_evidence"
)

// LedgerMetrics captures ledger outcomes
type LedgerMetrics struct {
	clearanceVerdicts   *prometheus.CounterVec
	settlements         *prometheus.CounterVec
	custodyTransfers    prometheus.Counter
	provenanceBreaks    prometheus.Counter
	fractionTransfers   prometheus.Counter
	invariantViolations *prometheus.CounterVec
	relayPublished      *prometheus.CounterVec
	relayFailures       prometheus.Counter
}

var (
	ledgerMetricsOnce sync.Once
	ledgerMetrics     *LedgerMetrics
)

// Ledger returns the singleton ledger metrics registered on the default registerer
func Ledger() *LedgerMetrics {
	ledgerMetricsOnce.Do(func() {
		ledgerMetrics = NewLedgerMetrics(prometheus.DefaultRegisterer)
	})
	return ledgerMetrics
}

// NewLedgerMetrics creates ledger metrics registered on registerer
func NewLedgerMetrics(registerer prometheus.Registerer) *LedgerMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &LedgerMetrics{
		clearanceVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_clearance_verdicts_total",
			Help: "Clearance verdicts by resulting status.",
		}, []string{"status"}),
		settlements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_settlements_total",
			Help: "Assets moved to SETTLED by settlement rule and trigger.",
		}, []string{"rule", "trigger"}),
		custodyTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_custody_transfers_total",
			Help: "Custody transfers appended to a chain.",
		}),
		provenanceBreaks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_provenance_breaks_total",
			Help: "Custody transfers or audits that broke the provenance chain.",
		}),
		fractionTransfers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_fraction_transfers_total",
			Help: "Fraction transfers applied.",
		}),
		invariantViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_invariant_violations_total",
			Help: "Ledger invariant violations by invariant.",
		}, []string{"invariant"}),
		relayPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_relay_published_total",
			Help: "Changes journal entries published by subject type.",
		}, []string{"subject_type"}),
		relayFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_relay_batch_failures_total",
			Help: "Relay batches that exhausted their publish retries.",
		}),
	}

	registerer.MustRegister(
		m.clearanceVerdicts,
		m.settlements,
		m.custodyTransfers,
		m.provenanceBreaks,
		m.fractionTransfers,
		m.invariantViolations,
		m.relayPublished,
		m.relayFailures,
	)

	return m
}

// ObserveClearanceVerdict counts a clearance verdict
func (m *LedgerMetrics) ObserveClearanceVerdict(status string) {
	if m == nil {
		return
	}
	m.clearanceVerdicts.WithLabelValues(status).Inc()
}

// ObserveSettlement counts an asset that newly settled
func (m *LedgerMetrics) ObserveSettlement(rule, trigger string) {
	if m == nil {
		return
	}
	m.settlements.WithLabelValues(rule, trigger).Inc()
}

// ObserveCustodyTransfer counts an appended custody transfer
func (m *LedgerMetrics) ObserveCustodyTransfer() {
	if m == nil {
		return
	}
	m.custodyTransfers.Inc()
}

// ObserveProvenanceBreak counts a provenance break
func (m *LedgerMetrics) ObserveProvenanceBreak() {
	if m == nil {
		return
	}
	m.provenanceBreaks.Inc()
}

// ObserveFractionTransfer counts an applied fraction transfer
func (m *LedgerMetrics) ObserveFractionTransfer() {
	if m == nil {
		return
	}
	m.fractionTransfers.Inc()
}

// ObserveInvariantViolation counts an invariant violation
func (m *LedgerMetrics) ObserveInvariantViolation(invariant string) {
	if m == nil {
		return
	}
	m.invariantViolations.WithLabelValues(invariant).Inc()
}

// AddRelayPublished counts journal entries published for a subject type
func (m *LedgerMetrics) AddRelayPublished(subjectType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.relayPublished.WithLabelValues(subjectType).Add(float64(n))
}

// ObserveRelayFailure counts a relay batch that gave up
func (m *LedgerMetrics) ObserveRelayFailure() {
	if m == nil {
		return
	}
	m.relayFailures.Inc()
}
