package txpush

import "expvar"

var (
	metricPushQueuedTotal       = expvar.NewInt("tx_push_queued_total")
	metricPushDroppedTotal      = expvar.NewInt("tx_push_dropped_total")
	metricPushRetryTotal        = expvar.NewInt("tx_push_retry_total")
	metricPushRetryDroppedTotal = expvar.NewInt("tx_push_retry_dropped_total")
	metricPushSentTotal         = expvar.NewInt("tx_push_sent_total")
	metricPushFailedTotal       = expvar.NewInt("tx_push_failed_total")
	metricPushCircuitOpenTotal  = expvar.NewInt("tx_push_circuit_open_total")
	metricPushQueueLen          = expvar.NewInt("tx_push_queue_len")
)
