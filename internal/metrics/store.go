package metrics

import (
	"time"
)

// RecordStoreOperation records the duration of a record or attachment
// store call and counts it as an error when err is non-nil. The store
// label is "dynamodb" or "s3".
func (m *Metrics) RecordStoreOperation(store, operation string, err error, duration time.Duration) {
	m.safeExecute("RecordStoreOperation", func() {
		m.StoreRequestDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
		if err != nil {
			m.StoreErrors.WithLabelValues(store, operation).Inc()
		}
	})
}

// RecordCounselorCreated counts a successful counselor creation
func (m *Metrics) RecordCounselorCreated() {
	m.safeExecute("RecordCounselorCreated", func() {
		m.CounselorCreatedTotal.Inc()
	})
}

// RecordCounselorDeleted counts a successful counselor soft delete
func (m *Metrics) RecordCounselorDeleted() {
	m.safeExecute("RecordCounselorDeleted", func() {
		m.CounselorDeletedTotal.Inc()
	})
}
