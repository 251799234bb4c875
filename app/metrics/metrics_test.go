package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordNotification(t *testing.T) {
	sent := NotificationsTotal.WithLabelValues(NotificationMaterial, StatusSent)
	failed := NotificationsTotal.WithLabelValues(NotificationError, StatusFailed)
	sentBefore := testutil.ToFloat64(sent)
	failedBefore := testutil.ToFloat64(failed)

	RecordNotification(NotificationMaterial, nil)
	RecordNotification(NotificationError, errors.New("boom"))

	if got := testutil.ToFloat64(sent) - sentBefore; got != 1 {
		t.Errorf("Expected 1 sent material notification, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("Expected 1 failed error notification, got %v", got)
	}
}

func TestInit(t *testing.T) {
	Init("1.2.3")

	if got := testutil.ToFloat64(ApplicationInfo.WithLabelValues("1.2.3")); got != 1 {
		t.Errorf("Expected application info gauge 1, got %v", got)
	}
}
