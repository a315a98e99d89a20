package bus

import (
	"testing"
	"time"

	"github.com/odvcencio/persistui/pkg/errors"
)

func TestNewNATSBus_ConnectFailure(t *testing.T) {
	_, err := NewNATSBus(Config{
		URL:     "nats://127.0.0.1:1",
		Name:    "persistui-test",
		Timeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected connect error")
	}
	if !errors.IsCode(err, errors.ErrCodeBusConnect) {
		t.Errorf("expected BUS_CONNECT, got %v", errors.GetCode(err))
	}
}
