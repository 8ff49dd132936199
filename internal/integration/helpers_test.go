//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.5.0"

// startKafka runs a single-node KRaft broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, kafkaImage, tckafka.WithClusterID("hydrograph-test"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate kafka container: %v", err)
		}
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const quarterHour = int64(15 * 60 * 1000)

// mockSnapshots returns one snapshot per parameter family with a focus time set.
func mockSnapshots() []domain.SeriesSnapshot {
	start := int64(1514905200000) // 2018-01-02 15:00 UTC
	focus := start + 16*60*1000

	series := func(values ...float64) domain.Series {
		s := make(domain.Series, len(values))
		for i, v := range values {
			s[i] = domain.Point{DateTime: start + int64(i)*quarterHour, Value: v, Qualifiers: []string{"P"}}
		}
		return s
	}

	return []domain.SeriesSnapshot{
		{
			SiteID:        "05370000",
			ParameterCode: "00060",
			UnitCode:      "ft3/s",
			Series:        domain.SnapshotSeries{Current: series(4, 10, 7)},
			FocusTimes:    domain.FocusTimes{Current: &focus},
		},
		{
			SiteID:        "01646500",
			ParameterCode: "00060",
			UnitCode:      "ft3/s",
			Series:        domain.SnapshotSeries{Current: series(100, 2500, 5000)},
		},
		{
			SiteID:        "05331000",
			ParameterCode: "00065",
			UnitCode:      "ft",
			Series:        domain.SnapshotSeries{Current: series(3.1, 3.4, 3.2)},
		},
		{
			SiteID:        "08158000",
			ParameterCode: "00010",
			UnitCode:      "deg C",
			Series:        domain.SnapshotSeries{Current: series(-50, 0, 50)},
		},
	}
}
