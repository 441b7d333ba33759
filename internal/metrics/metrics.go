package metrics

import (
	stdhttp "net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/roomrelay/internal/core"
)

const namespace = "roomrelay"

// Metrics exports relay observations to Prometheus. It implements core.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	roomsCreated      prometheus.Counter
	roomsExhausted    prometheus.Counter
	roomsEvicted      prometheus.Counter
	liveRooms         prometheus.Gauge
	commands          *prometheus.CounterVec
	eventsDelivered   *prometheus.CounterVec
	connectedClients  prometheus.Gauge
	connectionsOpened prometheus.Counter
}

var _ core.Recorder = (*Metrics)(nil)

// New creates the relay metrics on a private registry that also carries the
// Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Room codes successfully reserved by make.",
		}),
		roomsExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "room_creation_exhausted_total",
			Help:      "make commands that ran out of code attempts.",
		}),
		roomsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_evicted_total",
			Help:      "Room codes removed by the expiry sweeper.",
		}),
		liveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_rooms",
			Help:      "Room codes currently in the registry.",
		}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by type and error code.",
		}, []string{"type", "error"}),
		eventsDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_delivered_total",
			Help:      "Events enqueued to client connections, by type.",
		}, []string{"type"}),
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Open websocket connections.",
		}),
		connectionsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Websocket connections accepted.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.roomsCreated,
		m.roomsExhausted,
		m.roomsEvicted,
		m.liveRooms,
		m.commands,
		m.eventsDelivered,
		m.connectedClients,
		m.connectionsOpened,
	)
	return m
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() stdhttp.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) RoomCreated()           { m.roomsCreated.Inc() }
func (m *Metrics) RoomCreationExhausted() { m.roomsExhausted.Inc() }
func (m *Metrics) RoomsEvicted(n int)     { m.roomsEvicted.Add(float64(n)) }
func (m *Metrics) LiveRooms(n int)        { m.liveRooms.Set(float64(n)) }

func (m *Metrics) CommandHandled(kind core.CommandKind, errCode string) {
	if errCode == "" {
		errCode = "none"
	}
	m.commands.WithLabelValues(kind.String(), errCode).Inc()
}

func (m *Metrics) EventsDelivered(kind core.EventKind, recipients int) {
	if recipients <= 0 {
		return
	}
	m.eventsDelivered.WithLabelValues(kind.String()).Add(float64(recipients))
}

func (m *Metrics) ClientConnected() {
	m.connectionsOpened.Inc()
	m.connectedClients.Inc()
}

func (m *Metrics) ClientDisconnected() { m.connectedClients.Dec() }
