// Package metrics exposes Prometheus instrumentation for the codec's
// decode and encode paths. The codec itself stays silent; callers that
// drive a reader or writer feed the counters.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Codec counts packets and bytes flowing through a decoder or encoder.
type Codec struct {
	PacketsDecoded *prometheus.CounterVec
	BytesDecoded   prometheus.Counter
	DecodeErrors   prometheus.Counter
	PacketsEncoded *prometheus.CounterVec
	BytesEncoded   prometheus.Counter
}

// NewCodec builds the counter set. Packet counters are labelled with
// the packet type name.
func NewCodec() *Codec {
	return &Codec{
		PacketsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqtt_wire_decoded_packets_total",
			Help: "The total number of decoded MQTT packets",
		}, []string{"type"}),
		BytesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqtt_wire_decoded_bytes_total",
			Help: "The total number of decoded MQTT bytes",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqtt_wire_decode_errors_total",
			Help: "The total number of packets rejected by the decoder",
		}),
		PacketsEncoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqtt_wire_encoded_packets_total",
			Help: "The total number of encoded MQTT packets",
		}, []string{"type"}),
		BytesEncoded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqtt_wire_encoded_bytes_total",
			Help: "The total number of encoded MQTT bytes",
		}),
	}
}

// Register registers every collector with reg.
func (c *Codec) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.PacketsDecoded, c.BytesDecoded, c.DecodeErrors,
		c.PacketsEncoded, c.BytesEncoded,
	} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObserveDecode records one decoded packet of the given type name and
// its total wire size.
func (c *Codec) ObserveDecode(packetType string, total int) {
	c.PacketsDecoded.WithLabelValues(packetType).Inc()
	c.BytesDecoded.Add(float64(total))
}

// ObserveDecodeError records one rejected packet.
func (c *Codec) ObserveDecodeError() {
	c.DecodeErrors.Inc()
}

// ObserveEncode records one encoded packet of the given type name and
// its total wire size.
func (c *Codec) ObserveEncode(packetType string, total int) {
	c.PacketsEncoded.WithLabelValues(packetType).Inc()
	c.BytesEncoded.Add(float64(total))
}
