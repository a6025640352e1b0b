// wiredump decodes a raw MQTT byte stream (a capture file or stdin)
// packet by packet and prints one line per packet. It exercises the
// resumable reader and the default buffer pool exactly the way a
// connection loop would, and can expose Prometheus counters while it
// runs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/axmq/wire/buffer"
	"github.com/axmq/wire/encoding"
	"github.com/axmq/wire/metrics"
	"github.com/axmq/wire/pkg/logger"
	v3 "github.com/axmq/wire/v3"
	v5 "github.com/axmq/wire/v5"
)

func main() {
	var (
		file          = flag.String("file", "-", "capture file to decode, - for stdin")
		protocolLevel = flag.Int("protocol", 4, "protocol level: 3 (v3.1), 4 (v3.1.1), 5 (v5.0)")
		metricsListen = flag.String("metrics-listen", "", "address to serve Prometheus metrics on while decoding")
		verbose       = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := logger.New(level, os.Stdout)

	src := io.Reader(os.Stdin)
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			log.Error("open capture", "err", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	stats := metrics.NewCodec()
	if *metricsListen != "" {
		reg := prometheus.NewRegistry()
		if err := stats.Register(reg); err != nil {
			log.Error("register metrics", "err", err)
			os.Exit(1)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsListen, mux); err != nil {
				log.Error("metrics listener", "err", err)
			}
		}()
		log.Info("serving metrics", "addr", *metricsListen)
	}

	pool := buffer.NewPool(buffer.DefaultConfig())

	var err error
	switch *protocolLevel {
	case 3, 4:
		err = dumpV3(src, pool, log, stats)
	case 5:
		err = dumpV5(src, pool, log, stats)
	default:
		log.Error("unsupported protocol level", "level", *protocolLevel)
		os.Exit(2)
	}
	if err != nil {
		log.Error("decode stream", "err", err)
		os.Exit(1)
	}
}

func dumpV3(src io.Reader, pool buffer.Provider, log *logger.Logger, stats *metrics.Codec) error {
	reader := v3.NewPacketReader(pool)
	count := 0
	for {
		pkt, total, err := reader.ReadPacket(src)
		if err != nil {
			if endOfStream(err) {
				log.Info("stream complete", "packets", count)
				return nil
			}
			stats.ObserveDecodeError()
			return err
		}
		count++
		stats.ObserveDecode(pkt.Type().String(), total)
		log.Info("packet", "type", pkt.Type().String(), "bytes", total, "detail", describeV3(pkt))
	}
}

func dumpV5(src io.Reader, pool buffer.Provider, log *logger.Logger, stats *metrics.Codec) error {
	reader := v5.NewPacketReader(pool)
	count := 0
	for {
		pkt, total, err := reader.ReadPacket(src)
		if err != nil {
			if endOfStream(err) {
				log.Info("stream complete", "packets", count)
				return nil
			}
			stats.ObserveDecodeError()
			return err
		}
		count++
		stats.ObserveDecode(pkt.Type().String(), total)
		log.Info("packet", "type", pkt.Type().String(), "bytes", total, "detail", describeV5(pkt))
	}
}

// endOfStream reports whether err is the reader hitting the end of the
// capture. The reader returns the same error when the capture ends
// partway through a packet, so a truncated last packet also ends the
// dump as "stream complete".
func endOfStream(err error) bool {
	var ioErr *encoding.IOError
	return errors.As(err, &ioErr) && errors.Is(ioErr.Err, io.ErrUnexpectedEOF)
}

func describeV3(pkt v3.Packet) string {
	switch p := pkt.(type) {
	case *v3.Connect:
		return fmt.Sprintf("client=%q keepalive=%d clean=%t", p.ClientID, p.KeepAlive, p.CleanSession)
	case *v3.Connack:
		return fmt.Sprintf("session=%t code=%s", p.SessionPresent, p.Code)
	case *v3.Publish:
		return fmt.Sprintf("topic=%q qos=%s payload=%dB", p.TopicName, p.QosPid.QoS, len(p.Payload))
	case *v3.Subscribe:
		return fmt.Sprintf("pid=%d topics=%d", p.Pid.Value(), len(p.Topics))
	case *v3.Suback:
		return fmt.Sprintf("pid=%d codes=%d", p.Pid.Value(), len(p.Topics))
	case *v3.Unsubscribe:
		return fmt.Sprintf("pid=%d topics=%d", p.Pid.Value(), len(p.Topics))
	default:
		return ""
	}
}

func describeV5(pkt v5.Packet) string {
	switch p := pkt.(type) {
	case *v5.Connect:
		return fmt.Sprintf("client=%q keepalive=%d clean=%t", p.ClientID, p.KeepAlive, p.CleanStart)
	case *v5.Connack:
		return fmt.Sprintf("session=%t reason=%#02x", p.SessionPresent, byte(p.ReasonCode))
	case *v5.Publish:
		return fmt.Sprintf("topic=%q qos=%s payload=%dB", p.TopicName, p.QosPid.QoS, len(p.Payload))
	case *v5.Subscribe:
		return fmt.Sprintf("pid=%d topics=%d", p.Pid.Value(), len(p.Topics))
	case *v5.Disconnect:
		return fmt.Sprintf("reason=%#02x", byte(p.ReasonCode))
	case *v5.Auth:
		return fmt.Sprintf("reason=%#02x", byte(p.ReasonCode))
	default:
		return ""
	}
}
