package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecCounters(t *testing.T) {
	c := NewCodec()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))

	c.ObserveDecode("PUBLISH", 14)
	c.ObserveDecode("PUBLISH", 20)
	c.ObserveDecode("CONNECT", 41)
	c.ObserveDecodeError()
	c.ObserveEncode("PUBACK", 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.PacketsDecoded.WithLabelValues("PUBLISH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PacketsDecoded.WithLabelValues("CONNECT")))
	assert.Equal(t, 75.0, testutil.ToFloat64(c.BytesDecoded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.DecodeErrors))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PacketsEncoded.WithLabelValues("PUBACK")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.BytesEncoded))
}

func TestCodecRegisterTwice(t *testing.T) {
	c := NewCodec()
	reg := prometheus.NewRegistry()
	require.NoError(t, c.Register(reg))
	assert.Error(t, c.Register(reg))
}
