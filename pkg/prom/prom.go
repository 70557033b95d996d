package prom

import (
	"fmt"
	"sync"

	xhttp "github.com/skserveur/storefront/pkg/http"
	"github.com/skserveur/storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var lockCreateMetricLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
var MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)

var defaultLabels prometheus.Labels

// Create enables the metric system. Metrics registered before Create are lost,
// so call it first thing after config load.
func Create(host string, env string, nameSpace string) {
	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true
}

// Handler exposes the default prometheus registry over fasthttp.
func Handler() xhttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
}

func CounterVec(system, name, help string, labels []string) *prometheus.CounterVec {
	if !MetricSystemEnabled {
		return nil
	}
	key := key(system, name)

	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()

	if c, ok := MetricCollectionCounterVec[key]; ok {
		return c
	}

	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   system,
		Name:        name,
		Help:        help,
		ConstLabels: defaultLabels,
	}, labels)
	if err := prometheus.Register(c); err != nil {
		logger.Error("prom: failed to register counter", "name", key, "error", err)
		return nil
	}
	MetricCollectionCounterVec[key] = c
	return c
}

func HistogramVec(system, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	if !MetricSystemEnabled {
		return nil
	}
	key := key(system, name)

	lockCreateMetricLock.Lock()
	defer lockCreateMetricLock.Unlock()

	if h, ok := MetricCollectionHistogramVec[key]; ok {
		return h
	}

	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   system,
		Name:        name,
		Help:        help,
		ConstLabels: defaultLabels,
		Buckets:     buckets,
	}, labels)
	if err := prometheus.Register(h); err != nil {
		logger.Error("prom: failed to register histogram", "name", key, "error", err)
		return nil
	}
	MetricCollectionHistogramVec[key] = h
	return h
}

// IncCounter is a nil-safe increment so call sites don't need to guard on
// MetricSystemEnabled.
func IncCounter(c *prometheus.CounterVec, labels ...string) {
	if c == nil {
		return
	}
	c.WithLabelValues(labels...).Inc()
}

func key(system, name string) string {
	return fmt.Sprintf("%s_%s", system, name)
}
