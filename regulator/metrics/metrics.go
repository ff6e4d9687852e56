// Package metrics exports regulator decisions as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ksm-regulator/ksm-regulator/regulator"
)

const namespace = "ksm_regulator"

// Observer implements regulator.Observer on a dedicated registry.
type Observer struct {
	registry   *prometheus.Registry
	usage      prometheus.Gauge
	sleep      prometheus.Gauge
	run        prometheus.Gauge
	iterations *prometheus.CounterVec
}

// NewObserver registers the regulator metrics on a fresh registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		usage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_usage_percent",
			Help:      "Host memory usage percentage at the last iteration.",
		}),
		sleep: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sleep_millisecs",
			Help:      "Last KSM sleep_millisecs written; unchanged while KSM is disabled.",
		}),
		run: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run",
			Help:      "Last KSM run value written (1 enabled, 0 disabled).",
		}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "iterations_total",
			Help:      "Completed control iterations by command.",
		}, []string{"command"}),
	}
	o.registry.MustRegister(o.usage, o.sleep, o.run, o.iterations)
	return o
}

// Observe implements regulator.Observer.
func (o *Observer) Observe(_ regulator.MemorySample, usage float64, d regulator.Decision) {
	o.usage.Set(usage)
	if d.Command.Kind == regulator.CommandDisable {
		o.run.Set(0)
		o.iterations.WithLabelValues("disable").Inc()
		return
	}
	o.run.Set(1)
	o.sleep.Set(float64(d.Command.IntervalMillis))
	o.iterations.WithLabelValues("set_interval").Inc()
}

// Server serves /metrics for an Observer.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and returns a server ready to Serve.
func Listen(addr string, o *Observer) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{}))
	return &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln: ln,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Serve blocks until Shutdown. It never returns http.ErrServerClosed.
func (s *Server) Serve() error {
	logrus.Infof("Serving metrics on %s", s.Addr())
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting at most timeout for open requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
