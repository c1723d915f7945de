package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "monitor_cycles_total", Help: "Completed monitoring cycles"},
	)
	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "price_fetch_errors_total", Help: "Failed price fetches"},
		[]string{"symbol"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "alerts_total", Help: "Alerts emitted"},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, FetchErrorsTotal, AlertsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
