// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "givehaven"

// HTTPRequestDuration observes every request served by the router.
// Labels:
//   - method: HTTP method
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "status"},
)

// ListLoadsTotal counts list loads by outcome.
// Labels:
//   - list: donor_chats, home_chat_rooms, open_needs, ...
//   - result: ok or error
var ListLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_loads_total",
		Help:      "Total number of list loads, labelled by list and result.",
	},
	[]string{"list", "result"},
)

// ConsentChoicesTotal counts recorded cookie consent choices.
var ConsentChoicesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "consent_choices_total",
		Help:      "Total number of cookie consent choices, by choice.",
	},
	[]string{"choice"},
)

// BannerDismissalsTotal counts verification banner dismissals by status.
var BannerDismissalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_banner_dismissals_total",
		Help:      "Total number of verification banner dismissals, by status.",
	},
	[]string{"status"},
)

// AuthRedirectsTotal counts requests turned away by an auth gate.
// Label:
//   - target: the redirect destination (/login or /)
var AuthRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_redirects_total",
		Help:      "Total number of auth gate redirects, by destination.",
	},
	[]string{"target"},
)

// PledgesTotal counts pledge attempts by result: created, not_found, not_open,
// own_need or error.
var PledgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pledges_total",
		Help:      "Total number of pledge attempts, by result.",
	},
	[]string{"result"},
)
