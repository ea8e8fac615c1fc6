// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/holomush/tmxworld/pkg/errutil"
)

// Status label values that are not derived from an error code.
const (
	StatusMatched = "matched"
	StatusOK      = "ok"
	StatusError   = "error"
)

// resolutions counts path resolutions by outcome.
var resolutions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tmxworld_resolutions_total",
		Help: "Total number of path resolutions by outcome",
	},
	[]string{"status"},
)

// manifestLoads counts world manifest loads by outcome.
var manifestLoads = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tmxworld_manifest_loads_total",
		Help: "Total number of world manifest loads by outcome",
	},
	[]string{"status"},
)

// RegisterMetrics registers the package-level counters with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(resolutions)
	reg.MustRegister(manifestLoads)
}

// ManifestLoads returns the manifest load counter.
func ManifestLoads() *prometheus.CounterVec {
	return manifestLoads
}

// RecordResolution counts one path resolution. A nil err counts as matched;
// otherwise the status is the error's lower-cased code.
func RecordResolution(err error) {
	status := StatusMatched
	if err != nil {
		status = statusFor(err)
	}
	resolutions.WithLabelValues(status).Inc()
}

// RecordManifestLoad counts one manifest load.
func RecordManifestLoad(err error) {
	status := StatusOK
	if err != nil {
		status = statusFor(err)
	}
	manifestLoads.WithLabelValues(status).Inc()
}

func statusFor(err error) string {
	if code := errutil.Code(err); code != "" {
		return strings.ToLower(code)
	}
	return StatusError
}
