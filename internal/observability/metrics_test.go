// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
)

func TestRecordResolution(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus string
	}{
		{"success", nil, StatusMatched},
		{"coded error", oops.Code("WORLD_NO_MATCH").Errorf("no match"), "world_no_match"},
		{"plain error", errors.New("boom"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(resolutions.WithLabelValues(tt.wantStatus))
			RecordResolution(tt.err)
			after := testutil.ToFloat64(resolutions.WithLabelValues(tt.wantStatus))
			assert.InDelta(t, 1, after-before, 0)
		})
	}
}

func TestRecordManifestLoad(t *testing.T) {
	before := testutil.ToFloat64(manifestLoads.WithLabelValues("world_json_decoding"))
	RecordManifestLoad(oops.Code("WORLD_JSON_DECODING").Errorf("bad"))
	after := testutil.ToFloat64(manifestLoads.WithLabelValues("world_json_decoding"))
	assert.InDelta(t, 1, after-before, 0)

	before = testutil.ToFloat64(manifestLoads.WithLabelValues(StatusOK))
	RecordManifestLoad(nil)
	after = testutil.ToFloat64(manifestLoads.WithLabelValues(StatusOK))
	assert.InDelta(t, 1, after-before, 0)
}

func TestManifestLoads(t *testing.T) {
	assert.Same(t, manifestLoads, ManifestLoads())
}
