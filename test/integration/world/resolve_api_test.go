// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package world_test

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"      //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"         //nolint:revive // gomega convention
	. "github.com/onsi/gomega/gstruct" //nolint:revive // gomega convention

	"github.com/holomush/tmxworld/internal/manifest"
	"github.com/holomush/tmxworld/internal/observability"
	"github.com/holomush/tmxworld/internal/resolveapi"
	"github.com/holomush/tmxworld/internal/resource"
)

var _ = Describe("Resolve API", func() {
	var srv *observability.Server

	BeforeEach(func() {
		env := newTestEnv()
		w, err := manifest.Load(context.Background(), resource.NewOSReader(), env.world)
		Expect(err).NotTo(HaveOccurred())

		srv = observability.NewServer("127.0.0.1:0", nil)
		srv.Handle(resolveapi.Path, resolveapi.NewHandler(w, nil))
		_, err = srv.Start()
		Expect(err).NotTo(HaveOccurred())

		DeferCleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			Expect(srv.Stop(ctx)).To(Succeed())
		})
	})

	It("resolves a batch over HTTP in request order", func() {
		resp, err := http.Get("http://" + srv.Addr() + resolveapi.Path + "?path=r_2_1.tmx&path=cave.tmx")
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = resp.Body.Close() }()

		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get(resolveapi.RequestIDHeader)).To(HaveLen(26))

		var body resolveapi.Response
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		Expect(body.Results).To(HaveLen(2))
		Expect(body.Results[0].Map).To(PointTo(Equal(resolveapi.MapJSON{FileName: "r_2_1.tmx", X: 320, Y: 0})))
		Expect(body.Results[1].Error).To(PointTo(HaveField("Code", "WORLD_NO_MATCH")))
	})
})
