// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package world_test

import (
	"context"
	"os"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/tmxworld/internal/manifest"
	"github.com/holomush/tmxworld/internal/resource"
	"github.com/holomush/tmxworld/internal/scan"
	"github.com/holomush/tmxworld/internal/world"
	"github.com/holomush/tmxworld/pkg/errutil"
)

var _ = Describe("World layout", func() {
	var ctx context.Context
	var env *testEnv
	var w *world.World

	BeforeEach(func() {
		ctx = context.Background()
		env = newTestEnv()

		var err error
		w, err = manifest.Load(ctx, resource.NewOSReader(), env.world, manifest.WithSchemaValidation())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("loading", func() {
		It("keeps the manifest path as the world source", func() {
			Expect(w.Source).To(Equal(env.world))
			Expect(w.Maps).To(HaveLen(1))
			Expect(w.Patterns).To(HaveLen(2))
		})

		It("reports unreadable manifests as resource loading errors", func() {
			Expect(os.Remove(env.world)).To(Succeed())

			_, err := manifest.Load(ctx, resource.NewOSReader(), env.world)
			Expect(errutil.HasCode(err, world.CodeResourceLoading)).To(BeTrue())
		})
	})

	Describe("resolving paths", func() {
		It("uses the first pattern that matches", func() {
			m, err := w.MatchPath("region_a/r_3_2.tmx")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(world.Map{Filename: "region_a/r_3_2.tmx", X: 3*640 + 640, Y: 2 * 640}))

			m, err = w.MatchPath("r_1_-1.tmx")
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(world.Map{Filename: "r_1_-1.tmx", X: 0, Y: -640}))
		})

		It("returns one result per path in order", func() {
			results := w.MatchPaths([]string{"cave.tmx", "r_0_0.tmx", "hub.tmx"})
			Expect(results).To(HaveLen(3))
			Expect(world.IsNoMatch(results[0].Err)).To(BeTrue())
			Expect(results[1].Err).NotTo(HaveOccurred())
			Expect(results[1].Map.X).To(Equal(int32(-320)))
			Expect(world.IsNoMatch(results[2].Err)).To(BeTrue(), "explicit maps are not matched by patterns")
		})
	})

	Describe("scanning the project directory", func() {
		It("places explicit maps first and derived maps in path order", func() {
			s, err := scan.New(scan.Options{Recursive: true})
			Expect(err).NotTo(HaveOccurred())

			l, err := s.Layout(ctx, w, os.DirFS(env.dir), ".")
			Expect(err).NotTo(HaveOccurred())

			Expect(l.Explicit).To(ConsistOf(HaveField("Filename", "hub.tmx")))
			names := make([]string, 0, len(l.Derived))
			for _, m := range l.Derived {
				names = append(names, m.Filename)
			}
			Expect(names).To(Equal([]string{
				"r_0_0.tmx",
				"r_1_-1.tmx",
				"r_2_1.tmx",
				"region_a/r_0_0.tmx",
				"region_a/r_3_2.tmx",
			}))
			Expect(l.Skipped).To(Equal([]string{"cave.tmx"}))
		})

		It("stays in the top directory unless recursive", func() {
			s, err := scan.New(scan.Options{})
			Expect(err).NotTo(HaveOccurred())

			l, err := s.Layout(ctx, w, os.DirFS(env.dir), ".")
			Expect(err).NotTo(HaveOccurred())
			Expect(l.Derived).To(HaveLen(3))
		})

		It("round-trips the layout through a manifest", func() {
			s, err := scan.New(scan.Options{Recursive: true})
			Expect(err).NotTo(HaveOccurred())
			l, err := s.Layout(ctx, w, os.DirFS(env.dir), ".")
			Expect(err).NotTo(HaveOccurred())

			data, err := manifest.Marshal(manifest.FromWorld(&world.World{Maps: l.All()}), manifest.FormatJSON)
			Expect(err).NotTo(HaveOccurred())
			Expect(manifest.ValidateSchema(data, manifest.FormatJSON)).To(Succeed())

			flat, err := manifest.Decode("flat.world", data, manifest.FormatJSON)
			Expect(err).NotTo(HaveOccurred())
			Expect(flat.Maps).To(HaveLen(6))
			m, ok := flat.Lookup("region_a/r_0_0.tmx")
			Expect(ok).To(BeTrue())
			Expect(m.X).To(Equal(int32(640)))
		})
	})
})
