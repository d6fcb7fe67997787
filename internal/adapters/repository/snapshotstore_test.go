package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/stagetally/internal/adapters/loader"
	"github.com/okian/stagetally/internal/adapters/repository"
	"github.com/okian/stagetally/internal/domain/model"
	"github.com/okian/stagetally/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func dataset() *loader.Dataset {
	return &loader.Dataset{
		Groups: []roster.Group{
			{Name: "Team A", Members: []string{"Bea", "Cy"}},
			{Name: "Team AB", Members: []string{"Ed"}},
			{Name: "Team A OG", Members: []string{"Dee"}},
		},
		Records: []model.Performance{
			{Date: "2024-01-01", Stage: "Team A Stage", Members: []string{"Bea"}, SourceIndex: 0},
			{Date: "2024-01-02", Stage: "Team AB Revival", Members: []string{"Ed"}, SourceIndex: 1},
			{Date: "2024-01-03", Stage: "Special", Group: "Team A", Members: []string{"Cy"}, SourceIndex: 2},
			{Date: "2024-01-04", Stage: "Other Stage", Members: []string{"Zed"}, SourceIndex: 3},
		},
		Elapsed: 3 * time.Millisecond,
	}
}

func TestSnapshotStore(t *testing.T) {
	Convey("Given a new snapshot store", t, func() {
		fixed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		store := repository.NewSnapshotStore(
			repository.WithClock(func() time.Time { return fixed }),
			repository.WithRosterOptions(roster.WithAlumnae(map[string]string{"Team A OG": "Team A"})),
		)
		ctx := context.Background()

		Convey("Then the current snapshot is empty but usable", func() {
			snap := store.Current()
			So(snap, ShouldNotBeNil)
			So(snap.Loaded(), ShouldBeFalse)
			So(snap.Performances("Team A"), ShouldBeEmpty)
			So(snap.Roster.Len(), ShouldEqual, 0)
		})

		Convey("When publishing a dataset", func() {
			snap, err := store.Publish(ctx, dataset())
			So(err, ShouldBeNil)

			Convey("Then it becomes current", func() {
				So(store.Current(), ShouldEqual, snap)
				So(snap.Loaded(), ShouldBeTrue)
				So(snap.LoadedAt.Equal(fixed), ShouldBeTrue)
				So(store.Published(), ShouldEqual, int64(1))
			})

			Convey("Then records are partitioned by longest prefix and explicit group", func() {
				a := snap.Performances("Team A")
				So(a, ShouldHaveLength, 2)
				So(a[0].SourceIndex, ShouldEqual, 0)
				So(a[1].SourceIndex, ShouldEqual, 2)
				So(snap.Performances("Team AB"), ShouldHaveLength, 1)
				So(snap.Unassigned, ShouldEqual, 1)
			})

			Convey("Then alumnae groups own no performances", func() {
				So(snap.Performances("Team A OG"), ShouldBeEmpty)
				So(snap.Roster.Alumnae("Team A"), ShouldResemble, []string{"Team A OG"})
			})

			Convey("And publishing again bumps the version", func() {
				next, err := store.Publish(ctx, dataset())
				So(err, ShouldBeNil)
				So(next.Version, ShouldNotEqual, snap.Version)
				So(store.Current(), ShouldEqual, next)
				So(snap.Performances("Team A"), ShouldHaveLength, 2)
			})
		})

		Convey("When publishing nil", func() {
			_, err := store.Publish(ctx, nil)

			Convey("Then it fails and keeps the previous snapshot", func() {
				So(errors.Is(err, repository.ErrNilDataset), ShouldBeTrue)
				So(store.Current().Loaded(), ShouldBeFalse)
			})
		})

		Convey("When readers race with publishers", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_, _ = store.Publish(ctx, dataset())
				}()
				go func() {
					defer wg.Done()
					_ = store.Current().Performances("Team A")
				}()
			}
			wg.Wait()

			Convey("Then every publish is counted", func() {
				So(store.Published(), ShouldEqual, int64(8))
			})
		})
	})
}
