package merge

import (
	"context"
	"fmt"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vibescout/matchaudit/internal/adapters/repository"
	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func rec(id, team string, l4 int, corrected bool) model.ScoutingRecord {
	return model.ScoutingRecord{
		ID:                      id,
		EventKey:                "2025test",
		MatchNumber:             "7",
		TeamKey:                 team,
		Alliance:                model.AllianceRed,
		ScoutName:               "alice",
		TeleopCoralPlaceL4Count: l4,
		IsCorrected:             corrected,
	}
}

func keyOf(team string) model.RecordKey {
	r := rec("", team, 0, false)
	return r.Key()
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	Convey("Given an orchestrator over an empty store", t, func() {
		store := repository.NewMemStore()
		o := New(store)

		Convey("When a fresh batch arrives", func() {
			summary, err := o.Import(ctx, []model.ScoutingRecord{
				rec("a1", "100", 3, false),
				rec("a2", "200", 4, false),
			})

			Convey("Every record is added and the machine returns to idle", func() {
				So(err, ShouldBeNil)
				So(summary.AddedCount, ShouldEqual, 2)
				So(summary.PendingConflicts, ShouldEqual, 0)
				So(o.State(), ShouldEqual, StateIdle)
				So(store.Count(ctx), ShouldEqual, 2)
			})
		})

		Convey("When a second device re-reports an uncorrected record", func() {
			_, err := o.Import(ctx, []model.ScoutingRecord{rec("a1", "100", 3, false)})
			So(err, ShouldBeNil)

			summary, err := o.Import(ctx, []model.ScoutingRecord{rec("b1", "100", 5, false)})

			Convey("The newer record silently replaces the old one", func() {
				So(err, ShouldBeNil)
				So(summary.ReplacedCount, ShouldEqual, 1)
				So(store.Count(ctx), ShouldEqual, 1)

				current, ferr := store.FindByKey(ctx, keyOf("100"))
				So(ferr, ShouldBeNil)
				So(current.ID, ShouldEqual, "b1")
				So(current.TeleopCoralPlaceL4Count, ShouldEqual, 5)
			})
		})

		Convey("When a corrected record meets identical incoming data", func() {
			_, err := o.Import(ctx, []model.ScoutingRecord{rec("a1", "100", 3, true)})
			So(err, ShouldBeNil)

			dup := rec("b1", "100", 3, false)
			summary, err := o.Import(ctx, []model.ScoutingRecord{dup})

			Convey("The duplicate is skipped without a conflict", func() {
				So(err, ShouldBeNil)
				So(summary.SkippedIdentical, ShouldEqual, 1)
				So(summary.PendingConflicts, ShouldEqual, 0)
				So(o.State(), ShouldEqual, StateIdle)
			})
		})

		Convey("When a corrected record meets differing incoming data", func() {
			_, err := o.Import(ctx, []model.ScoutingRecord{rec("a1", "100", 3, true)})
			So(err, ShouldBeNil)

			summary, err := o.Import(ctx, []model.ScoutingRecord{rec("b1", "100", 9, false)})

			Convey("A conflict is queued for review", func() {
				So(err, ShouldBeNil)
				So(summary.PendingConflicts, ShouldEqual, 1)
				So(o.State(), ShouldEqual, StateConflictPending)

				c, ok := o.Current()
				So(ok, ShouldBeTrue)
				So(c.Kind, ShouldEqual, model.ConflictCorrectedVsUncorrected)
				So(c.Local.ID, ShouldEqual, "a1")
				So(c.Incoming.ID, ShouldEqual, "b1")
			})
		})
	})
}

func TestResolveAndUndo(t *testing.T) {
	ctx := context.Background()

	// seed: two corrected records, incoming batch disagrees with both
	setup := func() (*Orchestrator, *repository.MemStore) {
		store := repository.NewMemStore()
		o := New(store)
		_, err := o.Import(ctx, []model.ScoutingRecord{
			rec("a1", "100", 3, true),
			rec("a2", "200", 4, true),
		})
		So(err, ShouldBeNil)
		_, err = o.Import(ctx, []model.ScoutingRecord{
			rec("b1", "100", 8, false),
			rec("b2", "200", 9, false),
		})
		So(err, ShouldBeNil)
		So(o.State(), ShouldEqual, StateConflictPending)
		return o, store
	}

	Convey("Given two pending conflicts", t, func() {
		o, store := setup()

		Convey("Replace persists the incoming record and advances", func() {
			So(o.Resolve(ctx, ActionReplace), ShouldBeNil)

			current, err := store.FindByKey(ctx, keyOf("100"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "b1")
			So(o.Summary().UserReplaced, ShouldEqual, 1)
			So(o.Summary().PendingConflicts, ShouldEqual, 1)

			c, ok := o.Current()
			So(ok, ShouldBeTrue)
			So(c.Local.ID, ShouldEqual, "a2")
		})

		Convey("Skip keeps the local record and advances", func() {
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)

			current, err := store.FindByKey(ctx, keyOf("100"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "a1")
			So(o.Summary().UserSkipped, ShouldEqual, 1)
		})

		Convey("Resolving both conflicts returns the machine to idle", func() {
			So(o.Resolve(ctx, ActionReplace), ShouldBeNil)
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)
			_, ok := o.Current()
			So(ok, ShouldBeFalse)
		})

		Convey("An unknown action is rejected without advancing", func() {
			err := o.Resolve(ctx, Action("merge-both"))
			So(err, ShouldNotBeNil)
			So(fmt.Sprint(err), ShouldContainSubstring, "merge-both")
			So(o.Summary().PendingConflicts, ShouldEqual, 2)
		})

		Convey("Undo rewinds a replace and restores the local record", func() {
			So(o.Resolve(ctx, ActionReplace), ShouldBeNil)
			So(o.Undo(ctx), ShouldBeNil)

			current, err := store.FindByKey(ctx, keyOf("100"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "a1")
			So(o.Summary().UserReplaced, ShouldEqual, 0)

			c, ok := o.Current()
			So(ok, ShouldBeTrue)
			So(c.Local.ID, ShouldEqual, "a1")
		})

		Convey("Undo rewinds a skip", func() {
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Undo(ctx), ShouldBeNil)
			So(o.Summary().UserSkipped, ShouldEqual, 0)
			So(o.Summary().PendingConflicts, ShouldEqual, 2)
		})

		Convey("Undo after the final resolution re-opens that conflict", func() {
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Resolve(ctx, ActionReplace), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)

			So(o.Undo(ctx), ShouldBeNil)
			So(o.State(), ShouldEqual, StateConflictPending)

			c, ok := o.Current()
			So(ok, ShouldBeTrue)
			So(c.Local.ID, ShouldEqual, "a2")

			current, err := store.FindByKey(ctx, keyOf("200"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "a2")

			So(o.Resolve(ctx, ActionReplace), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)
			current, err = store.FindByKey(ctx, keyOf("200"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "b2")
		})

		Convey("Only one step can be rewound", func() {
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Undo(ctx), ShouldBeNil)
			So(o.Undo(ctx), ShouldBeNil) // no-op, nothing older remembered
			So(o.Summary().UserSkipped, ShouldEqual, 1)
		})
	})

	Convey("Given no pending conflict", t, func() {
		o := New(repository.NewMemStore())

		Convey("Resolve reports the empty queue", func() {
			So(o.Resolve(ctx, ActionSkip), ShouldEqual, ErrNoConflictPending)
		})

		Convey("Undo with no history is a no-op", func() {
			So(o.Undo(ctx), ShouldBeNil)
		})
	})
}

func TestResolveBatch(t *testing.T) {
	ctx := context.Background()

	// seed a store with n corrected records and import n disagreeing ones
	setup := func(n, threshold int) (*Orchestrator, *repository.MemStore) {
		store := repository.NewMemStore()
		o := New(store, WithBatchReviewThreshold(threshold))

		var locals, incoming []model.ScoutingRecord
		for i := 0; i < n; i++ {
			team := fmt.Sprintf("%d", 100+i)
			locals = append(locals, rec(fmt.Sprintf("a%d", i), team, 3, true))
			incoming = append(incoming, rec(fmt.Sprintf("b%d", i), team, 9, false))
		}
		_, err := o.Import(ctx, locals)
		So(err, ShouldBeNil)
		_, err = o.Import(ctx, incoming)
		So(err, ShouldBeNil)
		return o, store
	}

	Convey("Given a batch below the review threshold", t, func() {
		o, _ := setup(2, 3)

		Convey("Conflicts go straight to per-item review", func() {
			So(o.State(), ShouldEqual, StateConflictPending)
			So(o.ResolveBatch(ctx, BatchReplaceAll), ShouldEqual, ErrNoBatchPending)
		})
	})

	Convey("Given a batch at the review threshold", t, func() {
		Convey("Replace-all persists every incoming record in one pass", func() {
			o, store := setup(3, 3)
			So(o.State(), ShouldEqual, StateBatchReview)

			So(o.ResolveBatch(ctx, BatchReplaceAll), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)
			So(o.Summary().UserReplaced, ShouldEqual, 3)

			current, err := store.FindByKey(ctx, keyOf("100"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "b0")
		})

		Convey("Skip-all keeps every local record", func() {
			o, store := setup(3, 3)

			So(o.ResolveBatch(ctx, BatchSkipAll), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)
			So(o.Summary().UserSkipped, ShouldEqual, 3)

			current, err := store.FindByKey(ctx, keyOf("100"))
			So(err, ShouldBeNil)
			So(current.ID, ShouldEqual, "a0")
		})

		Convey("Review-each demotes the bucket into the ordinary queue", func() {
			o, _ := setup(3, 3)

			So(o.ResolveBatch(ctx, BatchReviewEach), ShouldBeNil)
			So(o.State(), ShouldEqual, StateConflictPending)
			So(o.Pending(), ShouldHaveLength, 3)

			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.Resolve(ctx, ActionSkip), ShouldBeNil)
			So(o.State(), ShouldEqual, StateIdle)
		})

		Convey("An unknown batch action is rejected", func() {
			o, _ := setup(3, 3)
			err := o.ResolveBatch(ctx, BatchAction("defer"))
			So(err, ShouldNotBeNil)
			So(o.State(), ShouldEqual, StateBatchReview)
		})
	})
}
