package tracks_test

import (
	"reflect"
	"testing"

	"tracktor/internal/tracks"
)

func TestStoreGetMissingFrameIsEmpty(t *testing.T) {
	store := tracks.NewStore([]tracks.FrameData{
		{Frame: 0, Vision: []tracks.VisionTrack{vt(0, 0, 1, 1, 1)}, Time: 1, HasTime: true},
	})

	if got := store.Get(42); !got.Empty() {
		t.Fatalf("expected empty frame, got %+v", got)
	}
	if _, ok := store.Lookup(42); ok {
		t.Fatal("Lookup reported presence for a missing frame")
	}
	if _, ok := store.Lookup(0); !ok {
		t.Fatal("Lookup missed frame 0")
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	store := tracks.NewStore([]tracks.FrameData{
		{Frame: 3, Vision: []tracks.VisionTrack{vt(0, 0, 1, 1, 1)}, Identity: []tracks.IdentityTrack{it(0, 0, 1, 1, 5)}},
	})

	frame := store.Get(3)
	frame.Identity[0].Tag = 99
	frame.Vision[0].VisionID = 99

	again := store.Get(3)
	if again.Identity[0].Tag != 5 || again.Vision[0].VisionID != 1 {
		t.Fatalf("store mutated through Get copy: %+v", again)
	}
	if store.Modified(3) {
		t.Fatal("frame marked modified without SetIdentityTracks")
	}
}

func TestStoreSetIdentityTracks(t *testing.T) {
	vision := []tracks.VisionTrack{vt(0, 0, 1, 1, 1)}
	store := tracks.NewStore([]tracks.FrameData{{Frame: 2, Vision: vision}})

	store.SetIdentityTracks(2, []tracks.IdentityTrack{it(0, 0, 1, 1, 8)})
	store.SetIdentityTracks(7, []tracks.IdentityTrack{it(0, 0, 1, 1, 8)})

	got := store.Get(2)
	if !reflect.DeepEqual(got.Vision, vision) {
		t.Fatalf("vision tracks changed: %+v", got.Vision)
	}
	if len(got.Identity) != 1 || got.Identity[0].Tag != 8 {
		t.Fatalf("identity tracks not replaced: %+v", got.Identity)
	}
	if !store.Modified(2) {
		t.Fatal("expected frame 2 to be modified")
	}
	if store.Modified(7) || !store.Get(7).Empty() {
		t.Fatal("unknown frame should stay absent")
	}
	if got := store.ModifiedFrames(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("ModifiedFrames = %v", got)
	}
}

func TestStoreBoundsAndSampleTimes(t *testing.T) {
	empty := tracks.NewStore(nil)
	if _, ok := empty.Bounds(); ok {
		t.Fatal("empty store reported bounds")
	}

	store := tracks.NewStore([]tracks.FrameData{
		{Frame: 4, Time: 4.5, HasTime: true},
		{Frame: 1, Time: 1.5, HasTime: true},
		{Frame: 2},
		{Frame: -1, Time: 9, HasTime: true},
	})
	bounds, ok := store.Bounds()
	if !ok || bounds != (tracks.FrameRange{From: 1, To: 4}) {
		t.Fatalf("Bounds = %v, %v", bounds, ok)
	}
	want := []tracks.FrameTime{{Frame: 1, Time: 1.5}, {Frame: 4, Time: 4.5}}
	if got := store.SampleTimes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("SampleTimes = %v, want %v", got, want)
	}
	if store.Len() != 3 {
		t.Fatalf("Len = %d, want 3", store.Len())
	}
}

func TestViewReportsUnlabeled(t *testing.T) {
	store := tracks.NewStore([]tracks.FrameData{{
		Frame:    10,
		Vision:   []tracks.VisionTrack{vt(0, 0, 10, 10, 1), vt(20, 20, 30, 30, 2)},
		Identity: []tracks.IdentityTrack{it(0, 0, 10, 10, 7)},
	}})

	view, ok := tracks.View(store, 10)
	if !ok {
		t.Fatal("expected view for frame 10")
	}
	if len(view.Matches) != 2 || view.Unlabeled() != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if _, ok := tracks.View(store, 11); ok {
		t.Fatal("expected no view for frame 11")
	}
}
