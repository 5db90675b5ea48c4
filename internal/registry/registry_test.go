package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/agentx-labs/extensiond/internal/exttype"
	"github.com/google/go-cmp/cmp"
)

func sampleDescriptors() []Descriptor {
	return []Descriptor{
		{ID: "a", Name: "a", Type: exttype.Panel, Enabled: true},
		{ID: "b", Name: "b", Type: exttype.Hook, Enabled: true},
		{ID: "c", Name: "c", Type: exttype.Panel, Enabled: false},
		{ID: "d", Name: "d", Type: exttype.Layout, Enabled: true},
		{ID: "e", Name: "e", Type: exttype.Panel, Enabled: true},
	}
}

func typePtr(t exttype.Type) *exttype.Type { return &t }

func TestNew_EmptySnapshot(t *testing.T) {
	r := New()
	snap := r.Current()
	if snap.Generation != 0 || snap.Len() != 0 {
		t.Fatalf("New() snapshot = gen %d len %d, want empty generation 0", snap.Generation, snap.Len())
	}
	if got := r.List(nil); got == nil || len(got) != 0 {
		t.Fatalf("List(nil) = %#v, want empty non-nil slice", got)
	}
	if got := r.List(typePtr(exttype.Panel)); got == nil || len(got) != 0 {
		t.Fatalf("List(panel) = %#v, want empty non-nil slice", got)
	}
}

func TestList_FilterPreservesOrder(t *testing.T) {
	r := New()
	r.Rebuild(sampleDescriptors())

	got := names(r.List(typePtr(exttype.Panel)))
	if diff := cmp.Diff([]string{"a", "c", "e"}, got); diff != "" {
		t.Errorf("List(panel) mismatch (-want +got):\n%s", diff)
	}

	if got := r.List(typePtr(exttype.Endpoint)); len(got) != 0 {
		t.Errorf("List(endpoint) = %v, want empty", got)
	}
}

func TestList_PartitionsByType(t *testing.T) {
	r := New()
	r.Rebuild(sampleDescriptors())

	all := r.List(nil)
	seen := make(map[string]exttype.Type)
	total := 0
	for _, typ := range exttype.All() {
		for _, d := range r.List(typePtr(typ)) {
			if prev, ok := seen[d.ID]; ok {
				t.Fatalf("%s listed under both %s and %s", d.ID, prev, typ)
			}
			seen[d.ID] = typ
			total++
		}
	}
	if total != len(all) {
		t.Fatalf("per-type lists hold %d descriptors, List(nil) holds %d", total, len(all))
	}
	for _, d := range all {
		if _, ok := seen[d.ID]; !ok {
			t.Errorf("%s missing from per-type lists", d.ID)
		}
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	r := New()
	r.Rebuild(sampleDescriptors())

	got := r.List(nil)
	got[0].Name = "mutated"

	if r.List(nil)[0].Name != "a" {
		t.Fatal("mutating a List result changed the snapshot")
	}
}

func TestRebuild_CopiesInput(t *testing.T) {
	r := New()
	in := sampleDescriptors()
	r.Rebuild(in)
	in[0].Name = "mutated"

	if r.List(nil)[0].Name != "a" {
		t.Fatal("mutating the Rebuild input changed the snapshot")
	}
}

func TestRebuild_IncrementsGeneration(t *testing.T) {
	r := New()
	s1 := r.Rebuild(sampleDescriptors())
	s2 := r.Rebuild(nil)

	if s1.Generation != 1 || s2.Generation != 2 {
		t.Fatalf("generations = %d, %d; want 1, 2", s1.Generation, s2.Generation)
	}
	if r.Current() != s2 {
		t.Fatal("Current() is not the latest snapshot")
	}
	if s1.Len() != 5 {
		t.Fatalf("old snapshot changed: len %d, want 5", s1.Len())
	}
}

// Every concurrent List must see exactly one of the two snapshots.
func TestList_ConcurrentRebuild(t *testing.T) {
	snapshotA := make([]Descriptor, 50)
	snapshotB := make([]Descriptor, 70)
	for i := range snapshotA {
		snapshotA[i] = Descriptor{ID: fmt.Sprintf("a-%d", i), Type: exttype.Panel}
	}
	for i := range snapshotB {
		snapshotB[i] = Descriptor{ID: fmt.Sprintf("b-%d", i), Type: exttype.Panel}
	}

	r := New()
	r.Rebuild(snapshotA)

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				r.Rebuild(snapshotB)
			} else {
				r.Rebuild(snapshotA)
			}
		}
		close(stop)
	}()

	errs := make(chan string, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				got := r.List(typePtr(exttype.Panel))
				prefix := got[0].ID[:2]
				want := len(snapshotA)
				if prefix == "b-" {
					want = len(snapshotB)
				}
				mixed := len(got) != want
				for _, d := range got {
					if d.ID[:2] != prefix {
						mixed = true
					}
				}
				if mixed {
					select {
					case errs <- fmt.Sprintf("mixed result of %d descriptors", len(got)):
					default:
					}
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
