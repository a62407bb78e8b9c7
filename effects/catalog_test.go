package effects

import "testing"

func TestCatalog(t *testing.T) {
	all := Catalog()
	if len(all) != 22 {
		t.Fatalf("catalog has %d entries", len(all))
	}
	seen := map[ID]bool{}
	masked := 0
	for _, e := range all {
		if e.Masked {
			masked++
			if e.ID != None {
				t.Errorf("%s: masked effects use the pass-through id, got %d", e.Key, e.ID)
			}
			continue
		}
		if seen[e.ID] {
			t.Errorf("%s: duplicate id %d", e.Key, e.ID)
		}
		seen[e.ID] = true
	}
	if masked != 6 || len(seen) != int(NumIDs) {
		t.Errorf("masked=%d direct=%d", masked, len(seen))
	}
	for _, k := range []string{KeyWhiteGlow, KeyBlackBackground, KeyWhiteBackground, KeyBlur, KeyStaticSilhouette, KeyEcho} {
		if !IsMasked(k) {
			t.Errorf("%s should be masked", k)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	e := Lookup("no-such-effect")
	if e.Key != "none" || e.ID != None || e.Masked {
		t.Errorf("unknown key resolved to %+v", e)
	}
	if _, ok := Find("no-such-effect"); ok {
		t.Error("Find reported an unknown key as known")
	}
	if e := Lookup("vhs"); e.ID != VHS {
		t.Errorf("vhs -> %d", e.ID)
	}
}

func TestNextPrev(t *testing.T) {
	if got := Next("none"); got != "grayscale" {
		t.Errorf("Next(none) = %s", got)
	}
	if got := Prev("none"); got != KeyEcho {
		t.Errorf("Prev(none) = %s", got)
	}
	if got := Next(KeyEcho); got != "none" {
		t.Errorf("Next(%s) = %s", KeyEcho, got)
	}
	key := "sepia"
	for range Catalog() {
		key = Next(key)
	}
	if key != "sepia" {
		t.Errorf("full cycle ended at %s", key)
	}
	if got := Prev(Next("vhs")); got != "vhs" {
		t.Errorf("Prev(Next(vhs)) = %s", got)
	}
}
