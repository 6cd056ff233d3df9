package draft

import "testing"

func TestNewIsPlaceholder(t *testing.T) {
	d := New("d1", "one", "9:00 AM", "Jan 5")
	if !d.IsPlaceholder() {
		t.Fatalf("new drafts start as placeholders, got %s", d.Status)
	}
	if d.HasSeed() {
		t.Fatalf("new drafts carry no seed")
	}
}

func TestHasTagIsCaseInsensitive(t *testing.T) {
	d := New("d1", "one", "9:00 AM", "Jan 5")
	d.Tags = []string{"Question", "t1"}
	if !d.HasTag("question") || !d.HasTag("T1") {
		t.Fatalf("tag lookup should ignore case: %v", d.Tags)
	}
	if d.HasTag("event") {
		t.Fatalf("unexpected tag match")
	}
}

func TestSetProgressClamps(t *testing.T) {
	d := New("d1", "one", "9:00 AM", "Jan 5")
	d.SetProgress(-5)
	if *d.Progress != 0 {
		t.Fatalf("expected clamp to 0, got %d", *d.Progress)
	}
	d.SetProgress(150)
	if *d.Progress != 100 {
		t.Fatalf("expected clamp to 100, got %d", *d.Progress)
	}
	d.SetProgress(42)
	if *d.Progress != 42 {
		t.Fatalf("expected 42, got %d", *d.Progress)
	}
}

func TestCloneIsolation(t *testing.T) {
	d := New("d1", "one", "9:00 AM", "Jan 5")
	d.Platforms = []string{"instagram"}
	d.Tags = []string{"t1"}
	d.SetProgress(10)

	c := d.Clone()
	c.Platforms[0] = "tiktok"
	c.Tags[0] = "t2"
	*c.Progress = 99

	if d.Platforms[0] != "instagram" || d.Tags[0] != "t1" || *d.Progress != 10 {
		t.Fatalf("clone shares state with original: %+v", d)
	}
	if nilDraft := (*Draft)(nil); nilDraft.Clone() != nil {
		t.Fatalf("nil clone should stay nil")
	}
}
