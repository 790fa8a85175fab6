package sheetCache

import (
	"errors"
	"testing"

	"cutscene-player/pkg/sharedTypes"
)

func testSheet(t *testing.T, index int) *Sheet {
	t.Helper()
	w, h := sharedTypes.SheetWidth, sharedTypes.SheetHeight
	s, err := NewSheet(index, make([]byte, w*h*4), w, h)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	return s
}

func TestNewSheetValidation(t *testing.T) {
	w, h := sharedTypes.SheetWidth, sharedTypes.SheetHeight
	tests := []struct {
		name  string
		pix   int
		w, h  int
		index int
		ok    bool
	}{
		{"exact grid", w * h * 4, w, h, 0, true},
		{"larger image", (w + 2) * (h + 1) * 4, w + 2, h + 1, 3, true},
		{"too narrow", (w - 1) * h * 4, w - 1, h, 0, false},
		{"too short", w * 250 * 4, w, 250, 0, false},
		{"short buffer", w*h*4 - 4, w, h, 0, false},
		{"negative index", w * h * 4, w, h, -1, false},
	}
	for _, tc := range tests {
		_, err := NewSheet(tc.index, make([]byte, tc.pix), tc.w, tc.h)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidSheet) {
			t.Errorf("%s: expected ErrInvalidSheet, got %v", tc.name, err)
		}
	}
}

func TestInsertIsWriteOnce(t *testing.T) {
	c := New()
	c.Reset(1, 3)

	first := testSheet(t, 0)
	second := testSheet(t, 0)

	if !c.Insert(1, 0, first) {
		t.Fatal("first insert rejected")
	}
	if c.Insert(1, 0, second) {
		t.Error("second insert into a present slot must be a no-op")
	}
	got, ok := c.Get(1, 0)
	if !ok || got != first {
		t.Error("slot was overwritten")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestInsertIgnoresOtherVideosAndRanges(t *testing.T) {
	c := New()
	c.Reset(2, 2)

	if c.Insert(3, 0, testSheet(t, 0)) {
		t.Error("insert for an inactive video must be ignored")
	}
	if c.Insert(2, 2, testSheet(t, 2)) {
		t.Error("insert past the last slot must be ignored")
	}
	if c.Insert(2, -1, testSheet(t, 0)) {
		t.Error("negative index must be ignored")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestAbsentSlotIsNotAnError(t *testing.T) {
	c := New()
	c.Reset(0, 4)
	if _, ok := c.Get(0, 3); ok {
		t.Error("expected absent slot")
	}
	if _, ok := c.Get(0, 99); ok {
		t.Error("expected absent for out-of-range index")
	}
}

func TestEvictDropsWholeVideo(t *testing.T) {
	c := New()
	c.Reset(5, 2)
	c.Insert(5, 0, testSheet(t, 0))
	c.Insert(5, 1, testSheet(t, 1))

	if c.Bytes() == 0 {
		t.Fatal("expected resident bytes")
	}

	c.Evict(4)
	if c.Len() != 2 {
		t.Fatal("evicting another video must not touch the cache")
	}

	c.Evict(5)
	if c.Len() != 0 || c.Bytes() != 0 || c.Capacity() != 0 {
		t.Errorf("cache not empty after evict: len=%d bytes=%d cap=%d", c.Len(), c.Bytes(), c.Capacity())
	}
	if c.Video() != sharedTypes.NoVideo {
		t.Errorf("Video = %d after evict", c.Video())
	}
	if c.Has(5, 0) {
		t.Error("sheet survived eviction")
	}
}

func TestResetEvictsPreviousVideo(t *testing.T) {
	c := New()
	c.Reset(1, 1)
	c.Insert(1, 0, testSheet(t, 0))

	c.Reset(2, 3)
	if c.Has(1, 0) {
		t.Error("previous video still cached after Reset")
	}
	if c.Capacity() != 3 || c.Len() != 0 {
		t.Errorf("unexpected shape after Reset: cap=%d len=%d", c.Capacity(), c.Len())
	}
}

func TestPrefixAndFraction(t *testing.T) {
	c := New()
	if c.Fraction() != 0 {
		t.Error("empty cache fraction must be 0")
	}

	c.Reset(0, 4)
	c.Insert(0, 0, testSheet(t, 0))
	c.Insert(0, 1, testSheet(t, 1))
	c.Insert(0, 3, testSheet(t, 3))

	if c.Prefix() != 2 {
		t.Errorf("Prefix = %d, want 2", c.Prefix())
	}
	if got := c.Fraction(); got != 0.75 {
		t.Errorf("Fraction = %v, want 0.75", got)
	}
}

func TestSheetRGBAView(t *testing.T) {
	s := testSheet(t, 0)
	s.Pix[0] = 200
	img := s.RGBA()
	if img.Bounds().Dx() != sharedTypes.SheetWidth || img.Bounds().Dy() != sharedTypes.SheetHeight {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 200 {
		t.Errorf("RGBA view does not share pixels, r=%d", r>>8)
	}
}
