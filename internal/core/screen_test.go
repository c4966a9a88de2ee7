package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat(strings.Repeat(" ", 6)+"\n", 2) + strings.Repeat(" ", 6)
	if s.String() != want {
		t.Errorf("new screen not blank: %q", s.String())
	}

	if z := NewScreen(-1, 4); z.Width() != 0 || z.String() != "\n\n\n" {
		t.Errorf("negative width should clamp to 0, got %d / %q", z.Width(), z.String())
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 2)
	tests := []struct {
		name string
		x, y int
		in   bool
	}{
		{"origin", 0, 0, true},
		{"last cell", 3, 1, true},
		{"left of screen", -1, 0, false},
		{"right of screen", 4, 0, false},
		{"above", 0, -1, false},
		{"below", 0, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.Clear()
			s.SetColored(tc.x, tc.y, '#', ColorLava)
			got := s.GetCell(tc.x, tc.y)
			if tc.in && (got.Rune != '#' || got.Color != ColorLava) {
				t.Errorf("GetCell = %+v, want lava '#'", got)
			}
			if !tc.in {
				if got != blankCell {
					t.Errorf("off-screen GetCell = %+v, want blank", got)
				}
				if strings.Contains(s.String(), "#") {
					t.Error("off-screen Set wrote into the buffer")
				}
			}
		})
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want string
	}{
		{"left", func(s *Screen) { s.DrawText(1, 0, "abc") }, " abc      "},
		{"clipped", func(s *Screen) { s.DrawText(8, 0, "abc") }, "        ab"},
		{"negative start", func(s *Screen) { s.DrawText(-2, 0, "abcd") }, "cd        "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "hi") }, "    hi    "},
		{"centered runes", func(s *Screen) { s.DrawTextCentered(0, "≈≈≈≈") }, "   ≈≈≈≈   "},
		{"right", func(s *Screen) { s.DrawTextRight(0, 1, "end", ColorNotice) }, "      end "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(10, 1)
			tc.draw(s)
			if got := s.Row(0); got != tc.want {
				t.Errorf("row = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScreenTextColor(t *testing.T) {
	s := NewScreen(8, 1)
	s.DrawTextColored(0, 0, "▲▼ok", ColorHydro)
	for x := range 4 {
		if c := s.GetCell(x, 0).Color; c != ColorHydro {
			t.Errorf("cell %d color = %v, want hydro", x, c)
		}
	}
	if c := s.GetCell(4, 0).Color; c != ColorDefault {
		t.Errorf("cell after the text should stay default, got %v", c)
	}
}

func TestScreenDrawRectColored(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawRectColored(NewRect(1, 1, 3, 2), '≈', ColorWater)
	want := []string{
		"     ",
		" ≈≈≈ ",
		" ≈≈≈ ",
		"     ",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("got\n%s\nwant\n%s", got, strings.Join(want, "\n"))
	}

	// Partly off the screen
	s.DrawRectColored(NewRect(3, 3, 5, 5), '#', ColorStone)
	if s.Get(4, 3) != '#' || s.GetCell(3, 3).Color != ColorStone {
		t.Error("visible part of the rect should be drawn")
	}
}

func TestScreenDrawPanel(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRectColored(NewRect(0, 0, 6, 4), 'x', ColorGoo)
	s.DrawPanel(NewRect(0, 0, 5, 4), ColorNotice)

	want := []string{
		"┌───┐x",
		"│   │x",
		"│   │x",
		"└───┘x",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("got\n%s\nwant\n%s", got, strings.Join(want, "\n"))
	}
	if s.GetCell(0, 0).Color != ColorNotice || s.GetCell(1, 1).Color != ColorDefault {
		t.Error("frame should take the panel color and the inside should be cleared")
	}

	s.Clear()
	s.DrawPanel(NewRect(0, 0, 1, 4), ColorNotice)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("a panel narrower than its frame should draw nothing")
	}
}

func TestScreenResize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want string
	}{
		{"grow", 4, 3, "ab  \ncd  \n    "},
		{"shrink", 1, 1, "a"},
		{"wider shorter", 3, 1, "ab "},
		{"same", 2, 2, "ab\ncd"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(2, 2)
			s.DrawText(0, 0, "ab")
			s.DrawText(0, 1, "cd")

			s.Resize(tc.w, tc.h)
			if s.Width() != tc.w || s.Height() != tc.h {
				t.Fatalf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tc.w, tc.h)
			}
			if got := s.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	s.DrawText(0, 0, "abc")
	for _, y := range []int{-1, 1} {
		if got := s.Row(y); got != "   " {
			t.Errorf("Row(%d) = %q, want blanks", y, got)
		}
	}
}
