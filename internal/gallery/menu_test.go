package gallery

import (
	"errors"
	"testing"
)

type fakeItem struct {
	text    string
	clicked bool
	textErr error
}

func (f *fakeItem) Text() (string, error) { return f.text, f.textErr }
func (f *fakeItem) Click() error          { f.clicked = true; return nil }

type fakeMenu struct {
	bySelector map[string]*fakeItem
	candidates []*fakeItem
}

func (f *fakeMenu) BySelector(sel string) (MenuItem, error) {
	if item, ok := f.bySelector[sel]; ok {
		return item, nil
	}
	return nil, ErrNoMatch
}

func (f *fakeMenu) Candidates() ([]MenuItem, error) {
	items := make([]MenuItem, len(f.candidates))
	for i, it := range f.candidates {
		items[i] = it
	}
	return items, nil
}

func TestExactSelectorBeatsKeywordMatch(t *testing.T) {
	exact := &fakeItem{text: "Original quality"}
	keyword := &fakeItem{text: "Download Original"}
	menu := &fakeMenu{
		bySelector: map[string]*fakeItem{menuItemSelector: exact},
		candidates: []*fakeItem{keyword, exact},
	}

	item, err := FindMenuItem(menu, DefaultStrategies())
	if err != nil {
		t.Fatalf("FindMenuItem returned error: %v", err)
	}
	if item != MenuItem(exact) {
		t.Error("selector match must win over keyword candidates")
	}
}

func TestKeywordFallbackIsCaseInsensitive(t *testing.T) {
	for _, text := range []string{"Download Original", "DOWNLOAD ORIGINAL", "download original"} {
		t.Run(text, func(t *testing.T) {
			target := &fakeItem{text: text}
			menu := &fakeMenu{
				candidates: []*fakeItem{
					{text: "Share"},
					{text: "Delete"},
					target,
				},
			}

			item, err := FindMenuItem(menu, DefaultStrategies())
			if err != nil {
				t.Fatalf("FindMenuItem returned error: %v", err)
			}
			if item != MenuItem(target) {
				t.Errorf("matched wrong candidate for %q", text)
			}
		})
	}
}

func TestKeywordFallbackTakesFirstCandidateInOrder(t *testing.T) {
	first := &fakeItem{text: "Download standard"}
	second := &fakeItem{text: "Download Original"}
	menu := &fakeMenu{candidates: []*fakeItem{{text: "Share"}, first, second}}

	item, err := FindMenuItem(menu, DefaultStrategies())
	if err != nil {
		t.Fatalf("FindMenuItem returned error: %v", err)
	}
	if item != MenuItem(first) {
		t.Error("keyword strategy must return the first matching candidate")
	}
}

func TestNoMatchAnywhere(t *testing.T) {
	menu := &fakeMenu{candidates: []*fakeItem{{text: "Share"}, {text: "Delete"}}}

	_, err := FindMenuItem(menu, DefaultStrategies())
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got %v, want ErrNoMatch", err)
	}
}

func TestKeywordFallbackSkipsUnreadableCandidates(t *testing.T) {
	target := &fakeItem{text: "Download Original"}
	menu := &fakeMenu{
		candidates: []*fakeItem{
			{textErr: errors.New("element detached")},
			target,
		},
	}

	item, err := FindMenuItem(menu, DefaultStrategies())
	if err != nil {
		t.Fatalf("FindMenuItem returned error: %v", err)
	}
	if item != MenuItem(target) {
		t.Error("unreadable candidates must be skipped, not fatal")
	}
}

func TestEmptyMenu(t *testing.T) {
	menu := &fakeMenu{}
	if _, err := FindMenuItem(menu, DefaultStrategies()); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got %v, want ErrNoMatch", err)
	}
}
