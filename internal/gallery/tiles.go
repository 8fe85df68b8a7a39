package gallery

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// ErrContainerNotFound means the media container is absent: the page never
// finished loading or the markup moved. Fatal to the run.
var ErrContainerNotFound = errors.New(`media container beneath element with id "all" not found`)

// Tiles waits up to wait for the gallery root, then returns the direct
// children of its container as the tile sequence, in DOM order. Positions are
// only stable for the current enumeration.
func Tiles(page *rod.Page, wait time.Duration) (rod.Elements, error) {
	if _, err := page.Timeout(wait).Element("#all"); err != nil {
		return nil, ErrContainerNotFound
	}

	roots, err := page.Elements("#all")
	if err != nil || roots.Empty() {
		return nil, ErrContainerNotFound
	}
	containers, err := roots.First().ElementsX("./div")
	if err != nil || containers.Empty() {
		return nil, ErrContainerNotFound
	}

	tiles, err := containers.First().ElementsX("./*")
	if err != nil {
		return nil, ErrContainerNotFound
	}
	return tiles, nil
}

// DownloadOriginal context-clicks the tile and clicks the first menu entry
// the matcher strategies accept. Failures are per-tile: the caller logs them
// and moves on.
func DownloadOriginal(page *rod.Page, tile *rod.Element, wait time.Duration) error {
	// Off-screen tiles don't get a context menu.
	_ = tile.ScrollIntoView()

	if err := tile.Click(proto.InputMouseButtonRight, 1); err != nil {
		// Synthetic event fallback when the pointer path is blocked.
		if _, jsErr := tile.Eval(`() => this.dispatchEvent(
			new MouseEvent("contextmenu", { bubbles: true, cancelable: true }))`); jsErr != nil {
			return fmt.Errorf("context click: %w", err)
		}
	}

	item, err := FindMenuItem(&rodMenu{page: page, wait: wait}, DefaultStrategies())
	if err != nil {
		return err
	}
	if err := item.Click(); err != nil {
		return fmt.Errorf("click menu item: %w", err)
	}
	return nil
}

// rodMenu adapts the live page to the Menu interface once a context menu is
// open. The selector lookup carries the element wait; by the time the
// keyword fallback runs the menu either rendered or never will.
type rodMenu struct {
	page *rod.Page
	wait time.Duration
}

func (m *rodMenu) BySelector(sel string) (MenuItem, error) {
	el, err := m.page.Timeout(m.wait).Element(sel)
	if err != nil {
		return nil, ErrNoMatch
	}
	return &rodMenuItem{el: el.CancelTimeout()}, nil
}

func (m *rodMenu) Candidates() ([]MenuItem, error) {
	els, err := m.page.Elements(`a, button, li, [role="menuitem"]`)
	if err != nil {
		return nil, err
	}
	items := make([]MenuItem, 0, len(els))
	for _, el := range els {
		items = append(items, &rodMenuItem{el: el})
	}
	return items, nil
}

type rodMenuItem struct {
	el *rod.Element
}

func (i *rodMenuItem) Text() (string, error) {
	return i.el.Text()
}

func (i *rodMenuItem) Click() error {
	if err := i.el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		_, jsErr := i.el.Eval(`() => this.click()`)
		if jsErr != nil {
			return err
		}
	}
	return nil
}
