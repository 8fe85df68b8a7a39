package gallery

import (
	"errors"
	"strings"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// ErrNoMatch means no strategy found an actionable menu item. It is a
// per-tile failure; the batch keeps going.
var ErrNoMatch = errors.New("no matching menu item found")

// menuItemSelector is the style class GoPro currently renders context-menu
// entries with. Precise but brittle; the keyword strategy backs it up.
const menuItemSelector = ".Options_subMenuItem__aMIPC"

var menuKeywords = []string{"original", "download"}

// MenuItem is one clickable entry of an open context menu.
type MenuItem interface {
	Text() (string, error)
	Click() error
}

// Menu exposes an open context menu to the matcher strategies.
type Menu interface {
	// BySelector returns the first item matching a CSS selector.
	BySelector(sel string) (MenuItem, error)
	// Candidates returns the menu's clickable descendants in DOM order.
	Candidates() ([]MenuItem, error)
}

// Strategy locates an actionable menu item. Strategies are evaluated in
// priority order; the first hit wins.
type Strategy interface {
	Name() string
	Find(Menu) (MenuItem, error)
}

type selectorStrategy struct {
	selector string
}

func (s selectorStrategy) Name() string { return "selector" }

func (s selectorStrategy) Find(m Menu) (MenuItem, error) {
	return m.BySelector(s.selector)
}

type keywordStrategy struct {
	keywords []string
}

func (s keywordStrategy) Name() string { return "keyword" }

func (s keywordStrategy) Find(m Menu) (MenuItem, error) {
	items, err := m.Candidates()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		text, err := item.Text()
		if err != nil {
			continue
		}
		lower := strings.ToLower(text)
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return item, nil
			}
		}
	}
	return nil, ErrNoMatch
}

// DefaultStrategies is the production matcher order: the exact style-class
// selector first, the visible-text keyword scan as fallback.
func DefaultStrategies() []Strategy {
	return []Strategy{
		selectorStrategy{selector: menuItemSelector},
		keywordStrategy{keywords: menuKeywords},
	}
}

// FindMenuItem runs the strategies in order and returns the first match.
func FindMenuItem(m Menu, strategies []Strategy) (MenuItem, error) {
	for _, s := range strategies {
		item, err := s.Find(m)
		if err == nil && item != nil {
			logger.Debug("Menu item matched by %s strategy", s.Name())
			return item, nil
		}
	}
	return nil, ErrNoMatch
}
