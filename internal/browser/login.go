package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// query is one element lookup, either CSS or XPath. Cascades are ordered from
// the exact structural selector (fast, brittle) to generic attribute
// selectors (resilient), same as the context-menu matching.
type query struct {
	css   string
	xpath string
}

var emailQueries = []query{
	{xpath: "/html/body/div[1]/div[2]/div[2]/div[1]/div[2]/div/div[1]/div[1]/input"},
	{css: "input[type='email']"},
	{css: "input[name='email']"},
	{css: "#email"},
	{css: "input[name='username']"},
}

var passwordQueries = []query{
	{xpath: "/html/body/div[1]/div[2]/div[2]/div[1]/div[3]/div/div[1]/div[1]/input"},
	{css: "input[type='password']"},
	{css: "input[name='password']"},
	{css: "#password"},
}

// Some variants of the login page hide the form behind an "email" choice.
var emailFlowQueries = []query{
	{xpath: "//button[contains(., 'Email') or contains(., 'email')]"},
	{xpath: "//div[contains(., 'Email') and @role='button']"},
	{css: "button[data-testid*='email'], button[data-test-id*='email']"},
}

var submitQueries = []query{
	{css: "button[type='submit']"},
	{css: "button[data-testid='login-submit'], button[data-test-id='login-submit']"},
	{xpath: "//button[contains(., 'Log in') or contains(., 'Sign in') or contains(., 'Log In') or contains(., 'Sign In')]"},
	{xpath: "//button[contains(., 'LOGIN')]"},
	{css: "input[type='submit']"},
	{xpath: "/html/body/div[1]/div[2]/div[2]/div[1]/button"},
	{css: "button.btn-primary, button.primary"},
}

// Selectors that only exist once we are signed in.
const loggedInSelector = `[data-test-id='user-menu'], [data-testid='user-menu'], .user-menu`

// Login signs in on the GoPro login page with the given credentials. It fails
// when the form cannot be driven or the login does not complete within wait.
func (m *Manager) Login(email, password string, wait time.Duration) error {
	logger.Info("Opening %s and attempting automated login...", URLLogin)

	page, err := stealth.Page(m.Browser)
	if err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := page.Navigate(URLLogin); err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	if _, err := page.Timeout(30 * time.Second).Element("form, input, button"); err != nil {
		return fmt.Errorf("login page did not load")
	}

	// Best effort; most variants show the form directly.
	if el := findFirst(page, emailFlowQueries); el != nil {
		_ = clickElement(el)
		time.Sleep(500 * time.Millisecond)
	}

	if !fillFirst(page, emailQueries, email) || !fillFirst(page, passwordQueries, password) {
		return fmt.Errorf("could not find email/password fields; login automation failed")
	}

	if !m.submitLogin(page) {
		return fmt.Errorf("could not find login submit button; login automation failed")
	}

	if err := waitLoggedIn(page, wait); err != nil {
		return err
	}

	// Let post-login redirects and cookie writes settle.
	time.Sleep(3 * time.Second)
	return nil
}

func (m *Manager) submitLogin(page *rod.Page) bool {
	if el := findFirst(page, submitQueries); el != nil {
		if clickElement(el) == nil {
			return true
		}
	}

	// Any button whose text looks like a login action.
	if buttons, err := page.Elements("button"); err == nil {
		for _, b := range buttons {
			text, err := b.Text()
			if err != nil {
				continue
			}
			lower := strings.ToLower(text)
			for _, s := range []string{"login", "sign in", "log in"} {
				if strings.Contains(lower, s) {
					if clickElement(b) == nil {
						return true
					}
				}
			}
		}
	}

	// Last resort: submit the first form directly.
	res, err := page.Eval(`() => {
		const form = document.querySelector("form");
		if (!form) return false;
		form.submit();
		return true;
	}`)
	return err == nil && res.Value.Bool()
}

func waitLoggedIn(page *rod.Page, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if info, err := page.Info(); err == nil && !strings.HasPrefix(info.URL, URLLogin) {
			return nil
		}
		if has, _, _ := page.Has(loggedInSelector); has {
			return nil
		}
		time.Sleep(time.Second)
	}
	return fmt.Errorf("automated login did not complete within %s", wait)
}

// findFirst returns the first element any query matches, without retrying.
func findFirst(page *rod.Page, queries []query) *rod.Element {
	for _, q := range queries {
		var (
			els rod.Elements
			err error
		)
		if q.css != "" {
			els, err = page.Elements(q.css)
		} else {
			els, err = page.ElementsX(q.xpath)
		}
		if err == nil && !els.Empty() {
			return els.First()
		}
	}
	return nil
}

func fillFirst(page *rod.Page, queries []query, value string) bool {
	el := findFirst(page, queries)
	if el == nil {
		return false
	}
	if err := el.SelectAllText(); err == nil {
		if err := el.Input(value); err == nil {
			return true
		}
	}
	// Masked or readonly inputs refuse keyboard input; set the value directly.
	_, err := el.Eval(`(v) => {
		this.value = v;
		this.dispatchEvent(new Event("input", { bubbles: true }));
	}`, value)
	return err == nil
}

// clickElement clicks normally first and falls back to a JS click, which works
// when an overlay intercepts the pointer.
func clickElement(el *rod.Element) error {
	if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
		return nil
	}
	_, err := el.Eval(`() => this.click()`)
	return err
}
