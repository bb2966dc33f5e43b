package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/uguryavuz/ath-events/internal/event"
	"github.com/uguryavuz/ath-events/internal/logger"
)

const (
	// EventsHost is the only host event links may point at.
	EventsHost = "events.bostonathenaeum.org"
	// BaseURL resolves relative card links.
	BaseURL = "https://" + EventsHost
	// localePrefix is the localized path every event page lives under.
	localePrefix = "/en/"
)

// Scraper extracts event records from a materialized listing page.
type Scraper struct {
	base *url.URL
	now  func() time.Time
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithClock sets the clock used for the badge-fallback year.
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

// New creates a Scraper for the Athenaeum events site.
func New(opts ...Option) *Scraper {
	base, _ := url.Parse(BaseURL)
	s := &Scraper{base: base, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Parse walks the snapshot HTML and returns the validated, deduplicated
// event records in canonical order. Candidate cards missing a load-bearing
// field (url, title, date) are dropped silently; every other missing field
// defaults to empty.
func (s *Scraper) Parse(r io.Reader) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	seen := make(map[string]bool)
	events := make([]*event.Event, 0)

	doc.Find("a.product-item[href]").Each(func(i int, card *goquery.Selection) {
		href, _ := card.Attr("href")
		absURL := s.resolve(href)
		if !looksLikeEventURL(absURL) {
			return
		}

		title := event.Normalize(card.Find(".product-item__name").First().Text())
		if title == "" {
			return
		}

		timeET := strings.ToUpper(event.Normalize(card.Find("time").First().Text()))
		venue := event.Normalize(card.Find(".product-item__venue").First().Text())
		status := extractStatus(card)
		keywords := extractKeywords(card)

		date, ok := s.resolveDate(card)
		if !ok {
			logger.Debug("dropping card with no resolvable date", logger.Fields{"url": absURL})
			return
		}

		if seen[absURL] {
			return
		}
		seen[absURL] = true

		events = append(events, &event.Event{
			URL:      absURL,
			Date:     date,
			TimeET:   timeET,
			Status:   status,
			Title:    title,
			Venue:    venue,
			Keywords: keywords,
		})
	})

	event.SortCanonical(events)
	return events, nil
}

// resolve turns a card href into an absolute URL against the site base.
func (s *Scraper) resolve(href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return s.base.ResolveReference(ref).String()
}

// looksLikeEventURL checks the site's path scheme: the link must stay on the
// events host, live under the localized prefix, and not be the listing root
// itself. This is a format check only, never a network check.
func looksLikeEventURL(u string) bool {
	p, err := url.Parse(u)
	if err != nil {
		return false
	}
	if p.Host != "" && p.Host != EventsHost {
		return false
	}
	if !strings.HasPrefix(p.Path, localePrefix) {
		return false
	}
	return strings.TrimRight(p.Path, "/") != "/en"
}

// extractStatus scans up to the first three price/status elements and keeps
// the first non-empty normalized text.
func extractStatus(card *goquery.Selection) string {
	var texts []string
	card.Find(".product-item__price").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		texts = append(texts, event.Normalize(sel.Text()))
		return i < 2
	})
	raw, ok := pickFirst(texts, func(t string) bool { return t != "" })
	if !ok {
		return ""
	}
	return event.NormalizeStatus(raw)
}

func extractKeywords(card *goquery.Selection) []string {
	var keywords []string
	card.Find(".keyword-container .event-keyword span").Each(func(i int, sel *goquery.Selection) {
		if k := event.Normalize(sel.Text()); k != "" {
			keywords = append(keywords, k)
		}
	})
	return keywords
}

// resolveDate reads the card's date: first the nearest ancestor partition
// header ("FEBRUARY 25, 2026"), then the compact month/day badge with the
// current year assumed.
func (s *Scraper) resolveDate(card *goquery.Selection) (event.Date, bool) {
	header := card.ParentsFiltered("div.partition").First().
		Find("h2.separator-title span").First().Text()
	if d, ok := event.ParseDateHeader(header); ok {
		return d, true
	}

	mon := strings.ToUpper(event.Normalize(card.Find(".bt-date-badge__month").First().Text()))
	month := event.MonthNumber(mon)
	if month == 0 {
		return event.Date{}, false
	}
	day, err := strconv.Atoi(event.Normalize(card.Find(".bt-date-badge__day").First().Text()))
	if err != nil {
		return event.Date{}, false
	}
	d := event.Date{Year: s.now().Year(), Month: month, Day: day}
	return d, d.Valid()
}

// pickFirst scans candidates in order and keeps the first acceptable one.
func pickFirst(candidates []string, ok func(string) bool) (string, bool) {
	for _, c := range candidates {
		if ok(c) {
			return c, true
		}
	}
	return "", false
}
