// Package catalog is the place directory the demo form searches. It behaves
// like a remote backend: answers can be delayed and calls throttled.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"formdeck/internal/domain"
)

//go:embed places.yaml
var defaultPlaces []byte

// ErrEmptyCatalog is returned when a catalog file lists no places
var ErrEmptyCatalog = errors.New("catalog: no places")

type file struct {
	Places []domain.Place `yaml:"places"`
}

// Options control how the catalog answers
type Options struct {
	Latency    time.Duration // simulated round trip per search
	RatePerSec float64       // 0 means unthrottled
	Burst      int
	Fuzzy      bool
	MaxResults int // 0 means unlimited
}

// Catalog answers place and country searches
type Catalog struct {
	places  []domain.Place
	opts    Options
	limiter *rate.Limiter // nil if unthrottled
	group   singleflight.Group
}

// Load reads places from a YAML file, or the embedded catalog when path is empty
func Load(path string) ([]domain.Place, error) {
	data := defaultPlaces
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(f.Places) == 0 {
		return nil, ErrEmptyCatalog
	}
	return f.Places, nil
}

// New creates a catalog over places
func New(places []domain.Place, opts Options) (*Catalog, error) {
	if len(places) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		places: append([]domain.Place(nil), places...),
		opts:   opts,
	}
	if opts.RatePerSec > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), burst)
	}
	return c, nil
}

// Len returns the number of places
func (c *Catalog) Len() int {
	return len(c.places)
}

// Search returns places whose name matches term. Concurrent searches for the
// same term share one lookup.
func (c *Catalog) Search(ctx context.Context, term string) ([]domain.Place, error) {
	v, err, shared := c.group.Do("place:"+term, func() (interface{}, error) {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		return c.matchPlaces(term), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Printf("Catalog: shared lookup for '%s'", term)
	}
	return v.([]domain.Place), nil
}

// Countries returns the distinct country names matching query, sorted
func (c *Catalog) Countries(ctx context.Context, query string) ([]string, error) {
	v, err, _ := c.group.Do("country:"+query, func() (interface{}, error) {
		if err := c.wait(ctx); err != nil {
			return nil, err
		}
		return c.matchCountries(query), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// wait applies throttling and simulated latency
func (c *Catalog) wait(ctx context.Context) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("catalog throttled: %w", err)
		}
	}
	if c.opts.Latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(c.opts.Latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type rankedPlace struct {
	place    domain.Place
	isPrefix bool
}

func (c *Catalog) matchPlaces(term string) []domain.Place {
	query := strings.TrimSpace(term)
	if query == "" {
		return nil
	}
	if c.opts.Fuzzy {
		return c.limit(c.fuzzyPlaces(query))
	}

	q := strings.ToLower(query)
	matches := make([]rankedPlace, 0, 16)
	for _, p := range c.places {
		name := strings.ToLower(p.Name)
		if !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, rankedPlace{place: p, isPrefix: strings.HasPrefix(name, q)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].place.Name < matches[j].place.Name
	})

	out := make([]domain.Place, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.place)
	}
	return c.limit(out)
}

// placeSource adapts places to fuzzy.Source
type placeSource []domain.Place

func (s placeSource) Len() int            { return len(s) }
func (s placeSource) String(i int) string { return strings.ToLower(s[i].Name) }

func (c *Catalog) fuzzyPlaces(query string) []domain.Place {
	matches := fuzzy.FindFrom(strings.ToLower(query), placeSource(c.places))
	out := make([]domain.Place, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.places[m.Index])
	}
	return out
}

func (c *Catalog) matchCountries(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.places {
		if seen[p.Country] {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Country), q) {
			continue
		}
		seen[p.Country] = true
		out = append(out, p.Country)
	}
	sort.Strings(out)
	return c.limitStrings(out)
}

func (c *Catalog) limit(places []domain.Place) []domain.Place {
	if c.opts.MaxResults > 0 && len(places) > c.opts.MaxResults {
		return places[:c.opts.MaxResults]
	}
	return places
}

func (c *Catalog) limitStrings(values []string) []string {
	if c.opts.MaxResults > 0 && len(values) > c.opts.MaxResults {
		return values[:c.opts.MaxResults]
	}
	return values
}
