package fixture

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Route paths served by the fixture server. The catalog normalizes request
// paths before lookup, so "/with-length" and "/with_length" resolve to the
// same scenario.
const (
	PathNoLength          = "/no-length"
	PathWithLength        = "/with-length"
	PathSmallChunked      = "/small-chunked"
	PathLargeChunked      = "/large-chunked"
	PathE500              = "/e500"
	PathLoremIpsum        = "/lorem-ipsum"
	PathRedirectCountDown = "/redirect-count-down"
)

// Body texts. The chunked scenarios are defined so that the concatenation of
// their chunk payloads reproduces a plain body exactly, which lets tests do
// cross-scenario equivalence checks.
const (
	NoLengthBody     = "Content without header for its length."
	WithLengthBody   = "It is working."
	LargeChunkedText = "It is working.\nWith chunked larger than the buffer."
	E500Body         = "It is not working."
	NotFoundBody     = "No such scenario.\n"
)

// LoremIpsumBody is large enough that a client cannot read it in one small
// buffer fill.
const LoremIpsumBody = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do" +
	" eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim" +
	" veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo" +
	" consequat. Duis aute irure dolor in reprehenderit in voluptate velit esse cillum" +
	" dolore eu fugiat nulla pariatur. Excepteur sint occaecat cupidatat non proident," +
	" sunt in culpa qui officia deserunt mollit anim id est laborum.\n" +
	"Sed ut perspiciatis unde omnis iste natus error sit voluptatem accusantium" +
	" doloremque laudantium, totam rem aperiam, eaque ipsa quae ab illo inventore" +
	" veritatis et quasi architecto beatae vitae dicta sunt explicabo. Nemo enim ipsam" +
	" voluptatem quia voluptas sit aspernatur aut odit aut fugit, sed quia consequuntur" +
	" magni dolores eos qui ratione voluptatem sequi nesciunt.\n" +
	"Neque porro quisquam est, qui dolorem ipsum quia dolor sit amet, consectetur," +
	" adipisci velit, sed quia non numquam eius modi tempora incidunt ut labore et" +
	" dolore magnam aliquam quaerat voluptatem.\n"

// ScenarioFunc produces a scenario from the raw query string, for routes whose
// response depends on the request (e.g. redirect depth).
type ScenarioFunc func(query string) Scenario

type route struct {
	scenario   *Scenario
	parametric ScenarioFunc
}

// Catalog is the static mapping from normalized paths to scenarios. It is
// built once at server startup and immutable afterward.
type Catalog struct {
	routes   map[string]route
	notFound Scenario
}

// NewCatalog builds the standard scenario set.
func NewCatalog() *Catalog {
	c := &Catalog{routes: map[string]route{}}

	c.add(PathNoLength, textScenario("no_length", "200 OK",
		[]byte(NoLengthBody), FramingNone))
	c.add(PathWithLength, textScenario("with_length", "200 OK",
		[]byte(WithLengthBody), FramingContentLength))
	c.add(PathSmallChunked, textScenario("small_chunked", "200 OK",
		encodeChunks("It", " is", " ", "wo", "rk", "ing", "."), FramingChunked))
	c.add(PathLargeChunked, textScenario("large_chunked", "200 OK",
		encodeChunks("It is working.\n", "With chunked larger than the buffer."), FramingChunked))
	c.add(PathE500, textScenario("e500", "500 Internal Server Error",
		[]byte(E500Body), FramingContentLength))
	c.add(PathLoremIpsum, textScenario("lorem_ipsum", "200 OK",
		[]byte(LoremIpsumBody), FramingContentLength))
	c.addFunc(PathRedirectCountDown, redirectCountDown)

	c.notFound = textScenario("not_found", "404 Not Found",
		[]byte(NotFoundBody), FramingContentLength)
	return c
}

func (c *Catalog) add(path string, s Scenario) {
	c.routes[NormalizePath(path)] = route{scenario: &s}
}

func (c *Catalog) addFunc(path string, f ScenarioFunc) {
	c.routes[NormalizePath(path)] = route{parametric: f}
}

// Resolve looks up the scenario for a request path. The second return value is
// false when no route matches; the caller decides whether that is served as
// the NotFound scenario or treated as a hard failure.
func (c *Catalog) Resolve(path, query string) (Scenario, bool) {
	r, ok := c.routes[NormalizePath(path)]
	if !ok {
		return Scenario{}, false
	}
	if r.parametric != nil {
		return r.parametric(query), true
	}
	return *r.scenario, true
}

// NotFound is the default scenario for unmatched paths.
func (c *Catalog) NotFound() Scenario {
	return c.notFound
}

// Names lists the route keys in stable order, for the admin status resource.
func (c *Catalog) Names() []string {
	var names []string
	for name := range c.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizePath maps a request path to its route key: leading slash stripped,
// lowercased, with "-" and any interior "/" turned into "_".
func NormalizePath(p string) string {
	p = strings.TrimPrefix(p, "/")
	p = strings.ToLower(p)
	p = strings.ReplaceAll(p, "-", "_")
	p = strings.ReplaceAll(p, "/", "_")
	return p
}

// redirectCountDown implements the countdown chain: the query string carries
// an integer n. While n > 0 each hop redirects to the same route with n-1; at
// n == 0 the final hop redirects to the terminal fixed-content route. A chain
// starting at n therefore has exactly n+1 hops before content is reached.
func redirectCountDown(query string) Scenario {
	n, err := strconv.Atoi(query)
	if err != nil || n < 0 {
		n = 0
	}
	location := PathWithLength
	if n > 0 {
		location = fmt.Sprintf("%s?%d", PathRedirectCountDown, n-1)
	}
	return textScenario("redirect_count_down", "302 Found",
		nil, FramingContentLength, Header{"Location", location})
}
