package scenariotests

import (
	"strconv"

	"github.com/stretchr/testify/assert"

	"github.com/cabot-http/conformance-tests/fixture"
)

func DoErrorStatusTests(t *T) {
	t.Run("500 response", func(t *T) {
		raw := t.FetchRaw(fixture.PathE500)
		assert.Equal(t, "500 Internal Server Error", raw.Status)
		assert.Equal(t, strconv.Itoa(len(fixture.E500Body)), raw.Header.Get("Content-Length"))
		assert.Equal(t, fixture.E500Body, string(raw.Body))
	})

	t.Run("client captures error body", func(t *T) {
		// clients differ on whether a 500 is a failing exit, so the exit
		// status is not asserted here
		out := t.RunClientLenient(fixture.PathE500)
		assert.Equal(t, fixture.E500Body, string(out))
	})
}

func DoUnknownRouteTests(t *T) {
	t.Run("unmatched path yields the default scenario", func(t *T) {
		raw := t.FetchRaw("/no-such-scenario")
		assert.Equal(t, "404 Not Found", raw.Status)
		assert.Equal(t, fixture.NotFoundBody, string(raw.Body))
	})
}
