package scenariotests

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabot-http/conformance-tests/fixture"
)

const maxRedirectHops = 10

func DoRedirectTests(t *T) {
	t.Run("terminal hop points at fixed content", func(t *T) {
		raw := t.FetchRaw(fixture.PathRedirectCountDown + "?0")
		assert.Equal(t, "302 Found", raw.Status)
		assert.Equal(t, fixture.PathWithLength, raw.Header.Get("Location"))
	})

	t.Run("countdown chain has exactly n+1 hops", func(t *T) {
		target := fixture.PathRedirectCountDown + "?3"
		hops := 0
		for {
			raw := t.FetchRaw(target)
			if !strings.HasPrefix(raw.Status, "302") {
				assert.Equal(t, "200 OK", raw.Status)
				assert.Equal(t, fixture.WithLengthBody, string(raw.Body))
				break
			}
			hops++
			require.LessOrEqual(t, hops, maxRedirectHops, "redirect chain does not terminate")
			target = raw.Header.Get("Location")
			require.NotEmpty(t, target, "redirect hop without a Location header")
			t.Debug("hop %d -> %s", hops, target)
		}
		assert.Equal(t, 4, hops)
	})

	t.Run("each hop decrements the counter", func(t *T) {
		for n := 3; n > 0; n-- {
			raw := t.FetchRaw(fmt.Sprintf("%s?%d", fixture.PathRedirectCountDown, n))
			assert.Equal(t, fmt.Sprintf("%s?%d", fixture.PathRedirectCountDown, n-1),
				raw.Header.Get("Location"))
		}
	})

	t.Run("client follows the chain to the content", func(t *T) {
		out := t.RunClient(fixture.PathRedirectCountDown + "?3")
		assert.Equal(t, fixture.WithLengthBody, string(out))
	})
}
