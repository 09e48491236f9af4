package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAccumulatesResults(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Errorf("deliberate failure")
		})
		c.Run("fails hard", func(c *Context) {
			c.Errorf("deliberate failure")
			c.FailNow()
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 2)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	assert.Equal(t, "fails hard", results.Failures[1].TestID.String())
}

func TestRunRecoversFromPanic(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
		c.Run("still runs", func(c *Context) {})
	})

	require.Len(t, results.Failures, 1)
	assert.Equal(t, "panics", results.Failures[0].TestID.String())
}

func TestRunSkippedTestIsNotAFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not applicable")
		})
	})
	assert.True(t, results.OK())
	assert.Equal(t, 1, results.SkippedCount())

	var recorded *TestResult
	for i := range results.Tests {
		if results.Tests[i].TestID.String() == "skipped" {
			recorded = &results.Tests[i]
		}
	}
	require.NotNil(t, recorded, "skipped tests must still be recorded in the results")
	assert.True(t, recorded.Skipped)
	assert.Empty(t, recorded.Errors)
}

func TestRunAppliesFilter(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("excluded"))

	ran := map[string]bool{}
	results := Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("included test", func(c *Context) { ran["included"] = true })
		c.Run("excluded test", func(c *Context) { ran["excluded"] = true })
	})

	assert.True(t, ran["included"])
	assert.False(t, ran["excluded"])
	assert.Equal(t, 1, results.SkippedCount(), "filtered-out tests count as skipped")
}

func TestSubtestIDsNest(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("child", func(c *Context) {
				ids = append(ids, c.ID().String())
			})
		})
	})
	assert.Equal(t, []string{"parent/child"}, ids)
}
