package suite

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitetest/browser-test-harness/framework/btest"
)

type loginAttempt struct {
	User string `json:"user" yaml:"user"`
	OK   bool   `json:"ok" yaml:"ok"`
}

func TestDataDrivenRegistersOneCasePerItem(t *testing.T) {
	items := []loginAttempt{
		{User: "alice", OK: true},
		{User: "bob", OK: false},
		{User: "carol", OK: true},
	}
	s := NewSuite[*fakeFixtures]("qa")
	RegisterDataDriven(s, StaticData(items), Title("login matrix"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item loginAttempt) {})

	cases := s.Cases()
	require.Len(t, cases, len(items))
	seen := map[string]bool{}
	for i, c := range cases {
		assert.Contains(t, c.Title, fmt.Sprintf("(%d/%d)", i+1, len(items)))
		assert.False(t, seen[c.Title], "titles must be distinct")
		seen[c.Title] = true
	}
}

func TestDataDrivenTitleEmbedsItemRendering(t *testing.T) {
	type point struct {
		A int `json:"a"`
	}
	s := NewSuite[*fakeFixtures]("qa")
	var got []point
	RegisterDataDriven(s, StaticData([]point{{A: 1}, {A: 2}}), Title("X"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item point) {
			got = append(got, item)
		})

	cases := s.Cases()
	require.Len(t, cases, 2)
	assert.Equal(t, `qa: X (1/2): {"a":1}`, cases[0].Title)
	assert.Equal(t, `qa: X (2/2): {"a":2}`, cases[1].Title)

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.Equal(t, []point{{A: 1}, {A: 2}}, got)
}

func TestDataDrivenEmptyDataSetRegistersNothing(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	RegisterDataDriven(s, StaticData([]loginAttempt{}), Title("empty"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item loginAttempt) {})
	assert.Empty(t, s.Cases())
}

func TestLazyDataResolvedExactlyOnceAtRegistration(t *testing.T) {
	produced := 0
	data := LazyData(func() []int {
		produced++
		return []int{10, 20}
	})
	s := NewSuite[*fakeFixtures]("qa")
	RegisterDataDriven(s, data, Title("lazy"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item int) {})

	assert.Equal(t, 1, produced)
	require.Len(t, s.Cases(), 2)

	_ = runSuite(s)
	_ = runSuite(s)
	assert.Equal(t, 1, produced, "producer must not be re-invoked at execution time")
}

func TestDataDrivenPerItemSkip(t *testing.T) {
	items := []loginAttempt{
		{User: "alice", OK: true},
		{User: "legacy", OK: false},
		{User: "carol", OK: true},
	}
	var ran []string
	s := NewSuite[*fakeFixtures]("qa")
	data := StaticData(items).SkipWhen(func(it loginAttempt) bool {
		return it.User == "legacy"
	}, "legacy accounts are retired")
	RegisterDataDriven(s, data, Title("per-item skip"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item loginAttempt) {
			ran = append(ran, item.User)
		})

	cases := s.Cases()
	require.Len(t, cases, 3)
	assert.False(t, cases[0].Skipped)
	assert.True(t, cases[1].Skipped)
	assert.Equal(t, "legacy accounts are retired", cases[1].SkipReason)
	assert.False(t, cases[2].Skipped)

	results := runSuite(s)
	assert.True(t, results.OK())
	assert.Equal(t, []string{"alice", "carol"}, ran)
}

func TestDataDrivenConfigSkipSkipsEveryItem(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	ran := false
	RegisterDataDriven(s, StaticData([]int{1, 2}),
		Config{Title: "all skipped", Skip: SkipAlways("suite disabled")},
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item int) { ran = true })

	for _, c := range s.Cases() {
		assert.True(t, c.Skipped)
	}
	_ = runSuite(s)
	assert.False(t, ran)
}

func TestRenderItemTruncatesLongRenderings(t *testing.T) {
	long := strings.Repeat("x", 200)
	rendered := renderItem(long)

	full, err := json.Marshal(long)
	require.NoError(t, err)
	assert.Len(t, rendered, maxRenderedItemLength+len(truncationMarker))
	assert.True(t, strings.HasPrefix(string(full), strings.TrimSuffix(rendered, truncationMarker)))
	assert.True(t, strings.HasSuffix(rendered, truncationMarker))
}

func TestRenderItemTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 100) // 2 bytes each, so a byte-based cut would split one
	rendered := renderItem(long)

	assert.True(t, utf8.ValidString(rendered), "rendering must stay valid UTF-8: %q", rendered)
	assert.True(t, strings.HasSuffix(rendered, truncationMarker))
	assert.LessOrEqual(t, len(rendered), maxRenderedItemLength+len(truncationMarker))
}

func TestRenderItemShortRenderingsAreNotTruncated(t *testing.T) {
	assert.Equal(t, `{"a":1}`, renderItem(map[string]int{"a": 1}))
}

func TestRenderItemFallsBackForUnserializableItems(t *testing.T) {
	type withChannel struct {
		Ch chan int
	}
	assert.NotPanics(t, func() {
		rendered := renderItem(withChannel{Ch: make(chan int)})
		assert.NotEmpty(t, rendered)
	})
}

func TestDataFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attempts.yaml")
	content := "- user: alice\n  ok: true\n- user: bob\n  ok: false\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	s := NewSuite[*fakeFixtures]("qa")
	var got []loginAttempt
	RegisterDataDriven(s, DataFromYAMLFile[loginAttempt](path), Title("from file"),
		func(ctx context.Context, t *btest.T, fx *fakeFixtures, item loginAttempt) {
			got = append(got, item)
		})

	require.Len(t, s.Cases(), 2)
	results := runSuite(s)
	assert.True(t, results.OK())
	assert.Equal(t, []loginAttempt{{User: "alice", OK: true}, {User: "bob", OK: false}}, got)
}

func TestDataFromMissingYAMLFileIsRegistrationError(t *testing.T) {
	s := NewSuite[*fakeFixtures]("qa")
	assert.Panics(t, func() {
		RegisterDataDriven(s, DataFromYAMLFile[loginAttempt]("no-such-file.yaml"), Title("broken"),
			func(ctx context.Context, t *btest.T, fx *fakeFixtures, item loginAttempt) {})
	})
}
