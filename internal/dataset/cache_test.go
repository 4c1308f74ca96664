package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

const sample = "Index,First Name,Email,Company,Country,City,Subscription Date\n" +
	"1,Ana,ana@acme.com,Acme,Chile,Santiago,2021-01-02\n" +
	"2,Bo,bo@globex.com,Globex,Peru,Lima,2021-03-04\n" +
	"1,Ana,ana@acme.com,Acme,Chile,Santiago,2021-01-02\n" +
	"3,Cy,,Initech,Chile,Valparaiso,2022-05-06\n" +
	"4,Di,di@umbrella.org,Umbrella,Spain,Madrid,2023-07-08\n"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCacheLoadOnceAndReuse(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "customers.csv")
	writeFile(t, p, sample)

	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCache(DefaultOptions(), zap.New(core))

	first, err := c.Load(p)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Len())
	assert.False(t, first.HasColumn("Index"))

	second, err := c.Load(p)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, logs.FilterMessage("cache hit").Len())
	assert.Equal(t, 1, logs.FilterMessage("loaded source").Len())
}

func TestCacheReloadsChangedSource(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "customers.csv")
	writeFile(t, p, sample)

	c := NewCache(DefaultOptions(), nil)
	first, err := c.Load(p)
	require.NoError(t, err)

	writeFile(t, p, sample+"5,Ed,ed@hooli.com,Hooli,Peru,Cusco,2024-01-01\n")
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(p, later, later))

	second, err := c.Load(p)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 4, second.Len())
	assert.Equal(t, 3, first.Len(), "earlier table stays intact")
	assert.Equal(t, 1, c.Len())
}

func TestCacheInvalidateAndPurge(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	writeFile(t, a, sample)
	writeFile(t, b, sample)

	c := NewCache(DefaultOptions(), nil)
	ta, err := c.Load(a)
	require.NoError(t, err)
	_, err = c.Load(b)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	c.Invalidate(a)
	assert.Equal(t, 1, c.Len())
	again, err := c.Load(a)
	require.NoError(t, err)
	assert.NotSame(t, ta, again)
	assert.True(t, ta.Equal(again))

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestCacheErrors(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(DefaultOptions(), nil)

	_, err := c.Load(filepath.Join(dir, "customers-100.csv"))
	var mse *table.MissingSourceError
	require.ErrorAs(t, err, &mse)

	bad := filepath.Join(dir, "bad.csv")
	writeFile(t, bad, "Company,Country\nAcme,Chile\n")
	_, err = c.Load(bad)
	var se *cleaner.SchemaError
	require.ErrorAs(t, err, &se)
	assert.False(t, errors.As(err, &mse))
	assert.Equal(t, 0, c.Len(), "failed loads are not cached")
}

func TestCacheLoadResult(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "customers.csv")
	writeFile(t, p, sample)

	res, err := NewCache(DefaultOptions(), nil).LoadResult(p)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, res.Duplicates)
	assert.Equal(t, []int{3}, res.Incomplete)
}
