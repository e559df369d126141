package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCoinPackages(t *testing.T) {
	want := map[string]struct {
		coins int64
		price int64
	}{
		"small":  {coins: 100, price: 99},
		"medium": {coins: 550, price: 399},
		"large":  {coins: 1200, price: 799},
		"xlarge": {coins: 3000, price: 1499},
	}

	require.Len(t, DefaultCoinPackages, len(want))

	seen := make(map[string]bool)
	for _, pkg := range DefaultCoinPackages {
		expected, ok := want[pkg.PackageID]
		require.True(t, ok, "unexpected package %q", pkg.PackageID)
		require.False(t, seen[pkg.PackageID], "duplicate package id %q", pkg.PackageID)
		seen[pkg.PackageID] = true

		assert.Equal(t, expected.coins, pkg.Coins, pkg.PackageID)
		assert.Equal(t, expected.price, pkg.PriceCents, pkg.PackageID)
		assert.NotEmpty(t, pkg.Name, pkg.PackageID)
	}
}
