package models

// CoinPackage is a purchasable coin bundle. The catalog is fixed and seeded
// at startup; checkout never trusts client-supplied amounts.
type CoinPackage struct {
	PackageID  string `gorm:"type:varchar(32);primary_key;column:package_id" json:"package_id"`
	Name       string `gorm:"type:varchar(64);not null" json:"name"`
	Coins      int64  `gorm:"type:bigint;not null" json:"coins"`
	PriceCents int64  `gorm:"type:bigint;not null;column:price_cents" json:"price_cents"`
}

// DefaultCoinPackages is the fixed catalog seeded at startup
var DefaultCoinPackages = []CoinPackage{
	{PackageID: "small", Name: "100 Monedas", Coins: 100, PriceCents: 99},
	{PackageID: "medium", Name: "550 Monedas (+50 Bonus)", Coins: 550, PriceCents: 399},
	{PackageID: "large", Name: "1200 Monedas (+200 Bonus)", Coins: 1200, PriceCents: 799},
	{PackageID: "xlarge", Name: "3000 Monedas (+700 Bonus)", Coins: 3000, PriceCents: 1499},
}
