package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"watchstore/domain"
	"watchstore/store"
)

// seedCatalog installs the sample watches when the catalog is empty.
func seedCatalog(ctx context.Context, catalog *store.InMemoryCatalog) error {
	existing, _, err := catalog.List(ctx, domain.ListFilter{})
	if err != nil || len(existing) > 0 {
		return err
	}

	samples := []domain.Product{
		{
			Name:        "Seamaster Diver 300M",
			Price:       decimal.RequireFromString("5200.00"),
			Description: "Stainless steel dive watch with a ceramic bezel and co-axial movement.",
			Images:      []string{"/images/seamaster-300m.jpg"},
			Brand:       "Omega",
			Category:    "dive",
			Stock:       8,
		},
		{
			Name:        "Submariner Date",
			Price:       decimal.RequireFromString("10950.00"),
			Description: "The reference dive watch, 41mm Oystersteel case with Cerachrom bezel.",
			Images:      []string{"/images/submariner-date.jpg"},
			Brand:       "Rolex",
			Category:    "dive",
			Stock:       3,
		},
		{
			Name:        "Speedmaster Moonwatch",
			Price:       decimal.RequireFromString("6600.00"),
			Description: "Manual-wind chronograph with hesalite crystal, flight-qualified by NASA.",
			Images:      []string{"/images/speedmaster-moonwatch.jpg"},
			Brand:       "Omega",
			Category:    "chronograph",
			Stock:       5,
		},
		{
			Name:        "Tank Must",
			Price:       decimal.RequireFromString("2990.00"),
			Description: "Rectangular dress watch with roman numerals and a quartz movement.",
			Images:      []string{"/images/tank-must.jpg"},
			Brand:       "Cartier",
			Category:    "dress",
			Stock:       12,
		},
		{
			Name:        "Prospex Alpinist",
			Price:       decimal.RequireFromString("725.00"),
			Description: "Field watch with internal compass bezel and automatic movement.",
			Images:      []string{"/images/prospex-alpinist.jpg"},
			Brand:       "Seiko",
			Category:    "field",
			Stock:       20,
		},
		{
			Name:        "G-Shock GA-2100",
			Price:       decimal.RequireFromString("99.00"),
			Description: "Carbon core guard octagonal case, shock resistant, 200m water resistance.",
			Images:      []string{"/images/ga-2100.jpg"},
			Brand:       "Casio",
			Category:    "sport",
			Stock:       50,
		},
	}
	for _, p := range samples {
		p.ID = uuid.NewString()
		if err := catalog.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
