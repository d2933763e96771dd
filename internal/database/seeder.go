// server/internal/database/seeder.go
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/internal/auth"
)

// SeedCategory is one row of the fixed category reference data.
type SeedCategory struct {
	Slug        string
	Name        string
	Description string
}

// Categories is the fixed set of 52 facility classification buckets. Slugs are
// URL-stable; sort order is the position in this list.
var Categories = []SeedCategory{
	{"transload-facilities", "Transload Facilities", "Rail-to-truck and truck-to-rail transfer locations"},
	{"team-tracks", "Team Tracks", "Public-use rail sidings for shared loading and unloading"},
	{"railcar-storage", "Railcar Storage", "Track space for storing idle or surplus railcars"},
	{"rail-served-warehouses", "Rail-Served Warehouses", "Warehouses with direct rail access"},
	{"intermodal-terminals", "Intermodal Terminals", "Container and trailer lift facilities"},
	{"bulk-transfer-terminals", "Bulk Transfer Terminals", "Dry and liquid bulk transfer between rail and truck"},
	{"short-line-railroads", "Short Line Railroads", "Class II and III railroad operators"},
	{"class-1-railroads", "Class I Railroads", "Major North American railroad operators"},
	{"rail-logistics-brokers", "Rail Logistics Brokers", "Brokers arranging rail freight moves"},
	{"freight-forwarders", "Freight Forwarders", "Multimodal freight forwarding services"},
	{"grain-elevators", "Grain Elevators", "Grain receiving, storage and rail loadout"},
	{"ethanol-plants", "Ethanol Plants", "Ethanol production with rail shipping"},
	{"biodiesel-plants", "Biodiesel Plants", "Biodiesel production with rail shipping"},
	{"fertilizer-terminals", "Fertilizer Terminals", "Dry and liquid fertilizer handling"},
	{"chemical-plants", "Chemical Plants", "Chemical production and distribution by rail"},
	{"plastics-resin-facilities", "Plastics & Resin Facilities", "Resin transloading, packaging and bulk handling"},
	{"petroleum-terminals", "Petroleum Terminals", "Crude and refined product rail terminals"},
	{"lpg-terminals", "LPG & Propane Terminals", "Liquefied petroleum gas rail transfer"},
	{"sand-gravel-aggregates", "Sand, Gravel & Aggregates", "Aggregate producers and rail distribution yards"},
	{"frac-sand-facilities", "Frac Sand Facilities", "Proppant origin and destination terminals"},
	{"cement-terminals", "Cement Terminals", "Cement and fly ash rail distribution"},
	{"lumber-reload-centers", "Lumber Reload Centers", "Lumber and panel reload and distribution"},
	{"steel-service-centers", "Steel Service Centers", "Steel processing and distribution with rail access"},
	{"scrap-metal-recyclers", "Scrap Metal Recyclers", "Ferrous and non-ferrous scrap shipped by rail"},
	{"paper-mills", "Paper Mills", "Pulp and paper production with rail shipping"},
	{"food-grade-facilities", "Food Grade Facilities", "Food-grade transloading and warehousing"},
	{"cold-storage", "Cold Storage", "Refrigerated warehousing with rail service"},
	{"ports", "Ports", "Deep-water and inland ports with on-dock rail"},
	{"barge-terminals", "Barge Terminals", "River terminals with rail-barge transfer"},
	{"rail-served-industrial-parks", "Rail-Served Industrial Parks", "Industrial sites marketed with rail access"},
	{"railcar-repair", "Railcar Repair", "Certified railcar repair and maintenance shops"},
	{"locomotive-repair", "Locomotive Repair", "Locomotive maintenance and overhaul shops"},
	{"railcar-leasing", "Railcar Leasing", "Railcar lessors and fleet managers"},
	{"locomotive-leasing", "Locomotive Leasing", "Locomotive lessors and power providers"},
	{"track-construction", "Track Construction", "New track construction and rehabilitation contractors"},
	{"track-materials", "Track Materials", "Rail, tie, ballast and OTM suppliers"},
	{"railroad-contractors", "Railroad Contractors", "Maintenance-of-way and derailment services"},
	{"rail-equipment-dealers", "Rail Equipment Dealers", "New and used rail equipment sales"},
	{"mobile-railcar-movers", "Mobile Railcar Movers", "Trackmobile and railcar mover operators and dealers"},
	{"railcar-cleaning", "Railcar Cleaning", "Interior railcar cleaning services"},
	{"tank-wash-facilities", "Tank Wash Facilities", "Tank car and tank trailer wash racks"},
	{"railcar-inspection", "Railcar Inspection", "Railcar inspection and testing services"},
	{"drayage-trucking", "Drayage Trucking", "First- and last-mile container drayage"},
	{"heavy-haul-trucking", "Heavy Haul Trucking", "Overweight and overdimensional trucking"},
	{"warehousing-distribution", "Warehousing & Distribution", "General warehousing near rail corridors"},
	{"project-cargo", "Project Cargo", "Dimensional and project freight handling"},
	{"coal-terminals", "Coal Terminals", "Coal loading and transfer facilities"},
	{"ore-mineral-terminals", "Ore & Mineral Terminals", "Ore, minerals and industrial materials handling"},
	{"auto-distribution-ramps", "Auto Distribution Ramps", "Finished vehicle loading and unloading ramps"},
	{"military-government-sites", "Military & Government Sites", "Government facilities with rail capability"},
	{"rail-consultants", "Rail Consultants", "Rail engineering and logistics consulting"},
	{"industrial-switching", "Industrial Switching", "Contract plant switching and yard operations"},
}

// SeedCategories inserts the reference categories, skipping any slug that
// already exists.
func SeedCategories(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	inserted := 0
	for i, c := range Categories {
		res, err := db.ExecContext(ctx, `
			INSERT INTO categories (slug, name, description, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (slug) DO NOTHING
		`, c.Slug, c.Name, c.Description, i+1)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.Slug, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	if inserted > 0 {
		logger.Info("seeded categories", zap.Int("inserted", inserted))
	}
	return nil
}

// SeedAdmin creates the default admin user when no admin exists yet.
func SeedAdmin(ctx context.Context, db *sqlx.DB, email, password string, logger *zap.Logger) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`); err != nil {
		return fmt.Errorf("count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO admin_users (email, name, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
	`, email, "Administrator", hash)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	logger.Info("seeded default admin user", zap.String("email", email))
	return nil
}
