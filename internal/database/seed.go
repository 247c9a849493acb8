package database

import (
	"context"
	"fmt"
	"strconv"

	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/log"
	"github.com/SufyanShah44/Week-13-Group-Project-LMNH-Plants/internal/model"
)

// SeedReferenceData upserts the reference tables from a batch of normalized
// rows, in foreign-key order: countries, origin locations, botanists, plants.
// Existing rows are left untouched; only unseen natural keys are inserted.
// Rows missing the natural key for a given table are skipped for that table.
func (c *Client) SeedReferenceData(ctx context.Context, rows []model.NormalizedReading) error {
	countryIDs, err := c.seedCountries(ctx, rows)
	if err != nil {
		return err
	}
	locationIDs, err := c.seedOriginLocations(ctx, rows, countryIDs)
	if err != nil {
		return err
	}
	if err := c.seedBotanists(ctx, rows); err != nil {
		return err
	}
	return c.seedPlants(ctx, rows, locationIDs)
}

func (c *Client) seedCountries(ctx context.Context, rows []model.NormalizedReading) (map[string]int, error) {
	ids := make(map[string]int)
	for _, row := range rows {
		if row.CountryName == nil {
			continue
		}
		name := *row.CountryName
		if _, ok := ids[name]; ok {
			continue
		}

		var country Country
		err := c.DB.WithContext(ctx).Where(Country{Name: name}).FirstOrCreate(&country).Error
		if err != nil {
			return nil, fmt.Errorf("seeding country %q: %w", name, err)
		}
		ids[name] = country.CountryID
	}
	log.Debugf("seeded %d countries", len(ids))
	return ids, nil
}

func (c *Client) seedOriginLocations(ctx context.Context, rows []model.NormalizedReading, countryIDs map[string]int) (map[string]int, error) {
	ids := make(map[string]int)
	for _, row := range rows {
		if row.City == nil || row.CountryName == nil {
			continue
		}
		countryID, ok := countryIDs[*row.CountryName]
		if !ok {
			continue
		}
		key := *row.City + "\x00" + *row.CountryName
		if _, seen := ids[key]; seen {
			continue
		}

		var loc OriginLocation
		err := c.DB.WithContext(ctx).
			Where(OriginLocation{City: *row.City, CountryID: countryID}).
			Attrs(OriginLocation{Latitude: parseCoord(row.Latitude), Longitude: parseCoord(row.Longitude)}).
			FirstOrCreate(&loc).Error
		if err != nil {
			return nil, fmt.Errorf("seeding origin location %q: %w", *row.City, err)
		}
		ids[key] = loc.LocationID
	}
	log.Debugf("seeded %d origin locations", len(ids))
	return ids, nil
}

func (c *Client) seedBotanists(ctx context.Context, rows []model.NormalizedReading) error {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.BotanistName == nil {
			continue
		}
		name := *row.BotanistName
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var b Botanist
		err := c.DB.WithContext(ctx).
			Where(Botanist{Name: name}).
			Attrs(Botanist{Email: row.BotanistEmail, Phone: row.BotanistPhone}).
			FirstOrCreate(&b).Error
		if err != nil {
			return fmt.Errorf("seeding botanist %q: %w", name, err)
		}
	}
	log.Debugf("seeded %d botanists", len(seen))
	return nil
}

func (c *Client) seedPlants(ctx context.Context, rows []model.NormalizedReading, locationIDs map[string]int) error {
	seen := make(map[int]struct{})
	for _, row := range rows {
		if row.PlantID == nil || row.PlantName == nil {
			continue
		}
		plantID, err := strconv.Atoi(*row.PlantID)
		if err != nil {
			// Unparsable plant identity fails hard later in the transform
			// stage; the seeder only skips it.
			continue
		}
		if _, ok := seen[plantID]; ok {
			continue
		}
		seen[plantID] = struct{}{}

		var locationID *int
		if row.City != nil && row.CountryName != nil {
			if id, ok := locationIDs[*row.City+"\x00"+*row.CountryName]; ok {
				locationID = &id
			}
		}

		var p Plant
		err = c.DB.WithContext(ctx).
			Where(Plant{PlantID: plantID}).
			Attrs(Plant{Name: *row.PlantName, ScientificName: row.ScientificName, LocationID: locationID}).
			FirstOrCreate(&p).Error
		if err != nil {
			return fmt.Errorf("seeding plant %d: %w", plantID, err)
		}
	}
	log.Debugf("seeded %d plants", len(seen))
	return nil
}

func parseCoord(s *string) *float64 {
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &f
}
