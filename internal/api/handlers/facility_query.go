// server/internal/api/handlers/facility_query.go
package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const milesToMeters = 1609.344

const (
	defaultPageSize = 20
	maxPageSize     = 100
	defaultRadius   = 50.0
	maxRadius       = 500.0
)

// facilitySelect is the column list shared by every facility read; category
// name and slug are always joined in.
const facilitySelect = `f.id, f.name, f.category_id,
	c.name AS category_name, c.slug AS category_slug,
	f.street, f.city, f.state, f.zip, f.latitude, f.longitude,
	f.phone, f.email, f.website, f.attributes, f.source, f.source_id,
	f.geocode_source, f.geocode_confidence, f.is_active, f.is_verified,
	f.created_at, f.updated_at`

// facilityFilters is the validated filter set for the facility list endpoint.
type facilityFilters struct {
	Query        string
	CategorySlug string
	State        string
	City         string

	Lat       float64
	Lng       float64
	Radius    float64 // miles
	HasCenter bool

	Page  int
	Limit int
}

// parseFacilityFilters validates the raw query parameters. Malformed or
// out-of-range coordinates and radius are rejected; pagination values are
// clamped into their documented bounds.
func parseFacilityFilters(values url.Values) (facilityFilters, error) {
	f := facilityFilters{Page: 1, Limit: defaultPageSize}

	f.Query = strings.TrimSpace(values.Get("q"))
	f.CategorySlug = strings.TrimSpace(values.Get("category"))
	f.City = strings.TrimSpace(values.Get("city"))

	if state := strings.TrimSpace(values.Get("state")); state != "" {
		if len(state) != 2 {
			return f, fmt.Errorf("state must be a 2-letter code")
		}
		f.State = strings.ToUpper(state)
	}

	latStr, lngStr := values.Get("lat"), values.Get("lng")
	if latStr != "" || lngStr != "" {
		if latStr == "" || lngStr == "" {
			return f, fmt.Errorf("lat and lng must be provided together")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return f, fmt.Errorf("lat must be a number")
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return f, fmt.Errorf("lng must be a number")
		}
		if lat < -90 || lat > 90 {
			return f, fmt.Errorf("lat must be between -90 and 90")
		}
		if lng < -180 || lng > 180 {
			return f, fmt.Errorf("lng must be between -180 and 180")
		}
		f.Lat, f.Lng, f.HasCenter = lat, lng, true

		f.Radius = defaultRadius
		if radiusStr := values.Get("radius"); radiusStr != "" {
			radius, err := strconv.ParseFloat(radiusStr, 64)
			if err != nil {
				return f, fmt.Errorf("radius must be a number")
			}
			if radius <= 0 || radius > maxRadius {
				return f, fmt.Errorf("radius must be between 0 and %.0f miles", maxRadius)
			}
			f.Radius = radius
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			return f, fmt.Errorf("page must be an integer")
		}
		if page > 1 {
			f.Page = page
		}
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return f, fmt.Errorf("limit must be an integer")
		}
		switch {
		case limit < 1:
			f.Limit = defaultPageSize
		case limit > maxPageSize:
			f.Limit = maxPageSize
		default:
			f.Limit = limit
		}
	}

	return f, nil
}

// whereClause assembles the shared WHERE conditions. Placeholder numbering
// continues from the supplied args slice.
func (f facilityFilters) whereClause(args []any) (string, []any) {
	conds := []string{"f.is_active = TRUE"}

	if f.Query != "" {
		args = append(args, f.Query)
		conds = append(conds, fmt.Sprintf("f.search_text @@ websearch_to_tsquery('english', $%d)", len(args)))
	}
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		conds = append(conds, fmt.Sprintf("c.slug = $%d", len(args)))
	}
	if f.State != "" {
		args = append(args, f.State)
		conds = append(conds, fmt.Sprintf("f.state = $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		conds = append(conds, fmt.Sprintf("f.city ILIKE $%d", len(args)))
	}
	if f.HasCenter {
		args = append(args, f.Lng, f.Lat, f.Radius*milesToMeters)
		conds = append(conds, fmt.Sprintf(
			"ST_DWithin(f.location, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography, $%d)",
			len(args)-2, len(args)-1, len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// buildQuery produces the page query. Ordering policy: distance when a center
// is given, text rank when a query is given, otherwise name.
func (f facilityFilters) buildQuery() (string, []any) {
	var args []any
	selectCols := facilitySelect

	if f.HasCenter {
		args = append(args, f.Lng, f.Lat)
		selectCols += fmt.Sprintf(
			",\n\tST_Distance(f.location, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography) / %f AS distance_miles",
			len(args)-1, len(args), milesToMeters)
	}

	where, args := f.whereClause(args)

	var orderBy string
	switch {
	case f.HasCenter:
		orderBy = "distance_miles ASC"
	case f.Query != "":
		args = append(args, f.Query)
		orderBy = fmt.Sprintf("ts_rank(f.search_text, websearch_to_tsquery('english', $%d)) DESC, f.name ASC", len(args))
	default:
		orderBy = "f.name ASC"
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM facilities f
		JOIN categories c ON c.id = f.category_id
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		selectCols, where, orderBy, len(args)-1, len(args))

	return query, args
}

// buildCountQuery produces the matching total-count query.
func (f facilityFilters) buildCountQuery() (string, []any) {
	where, args := f.whereClause(nil)
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM facilities f
		JOIN categories c ON c.id = f.category_id
		WHERE %s`, where)
	return query, args
}
