package retailcrm

import (
	"strconv"

	"github.com/omnicart/crmbridge/internal/crm/filter"
	"github.com/omnicart/crmbridge/internal/schema"
)

// optString is a filter tree leaf for an optional string: unset values are
// omitted from the query entirely.
func optString(s string) filter.Node {
	if s == "" {
		return nil
	}
	return filter.String(s)
}

// customerFilterParams maps customer filters onto RetailCRM query
// parameters: limit and page travel top-level, everything else under the
// filter[...] prefix. Expects normalized filters.
func customerFilterParams(f schema.CustomerFilters) []filter.Param {
	params := []filter.Param{
		{Key: "limit", Value: strconv.Itoa(f.Limit)},
		{Key: "page", Value: strconv.Itoa(f.Page)},
	}

	tree := filter.NewMap().
		Set("name", optString(f.Name)).
		Set("email", optString(f.Email)).
		Set("created_at_from", optString(f.CreatedAtFrom)).
		Set("created_at_to", optString(f.CreatedAtTo))

	return append(params, filter.Flatten(tree, "filter")...)
}

// customerOrdersParams maps a customer orders query onto RetailCRM order
// list parameters, filtering by customer ID. Expects a normalized query.
func customerOrdersParams(q schema.CustomerOrdersQuery) []filter.Param {
	params := []filter.Param{
		{Key: "limit", Value: strconv.Itoa(q.Limit)},
		{Key: "page", Value: strconv.Itoa(q.Page)},
	}

	tree := filter.NewMap().Set("customerId", filter.Int(q.CustomerID))

	return append(params, filter.Flatten(tree, "filter")...)
}
