package chi

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/oapi-codegen/runtime"

	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
)

// paramsFromQuery binds the search query string (form style, exploded lists).
// A parameter that fails to bind is left empty, which spec.Parse reads as absent.
func paramsFromQuery(q url.Values) spec.Params {
	var p spec.Params
	bindString(q, spec.ParamQuery, &p.Query)
	bindList(q, spec.ParamServiceTypes, &p.ServiceTypes)
	bindList(q, spec.ParamIndustries, &p.Industries)
	bindList(q, spec.ParamLocations, &p.Locations)
	bindString(q, spec.ParamPricingLevel, &p.PricingLevel)
	bindString(q, spec.ParamVerifiedOnly, &p.VerifiedOnly)
	bindString(q, spec.ParamFreeConsultation, &p.FreeConsultation)
	bindString(q, spec.ParamSortBy, &p.SortBy)
	bindString(q, spec.ParamPage, &p.Page)
	bindString(q, spec.ParamLimit, &p.Limit)
	return p
}

func bindString(q url.Values, name string, dest *string) {
	var v string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return
	}
	*dest = v
}

func bindList(q url.Values, name string, dest *[]string) {
	var v []string
	if err := runtime.BindQueryParameter("form", true, false, name, q, &v); err != nil {
		return
	}
	*dest = v
}

// paramsFromBody reads a JSON search body. Scalars may be strings, numbers or
// booleans; lists may be arrays or comma-separated strings.
func paramsFromBody(body map[string]any) spec.Params {
	return spec.Params{
		Query:            scalar(body[spec.ParamQuery]),
		ServiceTypes:     list(body[spec.ParamServiceTypes]),
		Industries:       list(body[spec.ParamIndustries]),
		Locations:        list(body[spec.ParamLocations]),
		PricingLevel:     scalar(body[spec.ParamPricingLevel]),
		VerifiedOnly:     scalar(body[spec.ParamVerifiedOnly]),
		FreeConsultation: scalar(body[spec.ParamFreeConsultation]),
		SortBy:           scalar(body[spec.ParamSortBy]),
		Page:             scalar(body[spec.ParamPage]),
		Limit:            scalar(body[spec.ParamLimit]),
	}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func list(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case nil:
		return nil
	default:
		return []string{scalar(t)}
	}
}
