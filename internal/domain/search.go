package domain

// SearchParams are the query parameters of the primary search.
type SearchParams struct {
	Query           string
	Count           int
	Lang            string
	ResultType      string
	IncludeEntities bool
}

// Params converts the search to client parameters, omitting unset fields.
func (s SearchParams) Params() Params {
	params := Params{"q": s.Query}
	if s.Count > 0 {
		params["count"] = s.Count
	}
	if s.Lang != "" {
		params["lang"] = s.Lang
	}
	if s.ResultType != "" {
		params["result_type"] = s.ResultType
	}
	if s.IncludeEntities {
		params["include_entities"] = true
	}
	return params
}
