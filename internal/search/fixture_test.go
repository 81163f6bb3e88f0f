package search

type listingDoc struct {
	ID           string
	City         string
	District     string
	Locality     string
	PropertyType string
	Rent         float64
	Rating       *float64
}

func (d listingDoc) TextField(name string) string {
	switch name {
	case FieldCity:
		return d.City
	case FieldDistrict:
		return d.District
	case FieldLocality:
		return d.Locality
	case FieldPropertyType:
		return d.PropertyType
	}
	return ""
}

func (d listingDoc) NumberField(name string) (float64, bool) {
	if name == FieldRent {
		return d.Rent, true
	}
	return 0, false
}

func (d listingDoc) SortPrice() float64 { return d.Rent }

func (d listingDoc) SortPopularity() float64 {
	if d.Rating == nil {
		return 0
	}
	return *d.Rating
}

func ids(docs []listingDoc) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func rating(v float64) *float64 { return &v }
