package model

import "encoding/json"

// CommitteeData maps year label -> member name -> affiliation.
type CommitteeData map[string]map[string]CommitteeAffiliation

// CommitteeAffiliation is a committee member's affiliation record. The
// normal format is an institution->country mapping; a degraded format
// carrying a bare country string must also be accepted.
type CommitteeAffiliation struct {
	// Institutions maps institution name to raw country token.
	Institutions map[string]string

	// Country is set instead of Institutions when the record is a bare
	// country string.
	Country string
}

// UnmarshalJSON accepts either {"Institution": "Country", ...} or a bare
// "Country" string.
func (c *CommitteeAffiliation) UnmarshalJSON(data []byte) error {
	var country string
	if err := json.Unmarshal(data, &country); err == nil {
		*c = CommitteeAffiliation{Country: country}
		return nil
	}

	var institutions map[string]string
	if err := json.Unmarshal(data, &institutions); err != nil {
		return err
	}
	*c = CommitteeAffiliation{Institutions: institutions}
	return nil
}

// Countries returns every raw country token on the record.
func (c CommitteeAffiliation) Countries() []string {
	if c.Country != "" {
		return []string{c.Country}
	}
	var countries []string
	for _, country := range c.Institutions {
		if country != "" {
			countries = append(countries, country)
		}
	}
	return countries
}
