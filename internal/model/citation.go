package model

import "encoding/json"

// CitationData maps a cited paper's title to the records citing it.
type CitationData map[string][]Citation

// Citation is one citing-paper record.
type Citation struct {
	Title   string
	Authors []CitingAuthor
}

// UnmarshalJSON drops individually malformed author entries instead of
// failing the citation, and tolerates a non-list Authors field.
func (c *Citation) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title   string          `json:"Title"`
		Authors json.RawMessage `json:"Authors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Title = raw.Title
	c.Authors = nil

	var entries []json.RawMessage
	if err := json.Unmarshal(raw.Authors, &entries); err != nil {
		return nil
	}
	for _, entry := range entries {
		var author CitingAuthor
		if err := json.Unmarshal(entry, &author); err != nil {
			continue
		}
		c.Authors = append(c.Authors, author)
	}
	return nil
}

// CitingAuthor is an author of a citing paper. The crawler emits the
// affiliation list under either "Institutions" or "Affiliations".
type CitingAuthor struct {
	Name         string
	Institutions []CitingInstitution
}

// UnmarshalJSON reads Institutions first and falls back to Affiliations.
func (a *CitingAuthor) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string              `json:"Name"`
		Institutions []CitingInstitution `json:"Institutions"`
		Affiliations []CitingInstitution `json:"Affiliations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Name = raw.Name
	a.Institutions = raw.Institutions
	if len(a.Institutions) == 0 {
		a.Institutions = raw.Affiliations
	}
	return nil
}

// CitingInstitution carries the country field of a citing author's
// affiliation, which appears under any of three keys.
type CitingInstitution struct {
	Country      string `json:"Country"`
	CountryLower string `json:"country"`
	CountryCode  string `json:"CountryCode"`
}

// CountryToken returns the raw country token, checking Country, country,
// and CountryCode in that priority order.
func (i CitingInstitution) CountryToken() string {
	if i.Country != "" {
		return i.Country
	}
	if i.CountryLower != "" {
		return i.CountryLower
	}
	return i.CountryCode
}
