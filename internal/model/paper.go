package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Paper represents one crawled conference paper. PredominantContinent is
// derived each run, never crawled.
type Paper struct {
	Title                string    `json:"Title"`
	Year                 YearLabel `json:"Year"`
	Authors              []Author  `json:"Authors and Institutions"`
	PredominantContinent []string  `json:"Predominant Continent,omitempty"`
}

// Author is one entry of a paper's author list.
type Author struct {
	Name         string        `json:"Name,omitempty"`
	Institutions []Institution `json:"Institutions"`
}

// UnmarshalJSON tolerates schema violations in crawled author records:
// a non-list Institutions field yields an author with no institutions,
// and individually malformed institution entries are dropped.
func (a *Author) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string            `json:"Name"`
		Institutions []json.RawMessage `json:"Institutions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		// Retry without the institution list so a malformed field does not
		// discard the whole author record.
		var nameOnly struct {
			Name string `json:"Name"`
		}
		if err2 := json.Unmarshal(data, &nameOnly); err2 != nil {
			return err
		}
		*a = Author{Name: nameOnly.Name}
		return nil
	}

	a.Name = raw.Name
	a.Institutions = a.Institutions[:0]
	for _, entry := range raw.Institutions {
		var inst Institution
		if err := json.Unmarshal(entry, &inst); err != nil {
			continue
		}
		a.Institutions = append(a.Institutions, inst)
	}
	return nil
}

// Institution is a single affiliation as emitted by the crawler. Either
// field may be empty; Country is a raw token (code, name, or garbage).
type Institution struct {
	Name    string
	Country string
}

// UnmarshalJSON accepts both the object form
// {"Institution Name": ..., "Country": ...} and the degraded bare-string
// form that carries only a name.
func (i *Institution) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*i = Institution{Name: name}
		return nil
	}

	var obj struct {
		Name    string `json:"Institution Name"`
		Country string `json:"Country"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*i = Institution{Name: obj.Name, Country: obj.Country}
	return nil
}

// MarshalJSON writes the object form regardless of how the institution
// was decoded.
func (i Institution) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"Institution Name"`
		Country string `json:"Country"`
	}{Name: i.Name, Country: i.Country})
}

// YearLabel is a publication-year label that appears as either a JSON
// string or a number in crawled data.
type YearLabel string

// UnmarshalJSON accepts "2020" and 2020 alike.
func (y *YearLabel) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*y = ""
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*y = YearLabel(label)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = YearLabel(strconv.Itoa(n))
	return nil
}

// MarshalJSON writes the label as a string.
func (y YearLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(y))
}

// ConferenceData is a conference's paper set keyed by year label.
type ConferenceData map[string][]Paper
