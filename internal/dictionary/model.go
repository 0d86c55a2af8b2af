package dictionary

import (
	"encoding/xml"
	"strings"
)

// Record is one generated dictionary line: a word and its lexical category.
type Record struct {
	Word     string
	Category string
}

// entryList mirrors the remote XML response. A miss still returns an
// entry_list, carrying spelling suggestions instead of entries.
type entryList struct {
	XMLName     xml.Name `xml:"entry_list"`
	Entries     []entry  `xml:"entry"`
	Suggestions []string `xml:"suggestion"`
}

type entry struct {
	Word            string `xml:"ew"`
	FunctionalLabel string `xml:"fl"`
}

// Category reduces a remote functional label to its stored form: the first
// whitespace-delimited token. "noun plural but singular in construction"
// becomes "noun".
func Category(functionalLabel string) string {
	fields := strings.Fields(functionalLabel)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
