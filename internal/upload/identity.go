package upload

import (
	"strings"

	"opsdb/internal/employee"
)

// ShortCode builds the informal "RUEX" identifier: lowercase first
// letter of the first name plus the lowercase last name.
func ShortCode(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return ""
	}
	return strings.ToLower(first[:1] + last)
}

// BuildShortCodeMapping derives short-code -> employee ID from an
// auxiliary employee-reference spreadsheet supplied alongside a
// schedule upload. Rows that cannot produce a code or an ID are
// silently skipped; the mapping is best effort.
func BuildShortCodeMapping(rows [][]string) map[string]int64 {
	mapping := make(map[string]int64)
	if len(rows) < 2 {
		return mapping
	}

	idx := headerIndex(rows[0])
	idCols := []string{"Odoo ID", "Employee - ID", "Employee ID", "#"}

	for _, row := range rows[1:] {
		var id int64
		found := false
		for _, col := range idCols {
			if raw := cell(row, idx, col); raw != "" {
				if n, err := ParseIntCell(raw); err == nil {
					id = n
					found = true
					break
				}
			}
		}
		if !found {
			continue
		}

		first := cell(row, idx, "First Name")
		last := cell(row, idx, "Last Name")
		if first == "" && last == "" {
			first, last = ParseName(cell(row, idx, "Name"))
		}

		if code := ShortCode(first, last); code != "" {
			if _, exists := mapping[code]; !exists {
				mapping[code] = id
			}
		}
	}
	return mapping
}

// ResolveEmployeeID maps a raw identifier token to a numeric employee
// ID. Resolution order reflects trust: the explicit mapping file wins,
// then a literal numeric ID, then a fuzzy prefix match against the
// directory snapshot. The boolean reports whether any step resolved.
func ResolveEmployeeID(token string, mapping map[string]int64, directory []employee.DirectoryEntry) (int64, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, false
	}

	key := strings.ToLower(token)
	if id, ok := mapping[key]; ok {
		return id, true
	}

	if isAllDigits(token) {
		id, err := ParseIntCell(token)
		if err == nil {
			return id, true
		}
		return 0, false
	}

	// Ad hoc short code: first letter + assumed last-name prefix.
	firstLetter := key[:1]
	lastPrefix := key[1:]
	if lastPrefix == "" {
		return 0, false
	}
	for _, entry := range directory {
		first := strings.ToLower(entry.FirstName)
		last := strings.ToLower(entry.LastName)
		if strings.HasPrefix(first, firstLetter) && strings.HasPrefix(last, lastPrefix) {
			return entry.ID, true
		}
	}
	return 0, false
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
