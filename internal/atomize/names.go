package atomize

import (
	"regexp"
	"strings"
)

var (
	snakeAcronymTail = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeLowerUpper  = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnakeCase converts PascalCase/camelCase identifiers to snake_case,
// keeping acronym runs together: HTTPServer -> http_server,
// getID -> get_id. Names already in snake_case pass through unchanged.
func ToSnakeCase(name string) string {
	s := snakeAcronymTail.ReplaceAllString(name, "${1}_${2}")
	s = snakeLowerUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
