// ABOUTME: SQL helpers for run history queries.
// ABOUTME: Escapes LIKE patterns so path filters match literally.

package store

import "strings"

// likeEscaper escapes the LIKE wildcards and the escape character itself.
// Scenario file names contain underscores, which LIKE would otherwise treat
// as single-character wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeSQLLike escapes pattern for use with LIKE ... ESCAPE '\'.
func escapeSQLLike(pattern string) string {
	return likeEscaper.Replace(pattern)
}
