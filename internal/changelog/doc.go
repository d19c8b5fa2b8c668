// Package changelog classifies XML files as Liquibase changelogs.
//
// Classify parses a candidate file and returns one of three outcomes:
//
//   - KindNotAChangelog: well-formed XML whose root element is not databaseChangeLog.
//     The caller skips the file silently.
//   - KindChangelog: a databaseChangeLog document, ready for validation.
//   - KindParseError: the bytes are not well-formed XML. The caller must abort.
//
// Element and attribute names are compared by their qualified name as written,
// so <lb:databaseChangeLog> is not a changelog and a prefixed x:context
// attribute does not count as a context.
//
// IsMigrationFolder decides whether a changelog lives in a versioned migration
// folder: a directory named v* whose parent holds an initDb.xml marker.
package changelog
