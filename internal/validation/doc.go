// Package validation checks changelogs against the project's Liquibase conventions.
//
// Two independent checks run per changelog, in this order:
//
//  1. Logical file path: the root's logicalFilePath must equal the file's path
//     relative to its resource folder. Files in a versioned migration folder
//     (see changelog.IsMigrationFolder) only declare their base name instead,
//     except _master.xml which always uses the full relative path.
//  2. Contexts: every changeSet must declare a context attribute. Only the
//     first offending changeSet of a file is reported.
package validation
