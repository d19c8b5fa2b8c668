// Package files provides file-related functionality organized into sub-packages:
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Expansion of resource folders into candidate files via include/exclude globs
//
// # Usage
//
//	fileScanner := scanner.NewScanner()
//	expansion, err := fileScanner.Expand(lqcheck.ResourceFolder{
//	    Directory: "src/main/resources",
//	    Includes:  []string{"**/*.xml"},
//	})
package files
