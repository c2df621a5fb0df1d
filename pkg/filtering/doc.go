// Package filtering narrows the outdated-package listing down to the set
// pipup will actually upgrade.
//
// Filters apply in a fixed order: include patterns restrict, exclude
// patterns remove (exclude beats include), and an imported selection file
// restricts to exactly its packages in file order.
//
// Pattern matching follows pip's name rules: comparisons are
// case-insensitive with "-", "_", and "." treated as equivalent, so
// Typing_Extensions matches typing-extensions. Patterns may use * and ?
// wildcards:
//
//	filtering.Match("types-requests", "types-*") // true
//	filtering.Match("numpy", "numpy")            // true
//	filtering.Match("Pillow", "pillow")          // true
//
// Apply runs the whole chain:
//
//	sel := filtering.Apply(records, filtering.Options{
//	    Include: []string{"django*"},
//	    Exclude: []string{"django-debug-toolbar"},
//	})
package filtering
