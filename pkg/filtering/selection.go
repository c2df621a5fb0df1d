package filtering

import (
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/verbose"
)

// Options controls which packages survive the selection chain.
//
// Fields:
//   - Include: Patterns a package must match to be kept; empty keeps everything
//   - Exclude: Patterns that remove a package; exclude beats include
//   - Imported: Records from a selection file written by --export
//   - HasImport: true when an import file was given, even if it held no records
type Options struct {
	Include   []string
	Exclude   []string
	Imported  []packages.PackageRecord
	HasImport bool
}

// Selection is the outcome of applying filters to a live listing.
//
// Fields:
//   - Records: Packages to upgrade, in listing order (import-file order when
//     an import restricted the set)
//   - ExcludedCount: Packages removed by exclude patterns
//   - ImportedMissing: Imported names that are no longer outdated, in file order
type Selection struct {
	Records         []packages.PackageRecord
	ExcludedCount   int
	ImportedMissing []string
}

// Apply runs the selection chain over a live outdated listing.
//
// It performs the following operations:
//   - Step 1: Keeps only packages matching an include pattern, when any are set
//   - Step 2: Removes packages matching an exclude pattern and counts them
//   - Step 3: Restricts to the imported set, reordering to the import file and
//     recording imported names absent from the live listing
//
// The returned records always carry the live listing's versions: an import
// file never resurrects a package that is no longer outdated and never
// overrides fresher version information.
//
// Parameters:
//   - records: Live outdated listing in pip's order
//   - opts: Include, exclude, and import selections
//
// Returns:
//   - Selection: The surviving records plus filter bookkeeping
func Apply(records []packages.PackageRecord, opts Options) Selection {
	selected := records

	if len(opts.Include) > 0 {
		kept := make([]packages.PackageRecord, 0, len(selected))
		for _, record := range selected {
			if ok, _ := MatchAny(record.Name, opts.Include); ok {
				kept = append(kept, record)
				continue
			}
			verbose.PackageFiltered(record.Name, "no include pattern matched")
		}
		selected = kept
	}

	excluded := 0
	if len(opts.Exclude) > 0 {
		kept := make([]packages.PackageRecord, 0, len(selected))
		for _, record := range selected {
			if ok, pattern := MatchAny(record.Name, opts.Exclude); ok {
				excluded++
				verbose.PackageFiltered(record.Name, "matched exclude pattern '"+pattern+"'")
				continue
			}
			kept = append(kept, record)
		}
		selected = kept
	}

	var missing []string
	if opts.HasImport {
		selected, missing = restrictToImport(selected, opts.Imported)
	}

	return Selection{
		Records:         selected,
		ExcludedCount:   excluded,
		ImportedMissing: missing,
	}
}

// restrictToImport keeps only packages named by the import file.
//
// Output order follows the import file. Duplicate imported names collapse to
// their first occurrence. A live package keeps its own versions; an imported
// name with no live counterpart goes to the missing list.
//
// Parameters:
//   - records: Live records that survived include and exclude
//   - imported: Records read from the import file, in file order
//
// Returns:
//   - []packages.PackageRecord: Live records in import-file order
//   - []string: Imported names absent from the live records
func restrictToImport(records []packages.PackageRecord, imported []packages.PackageRecord) ([]packages.PackageRecord, []string) {
	live := make(map[string]packages.PackageRecord, len(records))
	for _, record := range records {
		live[record.NormalizedName()] = record
	}

	var kept []packages.PackageRecord
	var missing []string
	seen := make(map[string]struct{}, len(imported))

	for _, want := range imported {
		key := want.NormalizedName()
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		record, ok := live[key]
		if !ok {
			missing = append(missing, want.Name)
			verbose.PackageFiltered(want.Name, "imported but no longer outdated")
			continue
		}
		kept = append(kept, record)
	}

	return kept, missing
}
