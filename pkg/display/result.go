package display

import (
	"strings"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/output"
	"github.com/ajxudir/pipup/pkg/packages"
)

// FormatResultLine renders one live completion line for an upgrade result.
//
// The line carries a colored status icon, the package name, and either the
// elapsed time or the first line of the error. Multi-line pip stderr is cut
// to its first line here; the full text appears in the run summary.
//
// Parameters:
//   - res: Completed upgrade result
//
// Returns:
//   - string: Colored line without trailing newline
//
// Example output:
//
//	✓ numpy: Upgraded in 3.2s
//	✗ requests: resolver reported a dependency conflict
//	⏱ pandas: timed out after 300s
//	• flask: declined by user
func FormatResultLine(res packages.UpgradeResult) string {
	style := output.StatusColor(res.Status)
	icon := constants.StatusIcon(res.Status)

	if res.Status == constants.StatusSuccess {
		return style.Sprintf("%s %s: Upgraded in %.1fs", icon, res.Package.Name, res.Duration.Seconds())
	}
	return style.Sprintf("%s %s: %s", icon, res.Package.Name, firstLine(res.ErrorMessage))
}

// firstLine returns the first non-empty line of a possibly multi-line message.
//
// Parameters:
//   - msg: Message text, possibly spanning several lines
//
// Returns:
//   - string: First non-empty trimmed line, or the input when every line is blank
func firstLine(msg string) string {
	for _, line := range strings.Split(msg, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return msg
}
