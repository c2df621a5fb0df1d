package upgrade

import (
	"context"
	"fmt"

	"github.com/ajxudir/pipup/pkg/constants"
	"github.com/ajxudir/pipup/pkg/packages"
	"github.com/ajxudir/pipup/pkg/pipenv"
	"github.com/ajxudir/pipup/pkg/pipexec"
)

// UpgradePackageFunc runs the single-package upgrade subprocess. It is a
// variable so command tests can substitute outcomes without spawning pip.
var UpgradePackageFunc = UpgradePackage

// BatchUpgradeFunc runs the batch upgrade subprocess. It is a variable so
// command tests can substitute outcomes without spawning pip.
var BatchUpgradeFunc = BatchUpgrade

// UpgradePackage upgrades one package to its latest version.
//
// Failures never surface as errors: a non-zero pip exit becomes a Failed
// result carrying pip's output, and exceeding the timeout becomes a TimedOut
// result. Only the outcome statuses differ; every call produces a result.
//
// Parameters:
//   - ctx: Cancels the subprocess when done
//   - env: Resolved pip invocation
//   - rec: Package to upgrade
//   - timeoutSeconds: Subprocess time budget; 0 disables the limit
//
// Returns:
//   - packages.UpgradeResult: Outcome with status, duration, and message
func UpgradePackage(ctx context.Context, env *pipenv.Environment, rec packages.PackageRecord, timeoutSeconds int) packages.UpgradeResult {
	result, err := pipexec.Run(ctx, env.Command("install", "--upgrade", rec.Name), timeoutSeconds)
	if err != nil {
		return packages.UpgradeResult{
			Package:      rec,
			Status:       constants.StatusFailed,
			ErrorMessage: err.Error(),
		}
	}

	res := packages.UpgradeResult{Package: rec, Duration: result.Duration}
	switch {
	case result.TimedOut:
		res.Status = constants.StatusTimedOut
		res.ErrorMessage = fmt.Sprintf("timed out after %ds", timeoutSeconds)
	case result.ExitCode != 0:
		res.Status = constants.StatusFailed
		res.ErrorMessage = result.ErrorMessage()
	default:
		res.Status = constants.StatusSuccess
	}
	return res
}

// BatchUpgrade upgrades every package with a single pip invocation.
//
// pip resolves the combined dependency set once, which avoids the
// install-order conflicts separate invocations can produce. The cost is
// coarse reporting: one subprocess means one shared outcome, so every
// package gets the same status, message, and wall time.
//
// Parameters:
//   - ctx: Cancels the subprocess when done
//   - env: Resolved pip invocation
//   - records: Packages to upgrade together
//   - timeoutSeconds: Subprocess time budget; 0 disables the limit
//
// Returns:
//   - []packages.UpgradeResult: One result per record, in input order
func BatchUpgrade(ctx context.Context, env *pipenv.Environment, records []packages.PackageRecord, timeoutSeconds int) []packages.UpgradeResult {
	if len(records) == 0 {
		return nil
	}

	args := append([]string{"install", "--upgrade"}, packages.Names(records)...)
	result, err := pipexec.Run(ctx, env.Command(args...), timeoutSeconds)

	status := constants.StatusSuccess
	message := ""

	results := make([]packages.UpgradeResult, len(records))
	switch {
	case err != nil:
		status = constants.StatusFailed
		message = err.Error()
	case result.TimedOut:
		status = constants.StatusTimedOut
		message = fmt.Sprintf("batch upgrade timed out after %ds", timeoutSeconds)
	case result.ExitCode != 0:
		status = constants.StatusFailed
		message = result.ErrorMessage()
	}

	for i, rec := range records {
		results[i] = packages.UpgradeResult{
			Package:      rec,
			Status:       status,
			ErrorMessage: message,
		}
		if result != nil {
			results[i].Duration = result.Duration
		}
	}
	return results
}
