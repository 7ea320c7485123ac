// Package report accumulates per-target, per-bundle build outcomes into the
// batch report that decides the overall exit status.
package report

import "github.com/assetforge/assetctl/internal/util"

// Result is the outcome of one (bundle, target) build attempt. Target is
// empty for targetless builds.
type Result struct {
	Bundle   string
	Target   string
	Archive  string
	Manifest string
	Ok       bool
	Err      string
}

func Success(bundle, target, archive, manifest string) Result {
	return Result{Bundle: bundle, Target: target, Archive: archive, Manifest: manifest, Ok: true}
}

func Failure(bundle, target string, err error) Result {
	r := Result{Bundle: bundle, Target: target}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}

// Report is the ordered collection of results for every (bundle, target)
// attempted in a run. It is the only artifact that outlives the run.
type Report struct {
	Results []Result
}

func (r *Report) Add(results ...Result) {
	r.Results = append(r.Results, results...)
}

// Ok reports overall success: true iff every attempted build succeeded.
func (r *Report) Ok() bool {
	for _, res := range r.Results {
		if !res.Ok {
			return false
		}
	}
	return true
}

// FailedBundles returns the names of bundles with at least one failed result,
// in first-failure order without duplicates.
func (r *Report) FailedBundles() []string {
	var failed []string
	for _, res := range r.Results {
		if !res.Ok {
			failed = append(failed, res.Bundle)
		}
	}
	return util.Dedup(failed)
}
