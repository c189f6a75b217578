package match

import "errors"

// ErrScoringTimeout means scoring exceeded the configured deadline. This is a
// transient condition: the caller may retry, unlike an empty result set which
// is a definitive answer.
var ErrScoringTimeout = errors.New("match: scoring timed out")

// ErrUnknownJob means the request named a job_id absent from the jobs corpus.
var ErrUnknownJob = errors.New("match: unknown job id")
