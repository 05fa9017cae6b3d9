package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key fields.

func describeSummary() string {
	return `Analyzes git history and returns a condensed summary of repository growth.

USE WHEN:
- Getting a first overview of an unfamiliar repository
- Checking overall size, age, and activity before deeper analysis
- Comparing repositories by commit volume and contributor count
- Verifying how much of a repository's history is already cached

INTERPRETING RESULTS:
- cumulative_lines: estimated line count at the end of the history
- cumulative_bytes: estimated byte size (lines times configured bytes-per-line, plus binary bytes)
- net_lines: lines added minus lines deleted across all commits
- trend.slope: average line growth per time bucket; positive means the repository is growing
- trend.correlation near 1.0 or -1.0 means steady growth or shrinkage; near 0 means erratic change
- cached_commits: how many commits were served from the analysis cache

METRICS RETURNED:
- Repository identity: root, branch, origin, fingerprint
- Counts: commits, cached_commits, contributors, buckets
- Totals: lines_added, lines_deleted, net_lines, cumulative_lines, cumulative_bytes
- Time range: first_commit, last_commit, bucket_width (hour or day)
- Growth trend: slope, intercept, r_squared, correlation

Requires a git repository at the given path.`
}

func describeTimeline() string {
	return `Returns the bucketed time series of repository growth: lines and bytes added, deleted, and accumulated per hour or day.

USE WHEN:
- Charting or narrating how a repository grew over time
- Finding bursts of activity or long quiet periods
- Comparing growth across change categories (application, test, build, documentation)
- Spotting large rewrites (high additions and deletions in one bucket)

INTERPRETING RESULTS:
- Buckets are UTC; width is hourly for histories under the configured threshold, daily otherwise
- The first bucket is a zero baseline one width before the first commit
- cumulative_lines never goes below zero; a long flat stretch at zero follows large deletions
- Every per-bucket metric splits into application, test, build, documentation, and other
- Rising test share alongside application code suggests healthy coverage habits

METRICS RETURNED:
- Per bucket: commit_count, shas, lines_added, lines_deleted, cumulative_lines,
  bytes_added, bytes_deleted, cumulative_bytes (each split by category)
- Growth trend over the cumulative series: slope, intercept, r_squared, correlation

Pass last to limit output to the most recent buckets. Requires a git repository.`
}

func describeContributors() string {
	return `Aggregates git history by author and returns per-contributor activity statistics.

USE WHEN:
- Understanding who drives a repository and how work is distributed
- Estimating bus factor before a handoff or audit
- Finding the right person to ask about a codebase
- Checking whether activity is concentrated in a few authors

INTERPRETING RESULTS:
- Contributors are keyed by author email and sorted by commit count
- One person with most commits and lines means concentrated ownership
- first_commit and last_commit bound each author's active period
- High lines_added with few commits suggests large drops; the reverse suggests steady iteration

METRICS RETURNED:
- Per contributor: name, email, commits, lines_added, lines_deleted,
  bytes_added, bytes_deleted, first_commit, last_commit
- total: contributor count before the top cutoff

Requires a git repository at the given path.`
}

func describeFileTypes() string {
	return `Aggregates git history by file type and returns per-type change statistics.

USE WHEN:
- Profiling what kind of code a repository contains
- Checking the balance of application code against tests and documentation
- Finding which file types absorb the most churn
- Scoping language-specific tooling decisions

INTERPRETING RESULTS:
- File types are derived from path suffixes and sorted by churn (lines added plus deleted)
- files counts distinct paths ever touched for that type
- A type with high churn but few files points at a handful of volatile files
- Binary types report bytes but no line counts

METRICS RETURNED:
- Per file type: file_type, files, commits, lines_added, lines_deleted,
  bytes_added, bytes_deleted
- total: file type count before the top cutoff

Requires a git repository at the given path.`
}

func describeSequence() string {
	return `Returns the per-commit sequence of repository size: one point per commit in history order, starting from a synthetic baseline.

USE WHEN:
- Examining size changes commit by commit rather than by wall-clock bucket
- Pinpointing the exact commit that grew or shrank the repository
- Feeding evenly spaced data to diff-oriented tooling (buckets collapse bursts, the sequence does not)

INTERPRETING RESULTS:
- Index 0 is always the baseline point with sha "start" and zero activity
- cumulative_lines is NOT clamped; negative values mean deletions outran the measured additions
- Large single-point drops usually mark directory removals or vendored code purges
- commit_count is 1 for every real commit, 0 for the baseline

METRICS RETURNED:
- Per point: index, sha, timestamp, commit_count, lines_added, lines_deleted,
  net_lines, cumulative_lines, cumulative_bytes
- total: point count before the last cutoff

Pass last to limit output to the most recent points. Requires a git repository.`
}
