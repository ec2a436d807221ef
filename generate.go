//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/langmap --repository.default-branch master --repository.path /

// Package langmap reconciles language records reported by many independent
// sources into one ledger keyed by three letter language codes, resolves
// free text names to codes through phonetic signatures, and serves
// aggregated views over the result.
package langmap
