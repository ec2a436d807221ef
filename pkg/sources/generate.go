//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/langmap --repository.default-branch master --repository.path /pkg/sources

package sources
