package report

import (
	"context"

	"github.com/agentstation/langmap/pkg/ledger"
)

// SharedName is a group of codes and the names all of them are known by.
type SharedName struct {
	Codes []ledger.Code `json:"codes" yaml:"codes"`
	Names []string      `json:"names" yaml:"names"`
}

// SharedNames lists every group of codes sharing a name, with the names the
// group has in common.
func SharedNames(ctx context.Context, l *ledger.Ledger) ([]SharedName, error) {
	groups, err := l.SharedNameGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SharedName, 0, len(groups))
	for _, codes := range groups {
		names, err := l.CommonNames(ctx, codes)
		if err != nil {
			return nil, err
		}
		out = append(out, SharedName{Codes: codes, Names: names})
	}
	return out, nil
}
